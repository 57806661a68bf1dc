package vdom

import "fmt"

// Text creates a static text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Textf creates a formatted static text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Slot creates a text node that shows context slot i.
func Slot(i int) *VNode {
	return &VNode{Kind: KindSlot, Slot: i}
}

// Slotf creates a text node that shows context slot i through f.
func Slotf(i int, f Formatter) *VNode {
	return &VNode{Kind: KindSlot, Slot: i, Format: f}
}

// Fragment groups children without a wrapper element.
func Fragment(children ...any) *VNode {
	node := &VNode{Kind: KindFragment}

	for _, child := range children {
		switch v := child.(type) {
		case nil:
			continue
		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}
		case []*VNode:
			for _, c := range v {
				if c != nil {
					node.Children = append(node.Children, c)
				}
			}
		case string:
			node.Children = append(node.Children, Text(v))
		}
	}

	return node
}

// If renders then while context slot i is truthy. Leaving branches play
// their out transitions before they are removed.
func If(i int, then *VNode) *VNode {
	return &VNode{Kind: KindIf, Slot: i, Then: then}
}

// IfElse renders then while slot i is truthy and otherwise els.
func IfElse(i int, then, els *VNode) *VNode {
	return &VNode{Kind: KindIf, Slot: i, Then: then, Else: els}
}

// Child embeds a nested component. props computes its props from the
// parent's slots and is re-evaluated when any of deps changes.
func Child(k *Component, props PropsFunc, deps ...int) *VNode {
	return &VNode{Kind: KindComponent, Component: k, Props: props, Deps: deps}
}
