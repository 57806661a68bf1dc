package vdom

import "github.com/vango-dev/vela/pkg/dom"

// FromDOM converts a DOM subtree into a static template. Comments are
// dropped; documents and fragments become Fragment nodes.
func FromDOM(n *dom.Node) *VNode {
	switch n.Type() {
	case dom.ElementNode:
		v := &VNode{Kind: KindElement, Tag: n.Tag()}
		for _, a := range n.Attributes() {
			v.Attrs = append(v.Attrs, attr(a.Name, a.Value))
		}
		v.Children = childrenFromDOM(n)
		return v
	case dom.TextNode:
		return Text(n.Data())
	case dom.DocumentNode, dom.FragmentNode:
		return &VNode{Kind: KindFragment, Children: childrenFromDOM(n)}
	}
	return nil
}

func childrenFromDOM(n *dom.Node) []*VNode {
	var out []*VNode
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if v := FromDOM(c); v != nil {
			out = append(out, v)
		}
	}
	return out
}

// ParseHTML parses markup as body content and returns it as a static
// Fragment template.
func ParseHTML(markup string) (*VNode, error) {
	body := dom.NewDocument().Body()
	if err := dom.ParseFragment(body, markup); err != nil {
		return nil, err
	}
	return &VNode{Kind: KindFragment, Children: childrenFromDOM(body)}, nil
}
