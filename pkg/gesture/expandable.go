package gesture

import (
	"github.com/vango-dev/vela/pkg/dom"
	"github.com/vango-dev/vela/pkg/vdom"
)

// expandable keeps a placeholder in the element's place while it is
// expanded, so the surrounding layout does not collapse.
type expandable struct {
	node        *dom.Node
	trigger     *dom.Node
	placeholder *dom.Node
	remove      []func()
}

var _ vdom.ActionUpdater = (*expandable)(nil)

// Expandable dispatches expanding on node when its first child is
// clicked or receives a keypress. A placeholder with the node's width
// and height is appended to the node's parent at the same time, and is
// removed once the action is updated with a false params value.
func Expandable(node *dom.Node, _ any) vdom.ActionHandle {
	x := &expandable{node: node, trigger: node}
	if first := node.FirstChild(); first != nil {
		x.trigger = first
	}
	if doc := node.OwnerDocument(); doc != nil {
		x.placeholder = doc.CreateElement("div")
	} else {
		x.placeholder = dom.NewDocument().CreateElement("div")
	}
	for _, prop := range []string{"width", "height"} {
		if v := node.Style().Get(prop); v != "" {
			x.placeholder.Style().Set(prop, v, false)
		}
	}
	x.remove = []func(){
		x.trigger.AddEventListener("click", x.expand),
		x.trigger.AddEventListener("keypress", x.expand),
	}
	return x
}

func (x *expandable) expand(*dom.Event) {
	if parent := x.node.Parent(); parent != nil {
		parent.AppendChild(x.placeholder)
	}
	x.node.DispatchEvent(dom.NewCustomEvent(EventExpanding, nil, dom.EventInit{}))
}

func (x *expandable) detachPlaceholder() {
	if parent := x.placeholder.Parent(); parent != nil {
		parent.RemoveChild(x.placeholder)
	}
}

// Update removes the placeholder when expanded is false.
func (x *expandable) Update(expanded any) {
	if !vdom.Truthy(expanded) {
		x.detachPlaceholder()
	}
}

// Destroy removes the listeners and the placeholder.
func (x *expandable) Destroy() {
	for _, remove := range x.remove {
		remove()
	}
	x.remove = nil
	x.detachPlaceholder()
}
