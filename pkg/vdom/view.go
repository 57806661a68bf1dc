package vdom

import (
	"github.com/vango-dev/vela/pkg/dom"
	"github.com/vango-dev/vela/pkg/hydrate"
	"github.com/vango-dev/vela/pkg/transition"
	"github.com/vango-dev/vela/pkg/vela"
)

// scope is shared by every part of one component's view.
type scope struct {
	c   *vela.Component
	rt  *vela.Runtime
	doc *dom.Node
}

func (s *scope) slot(i int) any {
	return slotOf(s.c.Ctx(), i)
}

func (s *scope) engine() *transition.Engine { return s.rt.Transitions() }

func slotOf(ctx []any, i int) any {
	if i < 0 || i >= len(ctx) {
		return nil
	}
	return ctx[i]
}

// part is one piece of a live view.
type part interface {
	create()
	claim(nodes *hydrate.Nodes)
	mount(target, anchor *dom.Node)
	update(ctx []any, dirty vela.Dirty)
	intro(local bool)
	outro(local bool)
	// destroy tears the part down. detaching is the block's flag and ends
	// running outros; top reports whether the part's node sits directly
	// in the block's target and must be removed.
	destroy(detaching, top bool)
	snapshot() *VNode
}

// View is a live instance of a template. It implements vela.Fragment,
// vela.Claimer and transition.Transitioner.
type View struct {
	s     *scope
	parts []part

	current   bool
	destroyed bool
}

var (
	_ vela.Fragment           = (*View)(nil)
	_ vela.Claimer            = (*View)(nil)
	_ transition.Transitioner = (*View)(nil)
)

// NewView instantiates tmpl for component c. Nested components are
// created immediately, as children of c.
func NewView(c *vela.Component, tmpl *VNode) *View {
	s := &scope{c: c, rt: c.Runtime(), doc: documentFor(c)}
	return newView(s, tmpl)
}

func documentFor(c *vela.Component) *dom.Node {
	if root := c.Root(); root != nil {
		if doc := root.OwnerDocument(); doc != nil {
			return doc
		}
	}
	return dom.NewDocument()
}

func newView(s *scope, tmpl *VNode) *View {
	return &View{s: s, parts: build(s, tmpl)}
}

func build(s *scope, v *VNode) []part {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case KindFragment:
		var parts []part
		for _, child := range v.Children {
			parts = append(parts, build(s, child)...)
		}
		return parts
	case KindElement:
		return []part{newElement(s, v)}
	case KindText:
		return []part{&textPart{s: s, v: v}}
	case KindSlot:
		return []part{&slotPart{s: s, v: v}}
	case KindIf:
		return []part{newIf(s, v)}
	case KindComponent:
		return []part{newChild(s, v)}
	}
	return nil
}

// Create builds the view's nodes.
func (v *View) Create() {
	for _, p := range v.parts {
		p.create()
	}
}

// Claim adopts existing nodes from nodes.
func (v *View) Claim(nodes *hydrate.Nodes) {
	for _, p := range v.parts {
		p.claim(nodes)
	}
}

// Mount inserts the view into target before anchor.
func (v *View) Mount(target, anchor *dom.Node) {
	for _, p := range v.parts {
		p.mount(target, anchor)
	}
}

// Update patches the parts that depend on dirty slots.
func (v *View) Update(ctx []any, dirty vela.Dirty) {
	for _, p := range v.parts {
		p.update(ctx, dirty)
	}
}

// Intro plays intro transitions. It does nothing while the view is
// already in.
func (v *View) Intro(local bool) {
	if v.current {
		return
	}
	for _, p := range v.parts {
		p.intro(local)
	}
	v.current = true
}

// Outro plays out transitions in the current outro group.
func (v *View) Outro(local bool) {
	for _, p := range v.parts {
		p.outro(local)
	}
	v.current = false
}

// Destroy tears the view down. Later calls do nothing.
func (v *View) Destroy(detaching bool) { v.destroy(detaching, true) }

func (v *View) destroy(detaching, top bool) {
	if v.destroyed {
		return
	}
	v.destroyed = true
	for _, p := range v.parts {
		p.destroy(detaching, top)
	}
}

// Snapshot returns a static template of what the view currently shows,
// with slots resolved and nested components expanded.
func (v *View) Snapshot() *VNode {
	out := &VNode{Kind: KindFragment}
	for _, p := range v.parts {
		if n := p.snapshot(); n != nil {
			out.Children = append(out.Children, n)
		}
	}
	return out
}

// textPart is static text.
type textPart struct {
	s    *scope
	v    *VNode
	node *dom.Node
}

func (p *textPart) create() { p.node = p.s.doc.CreateTextNode(p.v.Text) }

func (p *textPart) claim(nodes *hydrate.Nodes) { p.node = hydrate.ClaimText(nodes, p.v.Text) }

func (p *textPart) mount(target, anchor *dom.Node) { p.s.rt.Insert(target, p.node, anchor) }

func (p *textPart) update([]any, vela.Dirty) {}
func (p *textPart) intro(bool)               {}
func (p *textPart) outro(bool)               {}

func (p *textPart) destroy(detaching, top bool) {
	if detaching && top {
		vela.Detach(p.node)
	}
}

func (p *textPart) snapshot() *VNode { return Text(p.v.Text) }

// slotPart is text bound to a slot.
type slotPart struct {
	s    *scope
	v    *VNode
	node *dom.Node
}

func (p *slotPart) text(ctx []any) string {
	return format(p.v.Format, slotOf(ctx, p.v.Slot))
}

func (p *slotPart) create() { p.node = p.s.doc.CreateTextNode(p.text(p.s.c.Ctx())) }

func (p *slotPart) claim(nodes *hydrate.Nodes) {
	p.node = hydrate.ClaimText(nodes, p.text(p.s.c.Ctx()))
}

func (p *slotPart) mount(target, anchor *dom.Node) { p.s.rt.Insert(target, p.node, anchor) }

func (p *slotPart) update(ctx []any, dirty vela.Dirty) {
	if !dirty.Has(p.v.Slot) {
		return
	}
	if data := p.text(ctx); data != p.node.Data() {
		p.node.SetData(data)
	}
}

func (p *slotPart) intro(bool) {}
func (p *slotPart) outro(bool) {}

func (p *slotPart) destroy(detaching, top bool) {
	if detaching && top {
		vela.Detach(p.node)
	}
}

func (p *slotPart) snapshot() *VNode { return Text(p.text(p.s.c.Ctx())) }
