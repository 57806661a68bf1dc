package vdom

import (
	"github.com/vango-dev/vela/pkg/dom"
	"github.com/vango-dev/vela/pkg/hydrate"
	"github.com/vango-dev/vela/pkg/transition"
	"github.com/vango-dev/vela/pkg/vela"
)

type elementPart struct {
	s        *scope
	v        *VNode
	node     *dom.Node
	children []part

	mounted   bool
	listeners []func()
	actions   []ActionHandle

	introT *transition.InTransition
	outroT *transition.OutTransition
}

func newElement(s *scope, v *VNode) *elementPart {
	p := &elementPart{s: s, v: v}
	for _, child := range v.Children {
		p.children = append(p.children, build(s, child)...)
	}
	return p
}

func (p *elementPart) create() {
	p.node = p.s.doc.CreateElement(p.v.Tag)
	for _, c := range p.children {
		c.create()
	}
	p.applyAttrs(p.s.c.Ctx())
}

func (p *elementPart) claim(nodes *hydrate.Nodes) {
	names := make([]string, 0, len(p.v.Attrs)+len(p.v.Bound))
	for _, a := range p.v.Attrs {
		names = append(names, a.Key)
	}
	for _, b := range p.v.Bound {
		names = append(names, b.Key)
	}
	p.node = hydrate.ClaimElement(nodes, p.v.Tag, names)

	children := p.s.rt.Hydration().Children(p.node)
	for _, c := range p.children {
		c.claim(children)
	}
	hydrate.DetachUnclaimed(children)
	p.applyAttrs(p.s.c.Ctx())
}

func (p *elementPart) applyAttrs(ctx []any) {
	for _, a := range p.v.Attrs {
		p.setAttr(a.Key, a.Value)
	}
	for _, b := range p.v.Bound {
		p.setAttr(b.Key, boundValue(b, ctx))
	}
}

func boundValue(b Binding, ctx []any) any {
	v := slotOf(ctx, b.Slot)
	if b.Format != nil {
		return b.Format(v)
	}
	return v
}

func (p *elementPart) setAttr(key string, value any) {
	s, ok := AttrValue(key, value)
	if !ok {
		p.node.RemoveAttribute(key)
		return
	}
	if cur, has := p.node.GetAttribute(key); has && cur == s {
		return
	}
	p.node.SetAttribute(key, s)
}

func (p *elementPart) mount(target, anchor *dom.Node) {
	p.s.rt.Insert(target, p.node, anchor)
	for _, c := range p.children {
		c.mount(p.node, nil)
	}
	if p.mounted {
		return
	}
	p.mounted = true
	for _, h := range p.v.Events {
		p.listeners = append(p.listeners, p.node.AddEventListener(h.Event, h.Handler))
	}
	ctx := p.s.c.Ctx()
	for _, a := range p.v.Actions {
		params := a.Params
		if a.Slot >= 0 {
			params = slotOf(ctx, a.Slot)
		}
		p.actions = append(p.actions, a.Fn(p.node, params))
	}
}

func (p *elementPart) update(ctx []any, dirty vela.Dirty) {
	for _, b := range p.v.Bound {
		if dirty.Has(b.Slot) {
			p.setAttr(b.Key, boundValue(b, ctx))
		}
	}
	for _, c := range p.children {
		c.update(ctx, dirty)
	}
	for i, a := range p.v.Actions {
		if a.Slot < 0 || !dirty.Has(a.Slot) || i >= len(p.actions) {
			continue
		}
		if u, ok := p.actions[i].(ActionUpdater); ok {
			u.Update(slotOf(ctx, a.Slot))
		}
	}
}

// transition returns the spec that plays in direction dir.
func (p *elementPart) transition(dir transition.Direction) (TransitionSpec, bool) {
	for _, t := range p.v.Transitions {
		if t.Dir == dir || t.Dir == transition.Both {
			return t, true
		}
	}
	return TransitionSpec{}, false
}

func (p *elementPart) intro(local bool) {
	spec, ok := p.transition(transition.In)
	if !ok && p.outroT != nil {
		// Back in before the outro finished.
		p.outroT.End(true)
		p.outroT = nil
	}
	if ok && (local || !spec.Local) {
		eng := p.s.engine()
		p.s.rt.Scheduler().RenderFunc(func() {
			if p.outroT != nil {
				p.outroT.End(true)
				p.outroT = nil
				p.introT = nil
			}
			if p.introT == nil {
				p.introT = eng.In(p.node, spec.Fn, spec.Params)
			}
			p.introT.Start()
		})
	}
	for _, c := range p.children {
		c.intro(local)
	}
}

func (p *elementPart) outro(local bool) {
	if p.introT != nil {
		p.introT.Invalidate()
	}
	if spec, ok := p.transition(transition.Out); ok && (local || !spec.Local) {
		p.outroT = p.s.engine().Out(p.node, spec.Fn, spec.Params)
	}
	for _, c := range p.children {
		c.outro(local)
	}
}

func (p *elementPart) destroy(detaching, top bool) {
	for _, c := range p.children {
		c.destroy(detaching, false)
	}
	if p.mounted {
		for _, remove := range p.listeners {
			remove()
		}
		for _, h := range p.actions {
			if h != nil {
				h.Destroy()
			}
		}
		p.listeners, p.actions = nil, nil
		p.mounted = false
	}
	if p.introT != nil {
		p.introT.End()
	}
	if detaching {
		if top {
			vela.Detach(p.node)
		}
		if p.outroT != nil {
			p.outroT.Complete()
			p.outroT = nil
		}
	}
}

func (p *elementPart) snapshot() *VNode {
	out := &VNode{Kind: KindElement, Tag: p.v.Tag}
	out.Attrs = append(out.Attrs, p.v.Attrs...)
	ctx := p.s.c.Ctx()
	for _, b := range p.v.Bound {
		out.Attrs = append(out.Attrs, Attr{Key: b.Key, Value: boundValue(b, ctx)})
	}
	for _, c := range p.children {
		if n := c.snapshot(); n != nil {
			out.Children = append(out.Children, n)
		}
	}
	return out
}

// ifPart switches between the branches of an If node. A branch that
// leaves is kept until its outros finish.
type ifPart struct {
	s        *scope
	v        *VNode
	anchor   *dom.Node
	branches [2]*View
	index    int
}

func newIf(s *scope, v *VNode) *ifPart {
	p := &ifPart{s: s, v: v, index: -1}
	p.index = p.choose(s.c.Ctx())
	if p.index >= 0 {
		p.branches[p.index] = newView(s, p.template(p.index))
	}
	return p
}

func (p *ifPart) choose(ctx []any) int {
	if Truthy(slotOf(ctx, p.v.Slot)) {
		if p.v.Then != nil {
			return 0
		}
		return -1
	}
	if p.v.Else != nil {
		return 1
	}
	return -1
}

func (p *ifPart) template(i int) *VNode {
	if i == 0 {
		return p.v.Then
	}
	return p.v.Else
}

func (p *ifPart) active() *View {
	if p.index < 0 {
		return nil
	}
	return p.branches[p.index]
}

func (p *ifPart) create() {
	if b := p.active(); b != nil {
		b.Create()
	}
	p.anchor = p.s.doc.CreateTextNode("")
}

func (p *ifPart) claim(nodes *hydrate.Nodes) {
	if b := p.active(); b != nil {
		b.Claim(nodes)
	}
	p.anchor = p.s.doc.CreateTextNode("")
}

func (p *ifPart) mount(target, anchor *dom.Node) {
	if b := p.active(); b != nil {
		b.Mount(target, anchor)
	}
	p.s.rt.Insert(target, p.anchor, anchor)
}

func (p *ifPart) update(ctx []any, dirty vela.Dirty) {
	eng := p.s.engine()
	prev, next := p.index, p.choose(ctx)

	if next == prev {
		if b := p.active(); b != nil {
			b.Update(ctx, dirty)
			if dirty.Has(p.v.Slot) {
				eng.TransitionIn(b, true)
			}
		}
		return
	}

	if prev >= 0 {
		leaving := p.branches[prev]
		eng.GroupOutros()
		eng.TransitionOut(leaving, true, true, func() {
			if p.branches[prev] == leaving {
				p.branches[prev] = nil
			}
		})
		eng.CheckOutros()
	}

	p.index = next
	if next < 0 {
		return
	}
	b := p.branches[next]
	if b == nil {
		b = newView(p.s, p.template(next))
		p.branches[next] = b
		b.Create()
	} else {
		b.Update(ctx, dirty)
	}
	eng.TransitionIn(b, true)
	b.Mount(p.anchor.Parent(), p.anchor)
}

func (p *ifPart) intro(bool) {
	if b := p.active(); b != nil {
		p.s.engine().TransitionIn(b, false)
	}
}

func (p *ifPart) outro(bool) {
	if b := p.active(); b != nil {
		p.s.engine().TransitionOut(b, false, false, nil)
	}
}

func (p *ifPart) destroy(detaching, top bool) {
	for _, b := range p.branches {
		if b != nil {
			b.destroy(detaching, top)
		}
	}
	if detaching && top {
		vela.Detach(p.anchor)
	}
}

func (p *ifPart) snapshot() *VNode {
	if b := p.active(); b != nil {
		return b.Snapshot()
	}
	return nil
}

// childPart hosts a nested component.
type childPart struct {
	s     *scope
	v     *VNode
	child *vela.Component
}

func newChild(s *scope, v *VNode) *childPart {
	var props map[string]any
	if v.Props != nil {
		props = v.Props(s.c.Ctx())
	}
	// Without a target New only initialises, which cannot fail.
	child, _ := vela.New(s.rt, v.Component.Definition(), vela.Options{Props: props})
	return &childPart{s: s, v: v, child: child}
}

func (p *childPart) create() { vela.CreateChild(p.child) }

func (p *childPart) claim(nodes *hydrate.Nodes) { vela.ClaimChild(p.child, nodes) }

func (p *childPart) mount(target, anchor *dom.Node) { vela.MountChild(p.child, target, anchor) }

func (p *childPart) update(ctx []any, dirty vela.Dirty) {
	if p.v.Props != nil && dirty.Any(p.v.Deps...) {
		p.child.Set(p.v.Props(ctx))
	}
}

func (p *childPart) intro(local bool) {
	if f := p.child.Fragment(); f != nil {
		p.s.engine().TransitionIn(f, local)
	}
}

func (p *childPart) outro(local bool) {
	if f := p.child.Fragment(); f != nil {
		p.s.engine().TransitionOut(f, local, false, nil)
	}
}

func (p *childPart) destroy(detaching, top bool) { vela.DestroyChild(p.child, detaching && top) }

func (p *childPart) snapshot() *VNode {
	if v, ok := p.child.Fragment().(*View); ok {
		return v.Snapshot()
	}
	return nil
}
