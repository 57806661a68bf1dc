package vela

import (
	"github.com/vango-dev/vela/internal/errors"
	"github.com/vango-dev/vela/pkg/dom"
	"github.com/vango-dev/vela/pkg/hydrate"
	"github.com/vango-dev/vela/pkg/scheduler"
)

// Fragment is the view of a component: the DOM it creates, mounts,
// patches and removes.
type Fragment interface {
	// Create builds the fragment's nodes.
	Create()
	// Mount inserts the nodes into target before anchor.
	Mount(target, anchor *dom.Node)
	// Update patches the nodes for the slots marked in dirty.
	Update(ctx []any, dirty Dirty)
	// Destroy tears the fragment down, removing its nodes when detaching.
	Destroy(detaching bool)
}

// Claimer is implemented by fragments that can adopt server-rendered
// nodes instead of creating their own.
type Claimer interface {
	Claim(nodes *hydrate.Nodes)
}

// Invalidate assigns value to slot i and marks the slot dirty when the
// value changed. It returns value.
type Invalidate func(i int, value any) any

// Instance is what a component script produces.
type Instance struct {
	// Ctx holds the initial context slots.
	Ctx []any
	// Update recomputes derived slots before each fragment update.
	Update func()
	// Set applies incoming props. It usually calls invalidate.
	Set func(props map[string]any)
}

// Definition describes a component type.
type Definition struct {
	Name string

	// Instance runs the component script once per instance.
	Instance func(c *Component, props map[string]any, invalidate Invalidate) Instance

	// Fragment builds the view. It is called after Instance.
	Fragment func(c *Component) Fragment

	// Props maps prop names to context slots, for Bind.
	Props map[string]int

	// NotEqual decides whether an assignment invalidates a slot.
	// Defaults to SafeNotEqual.
	NotEqual func(a, b any) bool
}

// Options are the construction options of a component.
type Options struct {
	// Target is the container to mount into. Without a target the
	// component is only initialised; a parent mounts it later.
	Target *dom.Node
	// Anchor is the node to mount before, or nil to append.
	Anchor *dom.Node
	// Props are the initial props.
	Props map[string]any
	// Hydrate adopts the target's existing children instead of
	// creating new nodes.
	Hydrate bool
	// Intro plays intro transitions on first mount.
	Intro bool
	// Context replaces the context inherited from the parent.
	Context map[any]any
}

// Component is a live component instance.
type Component struct {
	rt   *Runtime
	name string

	props    map[string]int
	ctx      []any
	update   func()
	set      func(map[string]any)
	notEqual func(a, b any) bool
	bound    map[int]func(any)

	onMount      []func() func()
	onDestroy    []func()
	beforeUpdate []func()
	afterUpdate  []*scheduler.Callback

	context   map[any]any
	callbacks map[string][]*handler

	fragment  Fragment
	root      *dom.Node
	dirty     Dirty
	skipBound bool
	destroyed bool
}

type handler struct {
	fn func(*dom.Event)
}

// New creates a component from def. With a target in opts it is mounted
// and the runtime flushed before New returns; the error then reports a
// failed flush or a strict hydration mismatch. The component is returned
// even when the error is non-nil.
func New(rt *Runtime, def *Definition, opts Options) (*Component, error) {
	if opts.Hydrate && opts.Target == nil {
		return nil, errors.New("E041")
	}

	parent, _ := rt.sched.Current().(*Component)
	c := &Component{
		rt:        rt,
		name:      def.Name,
		props:     def.Props,
		update:    func() {},
		notEqual:  def.NotEqual,
		bound:     make(map[int]func(any)),
		callbacks: make(map[string][]*handler),
		context:   make(map[any]any),
		root:      opts.Target,
	}
	if c.notEqual == nil {
		c.notEqual = SafeNotEqual
	}
	if opts.Context != nil {
		for k, v := range opts.Context {
			c.context[k] = v
		}
	} else if parent != nil {
		for k, v := range parent.context {
			c.context[k] = v
		}
	}
	if c.root == nil && parent != nil {
		c.root = parent.root
	}

	prev := rt.sched.SetCurrent(c)
	defer rt.sched.SetCurrent(prev)

	ready := false
	invalidate := func(i int, value any) any {
		if c.ctx == nil || i < 0 || i >= len(c.ctx) {
			return value
		}
		old := c.ctx[i]
		c.ctx[i] = value
		if c.notEqual(old, value) {
			if !c.skipBound {
				if fn := c.bound[i]; fn != nil {
					fn(value)
				}
			}
			if ready {
				c.MakeDirty(i)
			}
		}
		return value
	}

	props := opts.Props
	if props == nil {
		props = map[string]any{}
	}
	if def.Instance != nil {
		inst := def.Instance(c, props, invalidate)
		c.ctx = inst.Ctx
		if c.ctx == nil {
			c.ctx = []any{}
		}
		if inst.Update != nil {
			c.update = inst.Update
		}
		c.set = inst.Set
	} else {
		c.ctx = []any{}
	}
	c.dirty = cleanDirty(len(c.ctx))

	c.update()
	ready = true
	runAll(c.beforeUpdate)
	if def.Fragment != nil {
		c.fragment = def.Fragment(c)
	}

	rt.emit(EventComponentCreated, map[string]any{"name": c.name})

	if opts.Target == nil {
		return c, nil
	}

	var err error
	if opts.Hydrate {
		sess := rt.hydration
		sess.Start()
		nodes := sess.Children(opts.Target)
		if c.fragment != nil {
			if cl, ok := c.fragment.(Claimer); ok {
				cl.Claim(nodes)
			} else {
				rt.logger.Warn("view cannot be hydrated",
					"code", "E042",
					"component", c.name,
				)
				c.fragment.Create()
			}
		}
		hydrate.DetachUnclaimed(nodes)
	} else if c.fragment != nil {
		c.fragment.Create()
	}

	if opts.Intro && c.fragment != nil {
		rt.engine.TransitionIn(c.fragment, false)
	}
	c.mount(opts.Target, opts.Anchor)

	if opts.Hydrate {
		rt.hydration.End()
		err = rt.hydration.Err()
	}
	if ferr := rt.sched.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	return c, err
}

func (c *Component) mount(target, anchor *dom.Node) {
	if c.fragment != nil {
		c.fragment.Mount(target, anchor)
	}
	c.rt.sched.RenderFunc(func() {
		var cleanups []func()
		for _, fn := range c.onMount {
			if cleanup := fn(); cleanup != nil {
				cleanups = append(cleanups, cleanup)
			}
		}
		c.onMount = nil
		if c.destroyed {
			// Destroyed before the mount callbacks ran.
			runAll(cleanups)
			return
		}
		c.onDestroy = append(c.onDestroy, cleanups...)
	})
	for _, cb := range c.afterUpdate {
		c.rt.sched.AddRenderCallback(cb)
	}
}

// Update implements scheduler.Updater. The scheduler calls it once per
// flush for each dirty component.
func (c *Component) Update() error {
	if c.destroyed {
		return nil
	}
	c.update()
	runAll(c.beforeUpdate)
	dirty := c.dirty
	c.dirty = cleanDirty(len(c.ctx))
	if c.fragment != nil {
		c.fragment.Update(c.ctx, dirty)
	}
	for _, cb := range c.afterUpdate {
		c.rt.sched.AddRenderCallback(cb)
	}
	return nil
}

// MakeDirty marks slot i changed and queues the component for the next
// flush if it was clean.
func (c *Component) MakeDirty(i int) {
	if c.dirty.Clean() {
		c.rt.sched.MarkDirty(c)
		c.dirty = make(Dirty, len(c.dirty))
	}
	c.dirty = c.dirty.mark(i)
}

// Dirty returns the slots changed since the last update.
func (c *Component) Dirty() Dirty { return append(Dirty(nil), c.dirty...) }

// Set applies props through the instance's Set hook. Bound callbacks are
// not echoed for values that arrive this way.
func (c *Component) Set(props map[string]any) error {
	if c.destroyed {
		return ErrDestroyed
	}
	if c.set == nil || len(props) == 0 {
		return nil
	}
	c.skipBound = true
	defer func() { c.skipBound = false }()
	c.set(props)
	return nil
}

// On subscribes fn to events dispatched by the component and returns a
// function that removes the subscription.
func (c *Component) On(event string, fn func(*dom.Event)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	h := &handler{fn: fn}
	c.callbacks[event] = append(c.callbacks[event], h)
	return func() {
		list := c.callbacks[event]
		for i, x := range list {
			if x == h {
				c.callbacks[event] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

// Destroy removes the component and its nodes. Later calls do nothing.
func (c *Component) Destroy() { c.destroy(true) }

func (c *Component) destroy(detaching bool) {
	if c.destroyed {
		return
	}
	c.destroyed = true
	c.rt.sched.FlushRenderCallbacks(c.afterUpdate)
	runAll(c.onDestroy)
	if c.fragment != nil {
		c.fragment.Destroy(detaching)
	}
	c.onDestroy = nil
	c.fragment = nil
	c.ctx = nil
	c.rt.emit(EventComponentDestroyed, map[string]any{"name": c.name})
}

// Destroyed reports whether Destroy has run.
func (c *Component) Destroyed() bool { return c.destroyed }

// Name returns the definition name.
func (c *Component) Name() string { return c.name }

// Runtime returns the runtime the component belongs to.
func (c *Component) Runtime() *Runtime { return c.rt }

// Ctx returns the context slots. Fragments read from it; writes must go
// through the invalidate function.
func (c *Component) Ctx() []any { return c.ctx }

// Fragment returns the component's view, or nil once destroyed.
func (c *Component) Fragment() Fragment { return c.fragment }

// Root returns the container the component tree was mounted into.
func (c *Component) Root() *dom.Node { return c.root }

func runAll(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}
