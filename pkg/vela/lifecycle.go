package vela

import (
	"github.com/vango-dev/vela/pkg/dom"
	"github.com/vango-dev/vela/pkg/hydrate"
	"github.com/vango-dev/vela/pkg/scheduler"
)

// Current returns the component being initialised or updated.
func (rt *Runtime) Current() (*Component, error) {
	c, ok := rt.sched.Current().(*Component)
	if !ok || c == nil {
		return nil, ErrOutsideComponent
	}
	return c, nil
}

// OnMount registers fn to run after the current component is first
// mounted. A non-nil function returned by fn runs when the component is
// destroyed.
func (rt *Runtime) OnMount(fn func() func()) error {
	c, err := rt.Current()
	if err != nil {
		return err
	}
	c.onMount = append(c.onMount, fn)
	return nil
}

// OnDestroy registers fn to run when the current component is destroyed.
func (rt *Runtime) OnDestroy(fn func()) error {
	c, err := rt.Current()
	if err != nil {
		return err
	}
	c.onDestroy = append(c.onDestroy, fn)
	return nil
}

// BeforeUpdate registers fn to run before every update of the current
// component, including the first render.
func (rt *Runtime) BeforeUpdate(fn func()) error {
	c, err := rt.Current()
	if err != nil {
		return err
	}
	c.beforeUpdate = append(c.beforeUpdate, fn)
	return nil
}

// AfterUpdate registers fn to run after every update of the current
// component. It runs at most once per flush.
func (rt *Runtime) AfterUpdate(fn func()) error {
	c, err := rt.Current()
	if err != nil {
		return err
	}
	c.afterUpdate = append(c.afterUpdate, scheduler.NewCallback(fn))
	return nil
}

// SetContext stores value under key for the current component and the
// children it creates afterwards.
func (rt *Runtime) SetContext(key, value any) error {
	c, err := rt.Current()
	if err != nil {
		return err
	}
	c.context[key] = value
	return nil
}

// GetContext returns the value stored under key by the current component
// or an ancestor.
func (rt *Runtime) GetContext(key any) (any, error) {
	c, err := rt.Current()
	if err != nil {
		return nil, err
	}
	return c.context[key], nil
}

// HasContext reports whether key is set for the current component.
func (rt *Runtime) HasContext(key any) (bool, error) {
	c, err := rt.Current()
	if err != nil {
		return false, err
	}
	_, ok := c.context[key]
	return ok, nil
}

// AllContexts returns a copy of the current component's context.
func (rt *Runtime) AllContexts() (map[any]any, error) {
	c, err := rt.Current()
	if err != nil {
		return nil, err
	}
	out := make(map[any]any, len(c.context))
	for k, v := range c.context {
		out[k] = v
	}
	return out, nil
}

// DispatchOptions configures a dispatched component event.
type DispatchOptions struct {
	Cancelable bool
}

// DispatchFunc fires a component event at the handlers registered with
// On. It returns false when a cancelable event had PreventDefault called.
type DispatchFunc func(typ string, detail any, opts ...DispatchOptions) bool

// Dispatcher returns a DispatchFunc bound to the current component.
func (rt *Runtime) Dispatcher() (DispatchFunc, error) {
	c, err := rt.Current()
	if err != nil {
		return nil, err
	}
	return func(typ string, detail any, opts ...DispatchOptions) bool {
		list := c.callbacks[typ]
		if len(list) == 0 {
			return true
		}
		var o DispatchOptions
		if len(opts) > 0 {
			o = opts[0]
		}
		e := dom.NewCustomEvent(typ, detail, dom.EventInit{Cancelable: o.Cancelable})
		for _, h := range append([]*handler(nil), list...) {
			h.fn(e)
		}
		return !e.DefaultPrevented()
	}, nil
}

// Bind registers fn to receive the value of child's named prop whenever
// the child changes it, and calls fn with the current value. It reports
// false when the child has no such prop.
func Bind(child *Component, name string, fn func(any)) bool {
	i, ok := child.props[name]
	if !ok || i < 0 || i >= len(child.ctx) {
		return false
	}
	child.bound[i] = fn
	fn(child.ctx[i])
	return true
}

// The helpers below drive a child component from the fragment of its
// parent.

// CreateChild builds the child's nodes.
func CreateChild(child *Component) {
	if child.fragment != nil {
		child.fragment.Create()
	}
}

// ClaimChild adopts server-rendered nodes for the child, falling back to
// creating them when the child's view cannot claim.
func ClaimChild(child *Component, nodes *hydrate.Nodes) {
	if child.fragment == nil {
		return
	}
	if cl, ok := child.fragment.(Claimer); ok {
		cl.Claim(nodes)
		return
	}
	child.rt.logger.Warn("view cannot be hydrated", "code", "E042", "component", child.name)
	child.fragment.Create()
}

// MountChild mounts the child into target before anchor and schedules its
// mount callbacks.
func MountChild(child *Component, target, anchor *dom.Node) {
	child.mount(target, anchor)
}

// DestroyChild destroys the child. Nodes are removed only when detaching.
func DestroyChild(child *Component, detaching bool) {
	child.destroy(detaching)
}
