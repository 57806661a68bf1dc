package vdom

import (
	"sync"

	"github.com/vango-dev/vela/pkg/vela"
)

// Component pairs a view template with the script that fills its slots.
type Component struct {
	Name     string
	Template *VNode

	// Instance runs once per component instance. See vela.Definition.
	Instance func(c *vela.Component, props map[string]any, invalidate vela.Invalidate) vela.Instance

	// Props maps prop names to context slots.
	Props map[string]int

	// NotEqual overrides the slot comparison. See vela.Definition.
	NotEqual func(a, b any) bool

	once sync.Once
	def  *vela.Definition
}

// Definition returns the runtime definition of k, building it on first
// use.
func (k *Component) Definition() *vela.Definition {
	k.once.Do(func() {
		k.def = &vela.Definition{
			Name:     k.Name,
			Instance: k.Instance,
			Props:    k.Props,
			NotEqual: k.NotEqual,
			Fragment: func(c *vela.Component) vela.Fragment {
				return NewView(c, k.Template)
			},
		}
	})
	return k.def
}

// Mount creates an instance of k in rt with the given options.
func (k *Component) Mount(rt *vela.Runtime, opts vela.Options) (*vela.Component, error) {
	return vela.New(rt, k.Definition(), opts)
}
