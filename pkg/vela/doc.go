// Package vela is the component base of the runtime.
//
// A Runtime ties together the update scheduler, the transition engine and
// the hydration session for one document. Components are created against
// a Runtime from a Definition:
//
//	rt := vela.NewRuntime(host.NewManual())
//	c, err := vela.New(rt, counter, vela.Options{Target: doc.Body()})
//
// A Definition supplies two functions. Instance runs the component script
// and returns the context slots; Fragment builds the view that renders
// those slots. Assigning a slot through the invalidate function marks the
// component dirty, and the next flush calls the fragment's Update with the
// dirty bitmask.
//
// All methods must be called from the goroutine that drives the runtime's
// host.
package vela
