// Package dom is the in-process document model the vela runtime operates on.
//
// It mirrors the part of the browser DOM that compiled views and the runtime
// touch: a mutable node tree with sibling links, text splitting, attributes,
// inline style, <style> elements carrying rule lists, shadow roots, and
// custom event dispatch. Server markup is parsed into this model with
// ParseHTML and serialized back with Render.
//
// Nodes also carry the claim order assigned during hydration, which the
// hydrate package uses to decide which nodes belong to a reconciliation.
//
// The model is not safe for concurrent use. All mutation happens on the
// goroutine that drives the owning runtime.
package dom
