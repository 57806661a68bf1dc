// Package render provides server-side rendering of vela components.
//
// The output is the markup a later hydration pass adopts: the same
// elements and text a View would create, with nothing added. Rendering
// runs the component script under a throwaway runtime, takes a snapshot
// of its view and writes the snapshot as HTML.
//
//	r := render.NewRenderer(render.RendererConfig{})
//	html, err := r.ComponentToString(counter, map[string]any{"count": 3})
//
// Text and attribute values are escaped. Pretty printing adds whitespace
// text nodes, so it should not be used for markup that will be hydrated.
package render
