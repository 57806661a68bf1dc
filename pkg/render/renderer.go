package render

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/net/html"

	"github.com/vango-dev/vela/pkg/host"
	"github.com/vango-dev/vela/pkg/vdom"
	"github.com/vango-dev/vela/pkg/vela"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables indented output. Hydration treats the added
	// whitespace as content, so keep it for debugging only.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string

	// Logger receives component warnings. Defaults to slog.Default().
	Logger *slog.Logger
}

// Renderer renders static VNode trees and components to HTML.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Renderer{config: config}
}

// RenderToString renders a static VNode tree to an HTML string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a static VNode tree to w. Slot, If and
// Component nodes must be resolved first, see View.Snapshot.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	return r.renderNode(w, node, 0)
}

// Component renders k with props. The component is created without a
// target, so its mount callbacks never run, and destroyed afterwards.
func (r *Renderer) Component(w io.Writer, k *vdom.Component, props map[string]any) error {
	rt := vela.NewRuntime(host.NewManual(), vela.WithLogger(r.config.Logger))
	c, err := k.Mount(rt, vela.Options{Props: props})
	if err != nil {
		return err
	}
	defer c.Destroy()

	view, ok := c.Fragment().(*vdom.View)
	if !ok {
		return fmt.Errorf("render: component %q has no view", k.Name)
	}
	return r.renderNode(w, view.Snapshot(), 0)
}

// ComponentToString renders k with props to a string.
func (r *Renderer) ComponentToString(k *vdom.Component, props map[string]any) (string, error) {
	var buf bytes.Buffer
	if err := r.Component(&buf, k, props); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// renderNode dispatches rendering based on node kind.
func (r *Renderer) renderNode(w io.Writer, node *vdom.VNode, depth int) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindElement:
		return r.renderElement(w, node, depth)
	case vdom.KindText:
		_, err := io.WriteString(w, html.EscapeString(node.Text))
		return err
	case vdom.KindFragment:
		for _, child := range node.Children {
			if err := r.renderNode(w, child, depth); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("render: unresolved %s node; render a view snapshot instead", node.Kind)
	}
}

// renderElement renders an HTML element with its attributes and children.
func (r *Renderer) renderElement(w io.Writer, node *vdom.VNode, depth int) error {
	tag := node.Tag

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	if _, err := fmt.Fprintf(w, "<%s", tag); err != nil {
		return err
	}
	if err := r.renderAttributes(w, node); err != nil {
		return err
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}

	if vdom.IsVoidElement(tag) {
		if r.config.Pretty {
			io.WriteString(w, "\n")
		}
		return nil
	}

	block := r.config.Pretty && !isInlineElement(tag) && hasElementChild(node)
	if block {
		io.WriteString(w, "\n")
	}
	for _, child := range node.Children {
		if err := r.renderNode(w, child, depth+1); err != nil {
			return err
		}
	}
	if block {
		r.writeIndent(w, depth)
	}

	if _, err := fmt.Fprintf(w, "</%s>", tag); err != nil {
		return err
	}
	if r.config.Pretty {
		io.WriteString(w, "\n")
	}
	return nil
}

// renderAttributes renders the attributes in template order. Later
// duplicates override earlier ones, as they would on a live element.
func (r *Renderer) renderAttributes(w io.Writer, node *vdom.VNode) error {
	var keys []string
	values := make(map[string]any, len(node.Attrs))
	for _, a := range node.Attrs {
		if _, seen := values[a.Key]; !seen {
			keys = append(keys, a.Key)
		}
		values[a.Key] = a.Value
	}

	for _, key := range keys {
		s, ok := vdom.AttrValue(key, values[key])
		if !ok {
			continue
		}
		if s == "" && vdom.IsBooleanAttr(key) {
			if _, err := fmt.Fprintf(w, " %s", key); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, ` %s="%s"`, key, html.EscapeString(s)); err != nil {
			return err
		}
	}
	return nil
}

// inlineElements don't get newlines in pretty-printed output.
var inlineElements = map[string]bool{
	"a":      true,
	"b":      true,
	"br":     true,
	"code":   true,
	"em":     true,
	"i":      true,
	"label":  true,
	"small":  true,
	"span":   true,
	"strong": true,
}

func isInlineElement(tag string) bool {
	return inlineElements[tag]
}

func hasElementChild(node *vdom.VNode) bool {
	for _, c := range node.Children {
		if c.Kind == vdom.KindElement {
			return true
		}
	}
	return false
}

// writeIndent writes indentation for pretty printing.
func (r *Renderer) writeIndent(w io.Writer, depth int) {
	for i := 0; i < depth; i++ {
		io.WriteString(w, r.config.Indent)
	}
}
