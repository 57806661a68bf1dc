package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vango-dev/vela/pkg/dom"
	"github.com/vango-dev/vela/pkg/host"
	"github.com/vango-dev/vela/pkg/vdom"
	"github.com/vango-dev/vela/pkg/vela"
)

func TestRenderText(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(vdom.Text("Hello, World!"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "Hello, World!" {
		t.Errorf("got %q, want %q", html, "Hello, World!")
	}
}

func TestRenderTextEscaping(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(vdom.Text("<script>alert('xss')</script>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Errorf("HTML should be escaped, got %q", html)
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Errorf("should contain escaped script tag, got %q", html)
	}
}

func TestRenderElement(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	node := vdom.Div(vdom.Class("container"),
		vdom.H1("Title"),
		vdom.P("Content"),
	)
	html, err := renderer.RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<div class="container"><h1>Title</h1><p>Content</p></div>`
	if html != want {
		t.Errorf("got %q, want %q", html, want)
	}
}

func TestRenderAttributes(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	tests := []struct {
		name string
		node *vdom.VNode
		want string
	}{
		{"boolean true", vdom.Button(vdom.Disabled(), "Go"), `<button disabled>Go</button>`},
		{"boolean false", vdom.Button(vdom.AttrKV("disabled", false), "Go"), `<button>Go</button>`},
		{"quoted value", vdom.Div(vdom.TitleAttr(`say "hi"`)), `<div title="say &#34;hi&#34;"></div>`},
		{"template order", vdom.Div(vdom.ID("a"), vdom.Class("b")), `<div id="a" class="b"></div>`},
		{"last duplicate wins", vdom.Div(vdom.Class("x"), vdom.Class("y")), `<div class="y"></div>`},
		{"void element", vdom.Input(vdom.Type("text")), `<input type="text">`},
		{"non-boolean true", vdom.Div(vdom.AttrKV("data-open", true)), `<div data-open="true"></div>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := renderer.RenderToString(tt.node)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderUnresolvedSlot(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	if _, err := renderer.RenderToString(vdom.P(vdom.Slot(0))); err == nil {
		t.Error("expected error for unresolved slot")
	}
}

func TestRenderPretty(t *testing.T) {
	renderer := NewRenderer(RendererConfig{Pretty: true})

	html, err := renderer.RenderToString(vdom.Ul(vdom.Li("one"), vdom.Li("two")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "<ul>\n  <li>one</li>\n  <li>two</li>\n</ul>\n"
	if html != want {
		t.Errorf("got %q, want %q", html, want)
	}
}

var greeting = &vdom.Component{
	Name:     "Greeting",
	Template: vdom.Div(vdom.Class("greeting"), vdom.BindAttr("title", 0), vdom.H1(vdom.Slot(0)), vdom.If(1, vdom.P("new"))),
	Props:    map[string]int{"name": 0, "fresh": 1},
	Instance: func(_ *vela.Component, props map[string]any, _ vela.Invalidate) vela.Instance {
		return vela.Instance{Ctx: []any{props["name"], props["fresh"]}}
	},
}

func TestRenderComponent(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.ComponentToString(greeting, map[string]any{"name": "Ada & co", "fresh": true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<div class="greeting" title="Ada &amp; co"><h1>Ada &amp; co</h1><p>new</p></div>`
	if html != want {
		t.Errorf("got %q, want %q", html, want)
	}

	html, _ = renderer.ComponentToString(greeting, map[string]any{"name": "Bob", "fresh": false})
	if want := `<div class="greeting" title="Bob"><h1>Bob</h1></div>`; html != want {
		t.Errorf("got %q, want %q", html, want)
	}
}

func TestRenderedMarkupHydrates(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	k := &vdom.Component{
		Name:     "Counter",
		Template: vdom.Fragment(vdom.P("Count: ", vdom.Slot(0)), vdom.Button(vdom.Class("inc"), "+")),
		Props:    map[string]int{"count": 0},
		Instance: func(_ *vela.Component, props map[string]any, _ vela.Invalidate) vela.Instance {
			return vela.Instance{Ctx: []any{props["count"]}}
		},
	}
	props := map[string]any{"count": 3}

	var buf bytes.Buffer
	if err := renderer.Component(&buf, k, props); err != nil {
		t.Fatalf("Component() error = %v", err)
	}

	doc := dom.NewDocument()
	body := doc.Body()
	if err := dom.ParseFragment(body, buf.String()); err != nil {
		t.Fatal(err)
	}
	p := body.FirstChild()
	doc.ResetStats()

	rt := vela.NewRuntime(host.NewManual())
	if _, err := k.Mount(rt, vela.Options{Target: body, Props: props, Hydrate: true}); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if err := rt.Hydration().Err(); err != nil {
		t.Errorf("hydration error = %v", err)
	}
	if body.FirstChild() != p {
		t.Error("server <p> was replaced")
	}
	if got := body.InnerHTML(); got != buf.String() {
		t.Errorf("body = %q, want %q", got, buf.String())
	}
	if st := doc.Stats(); st.Moves != 0 {
		t.Errorf("Stats().Moves = %d, want 0", st.Moves)
	}
}
