package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vango-dev/vela/pkg/vdom"
)

func TestRenderPage(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	var buf bytes.Buffer
	err := renderer.RenderPage(&buf, PageData{
		Title:       "Tom & Jerry",
		Meta:        []MetaTag{{Name: "description", Content: "a page"}},
		StyleSheets: []string{"/app.css"},
		Styles:      []string{"@keyframes v_1 { 0% { opacity: 0 } }", "</style><script>"},
		Body:        vdom.Fragment(vdom.Main("hi")),
	})
	if err != nil {
		t.Fatalf("RenderPage() error = %v", err)
	}
	html := buf.String()

	for _, want := range []string{
		"<!DOCTYPE html>\n",
		`<html lang="en">`,
		`<title>Tom &amp; Jerry</title>`,
		`<meta name="description" content="a page">`,
		`<link rel="stylesheet" href="/app.css">`,
		`<style>@keyframes v_1 { 0% { opacity: 0 } }</style>`,
		`<body><main>hi</main></body>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q:\n%s", want, html)
		}
	}
	if strings.Contains(html, "</style><script>") {
		t.Errorf("style content not escaped:\n%s", html)
	}
}

func TestRenderPageLang(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	var buf bytes.Buffer
	if err := renderer.RenderPage(&buf, PageData{Lang: "fr"}); err != nil {
		t.Fatalf("RenderPage() error = %v", err)
	}
	if !strings.Contains(buf.String(), `<html lang="fr">`) {
		t.Errorf("got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "<body></body>") {
		t.Errorf("nil body should render empty, got %q", buf.String())
	}
}
