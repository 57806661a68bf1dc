package vdom

import (
	"testing"
)

func TestParseHTML(t *testing.T) {
	tmpl, err := ParseHTML(`<div class="card"><h1>Hi</h1><!-- note --><input disabled></div>tail`)
	if err != nil {
		t.Fatalf("ParseHTML() error = %v", err)
	}
	if tmpl.Kind != KindFragment || len(tmpl.Children) != 2 {
		t.Fatalf("ParseHTML() = %+v, want fragment with 2 children", tmpl)
	}

	div := tmpl.Children[0]
	if div.Tag != "div" || len(div.Attrs) != 1 || div.Attrs[0].Value != "card" {
		t.Errorf("div = %+v", div)
	}
	if len(div.Children) != 2 {
		t.Fatalf("div children = %d, want 2 (comment dropped)", len(div.Children))
	}
	if h1 := div.Children[0]; h1.Tag != "h1" || h1.Children[0].Text != "Hi" {
		t.Errorf("h1 = %+v", h1)
	}
	if input := div.Children[1]; input.Tag != "input" || input.Attrs[0].Key != "disabled" {
		t.Errorf("input = %+v", input)
	}
	if tail := tmpl.Children[1]; tail.Kind != KindText || tail.Text != "tail" {
		t.Errorf("tail = %+v", tail)
	}
}
