package vdom

import (
	"testing"

	"github.com/vango-dev/vela/pkg/dom"
	"github.com/vango-dev/vela/pkg/transition"
)

func TestCreateElement(t *testing.T) {
	t.Run("basic element", func(t *testing.T) {
		node := Div()
		if node.Kind != KindElement {
			t.Errorf("Kind = %v, want KindElement", node.Kind)
		}
		if node.Tag != "div" {
			t.Errorf("Tag = %v, want div", node.Tag)
		}
	})

	t.Run("static and bound attributes", func(t *testing.T) {
		node := Div(Class("card", "wide"), nil, BindAttr("title", 2))
		if len(node.Attrs) != 1 || node.Attrs[0].Value != "card wide" {
			t.Errorf("Attrs = %v, want class=card wide", node.Attrs)
		}
		if len(node.Bound) != 1 || node.Bound[0].Slot != 2 {
			t.Errorf("Bound = %v, want title bound to slot 2", node.Bound)
		}
	})

	t.Run("string shorthand and slots", func(t *testing.T) {
		node := P("Count: ", Slot(0))
		if len(node.Children) != 2 {
			t.Fatalf("Children len = %v, want 2", len(node.Children))
		}
		if node.Children[0].Kind != KindText || node.Children[1].Kind != KindSlot {
			t.Errorf("Children kinds = %v, %v", node.Children[0].Kind, node.Children[1].Kind)
		}
	})

	t.Run("events transitions and actions", func(t *testing.T) {
		noop := func(*dom.Event) {}
		act := func(*dom.Node, any) ActionHandle { return nil }
		node := Button(OnClick(noop), Local(In(transition.Fade, nil)), Use(act, 1))
		if len(node.Events) != 1 || node.Events[0].Event != "click" {
			t.Errorf("Events = %v", node.Events)
		}
		if len(node.Transitions) != 1 || !node.Transitions[0].Local || node.Transitions[0].Dir != transition.In {
			t.Errorf("Transitions = %+v", node.Transitions)
		}
		if len(node.Actions) != 1 || node.Actions[0].Slot != -1 {
			t.Errorf("Actions = %+v", node.Actions)
		}
	})
}

func TestAttrValue(t *testing.T) {
	tests := []struct {
		key   string
		value any
		want  string
		ok    bool
	}{
		{"class", "a", "a", true},
		{"disabled", true, "", true},
		{"disabled", false, "", false},
		{"data-open", true, "true", true},
		{"tabindex", 3, "3", true},
		{"data-x", 1.5, "1.5", true},
		{"title", nil, "", false},
	}
	for _, tt := range tests {
		got, ok := AttrValue(tt.key, tt.value)
		if got != tt.want || ok != tt.ok {
			t.Errorf("AttrValue(%q, %v) = %q, %v, want %q, %v", tt.key, tt.value, got, ok, tt.want, tt.ok)
		}
	}
}

func TestVoidElements(t *testing.T) {
	if !IsVoidElement("br") || IsVoidElement("div") {
		t.Error("IsVoidElement mismatch")
	}
}
