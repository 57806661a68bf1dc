package hydrate

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/vela/pkg/dom"
)

func TestSessionAppendReordersOnce(t *testing.T) {
	body := parseBody(t, "<b></b><a></a>")
	doc := body.OwnerDocument()
	obs := &countingObserver{}
	s := NewSession(Options{Observer: obs})
	s.Start()

	nodes := s.Children(body)
	a := ClaimElement(nodes, "a", nil)
	b := ClaimElement(nodes, "b", nil)
	s.Append(body, a)
	s.Append(body, b)
	s.End()

	if diff := cmp.Diff([]string{"a", "b"}, describe(body.ChildNodes())); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
	if s.Moves() != 1 || obs.moves != 1 {
		t.Errorf("Moves() = %d, observer = %d, want 1", s.Moves(), obs.moves)
	}
	if got := doc.Stats().Moves; got != 1 {
		t.Errorf("Stats().Moves = %d, want 1", got)
	}
	if obs.results[ResultClaimed] != 2 {
		t.Errorf("claimed = %d, want 2", obs.results[ResultClaimed])
	}
}

func TestSessionAppendInsertsCreatedNodes(t *testing.T) {
	body := parseBody(t, "<a></a>")
	s := NewSession(Options{})
	s.Start()
	nodes := s.Children(body)
	a := ClaimElement(nodes, "a", nil)
	c := ClaimElement(nodes, "c", nil)
	s.Append(body, a)
	s.Append(body, c)
	s.End()

	if diff := cmp.Diff([]string{"a", "c"}, describe(body.ChildNodes())); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestSessionAppendNotHydrating(t *testing.T) {
	doc := dom.NewDocument()
	body := doc.Body()
	s := NewSession(Options{})
	a, b := doc.CreateElement("a"), doc.CreateElement("b")
	s.Append(body, a)
	s.Append(body, b)
	s.Append(body, b)
	s.Insert(body, a, nil)

	if diff := cmp.Diff([]string{"b", "a"}, describe(body.ChildNodes())); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
	if doc.Stats().Inserts != 3 {
		t.Errorf("Inserts = %d, want 3", doc.Stats().Inserts)
	}
}

func TestSessionInsertWithAnchor(t *testing.T) {
	body := parseBody(t, "<a></a><z></z>")
	s := NewSession(Options{})
	s.Start()
	nodes := s.Children(body)
	a := ClaimElement(nodes, "a", nil)
	z := ClaimElement(nodes, "z", nil)
	m := ClaimElement(nodes, "m", nil)
	s.Append(body, a)
	s.Append(body, z)
	s.Insert(body, m, z)
	s.End()

	if diff := cmp.Diff([]string{"a", "m", "z"}, describe(body.ChildNodes())); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
	if s.Hydrating() {
		t.Error("Hydrating() should be false after End")
	}
}
