package hydrate

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/vela/internal/errors"
	"github.com/vango-dev/vela/pkg/dom"
)

func parseBody(t *testing.T, markup string) *dom.Node {
	t.Helper()
	doc := dom.NewDocument()
	if err := dom.ParseFragment(doc.Body(), markup); err != nil {
		t.Fatal(err)
	}
	doc.ResetStats()
	return doc.Body()
}

func describe(nodes []*dom.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		switch n.Type() {
		case dom.TextNode:
			out[i] = "#" + n.Data()
		case dom.CommentNode:
			out[i] = "!" + n.Data()
		default:
			out[i] = n.Tag()
		}
	}
	return out
}

type countingObserver struct {
	results map[string]int
	moves   int
}

func (c *countingObserver) Claimed(result string) {
	if c.results == nil {
		c.results = make(map[string]int)
	}
	c.results[result]++
}

func (c *countingObserver) Reordered(moves int) { c.moves += moves }

func TestClaimElementForwardAndBackward(t *testing.T) {
	body := parseBody(t, "<h1></h1><p></p><span></span>")
	nodes := Children(body)

	p := ClaimElement(nodes, "P", nil)
	if p.Tag() != "p" || p.Parent() != body {
		t.Fatalf("claimed %v, want existing p", p.Tag())
	}
	if nodes.LastIndex != 1 {
		t.Errorf("LastIndex = %d, want 1", nodes.LastIndex)
	}

	// h1 is behind the cursor and is found by the backward search.
	h1 := ClaimElement(nodes, "h1", nil)
	if h1.Parent() != body {
		t.Error("h1 should be the existing node")
	}
	if nodes.LastIndex != 0 {
		t.Errorf("LastIndex = %d, want 0", nodes.LastIndex)
	}

	div := ClaimElement(nodes, "div", nil)
	if div.Parent() != nil {
		t.Error("div should be newly created")
	}

	if got := []int{p.ClaimOrder(), h1.ClaimOrder(), div.ClaimOrder()}; !cmp.Equal(got, []int{0, 1, 2}) {
		t.Errorf("claim orders = %v, want [0 1 2]", got)
	}
	if nodes.TotalClaimed != 3 {
		t.Errorf("TotalClaimed = %d, want 3", nodes.TotalClaimed)
	}
	if diff := cmp.Diff([]string{"span"}, describe(nodes.List())); diff != "" {
		t.Errorf("remaining mismatch (-want +got):\n%s", diff)
	}
}

func TestClaimElementStripsUnexpectedAttributes(t *testing.T) {
	body := parseBody(t, `<div id="a" class="b" data-x="c"></div>`)
	div := ClaimElement(Children(body), "div", []string{"class"})
	want := []dom.Attr{{Name: "class", Value: "b"}}
	if diff := cmp.Diff(want, div.Attributes()); diff != "" {
		t.Errorf("attributes mismatch (-want +got):\n%s", diff)
	}
}

func TestClaimKeepIndexBackwardRemoval(t *testing.T) {
	body := parseBody(t, "<a></a><b></b><i></i>")
	nodes := Children(body)
	ClaimElement(nodes, "i", nil)
	if nodes.LastIndex != 2 {
		t.Fatalf("LastIndex = %d, want 2", nodes.LastIndex)
	}
	nodes.Claim(
		func(n *dom.Node) bool { return n.Tag() == "a" },
		func(*dom.Node) *dom.Node { return nil },
		func() *dom.Node { t.Fatal("unexpected create"); return nil },
		true,
	)
	if nodes.LastIndex != 1 {
		t.Errorf("LastIndex = %d, want 1", nodes.LastIndex)
	}
	if diff := cmp.Diff([]string{"b"}, describe(nodes.List())); diff != "" {
		t.Errorf("remaining mismatch (-want +got):\n%s", diff)
	}
}

func TestClaimTextSplitRemainderStaysClaimable(t *testing.T) {
	body := parseBody(t, "helloworld")
	nodes := Children(body)

	hello := ClaimText(nodes, "hello")
	if hello.Data() != "hello" {
		t.Errorf("first = %q, want hello", hello.Data())
	}
	if nodes.LastIndex != 0 {
		t.Errorf("LastIndex = %d, want 0", nodes.LastIndex)
	}
	world := ClaimText(nodes, "world")
	if world.Data() != "world" || world.Parent() != body {
		t.Errorf("second = %q, want the existing remainder world", world.Data())
	}
	if diff := cmp.Diff([]string{"#hello", "#world"}, describe(body.ChildNodes())); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
	if nodes.Len() != 0 {
		t.Errorf("Len() = %d, want 0", nodes.Len())
	}
}

func TestClaimTextMismatch(t *testing.T) {
	tests := []struct {
		name    string
		strict  bool
		wantErr bool
	}{
		{"repair", false, false},
		{"strict", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := parseBody(t, "server")
			obs := &countingObserver{}
			s := NewSession(Options{Strict: tt.strict, Observer: obs})
			s.Start()
			txt := ClaimText(s.Children(body), "client")
			s.End()

			if txt.Data() != "client" || txt.Parent() != body {
				t.Errorf("text = %q, want repaired existing node", txt.Data())
			}
			if s.Mismatches() != 1 || obs.results[ResultMismatch] != 1 {
				t.Errorf("mismatches = %d/%d, want 1", s.Mismatches(), obs.results[ResultMismatch])
			}
			if obs.results[ResultClaimed] != 0 {
				t.Errorf("claimed = %d, want a mismatched claim reported once", obs.results[ResultClaimed])
			}
			err := s.Err()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Err() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && errors.Code(err) != "E040" {
				t.Errorf("Code() = %q, want E040", errors.Code(err))
			}
		})
	}
}

func TestClaimTextCreatesWhenMissing(t *testing.T) {
	body := parseBody(t, "<p></p>")
	obs := &countingObserver{}
	s := NewSession(Options{Observer: obs})
	s.Start()
	txt := ClaimText(s.Children(body), "x")
	s.End()
	if txt.Parent() != nil || txt.Data() != "x" {
		t.Error("text should be newly created")
	}
	if obs.results[ResultCreated] != 1 {
		t.Errorf("created = %d, want 1", obs.results[ResultCreated])
	}
}

func TestDetachUnclaimed(t *testing.T) {
	body := parseBody(t, "<p></p><!--c--><span></span>")
	nodes := Children(body)
	ClaimElement(nodes, "span", nil)
	if n := DetachUnclaimed(nodes); n != 2 {
		t.Errorf("DetachUnclaimed() = %d, want 2", n)
	}
	if diff := cmp.Diff([]string{"span"}, describe(body.ChildNodes())); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestClaimResultsReportedOncePerClaim(t *testing.T) {
	body := parseBody(t, "<p>a</p>server<b></b>")
	obs := &countingObserver{}
	s := NewSession(Options{Observer: obs})
	s.Start()
	nodes := s.Children(body)
	ClaimElement(nodes, "p", nil)
	ClaimText(nodes, "client")
	ClaimElement(nodes, "b", nil)
	ClaimElement(nodes, "i", nil)
	s.End()

	want := map[string]int{ResultClaimed: 2, ResultMismatch: 1, ResultCreated: 1}
	if diff := cmp.Diff(want, obs.results); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
}
