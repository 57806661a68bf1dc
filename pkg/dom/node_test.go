package dom

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func names(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		if n.Type() == TextNode {
			out[i] = "#" + n.Data()
		} else {
			out[i] = n.Tag()
		}
	}
	return out
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument()
	if doc.Head() == nil || doc.Body() == nil {
		t.Fatal("document should have head and body")
	}
	if st := doc.Stats(); *st != (Stats{}) {
		t.Errorf("Stats = %+v, want zero", *st)
	}
	if doc.Body().OwnerDocument() != doc {
		t.Error("body owner should be the document")
	}
}

func TestInsertBeforeAndMove(t *testing.T) {
	doc := NewDocument()
	body := doc.Body()
	a, b, c := doc.CreateElement("a"), doc.CreateElement("b"), doc.CreateElement("c")
	body.AppendChild(a)
	body.AppendChild(b)
	body.InsertBefore(c, a)

	if diff := cmp.Diff([]string{"c", "a", "b"}, names(body.ChildNodes())); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}

	body.AppendChild(c)
	if diff := cmp.Diff([]string{"a", "b", "c"}, names(body.ChildNodes())); diff != "" {
		t.Errorf("children after move mismatch (-want +got):\n%s", diff)
	}
	st := doc.Stats()
	if st.Inserts != 4 || st.Moves != 1 {
		t.Errorf("Stats = %+v, want 4 inserts and 1 move", *st)
	}
	if a.PrevSibling() != nil || c.NextSibling() != nil || body.LastChild() != c {
		t.Error("sibling links are inconsistent")
	}
}

func TestInsertBeforeForeignRefPanics(t *testing.T) {
	doc := NewDocument()
	defer func() {
		if recover() == nil {
			t.Error("expected panic for foreign reference node")
		}
	}()
	doc.Body().InsertBefore(doc.CreateElement("p"), doc.CreateElement("q"))
}

func TestRemoveChild(t *testing.T) {
	doc := NewDocument()
	p := doc.CreateElement("p")
	doc.Body().AppendChild(p)
	p.Remove()
	if p.Parent() != nil || doc.Body().FirstChild() != nil {
		t.Error("node should be detached")
	}
	if doc.Stats().Removes != 1 {
		t.Errorf("Removes = %d, want 1", doc.Stats().Removes)
	}
	// Removing a non-child is a no-op.
	doc.Body().RemoveChild(p)
	if doc.Stats().Removes != 1 {
		t.Errorf("Removes = %d, want 1", doc.Stats().Removes)
	}
}

func TestSplitText(t *testing.T) {
	doc := NewDocument()
	body := doc.Body()
	txt := doc.CreateTextNode("hello world")
	body.AppendChild(txt)
	body.AppendChild(doc.CreateElement("span"))

	rest := txt.SplitText(5)
	if txt.Data() != "hello" || rest.Data() != " world" {
		t.Errorf("split = %q/%q, want hello/ world", txt.Data(), rest.Data())
	}
	if diff := cmp.Diff([]string{"#hello", "# world", "span"}, names(body.ChildNodes())); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestAttributes(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")
	el.SetAttribute("id", "x")
	el.SetAttribute("class", "a")
	el.SetAttribute("class", "b")
	el.SetAttribute("style", "color: red; opacity: 0.5")

	if v, _ := el.GetAttribute("class"); v != "b" {
		t.Errorf("class = %q, want b", v)
	}
	if got := el.Style().Get("opacity"); got != "0.5" {
		t.Errorf("opacity = %q, want 0.5", got)
	}
	want := []Attr{{"id", "x"}, {"class", "b"}, {"style", "color: red; opacity: 0.5;"}}
	if diff := cmp.Diff(want, el.Attributes()); diff != "" {
		t.Errorf("attributes mismatch (-want +got):\n%s", diff)
	}

	el.RemoveAttribute("id")
	el.RemoveAttribute("style")
	if el.HasAttribute("id") || el.HasAttribute("style") {
		t.Error("attributes should be removed")
	}
}

func TestStyle(t *testing.T) {
	var s Style
	s.Set("animation", "a 100ms linear 0ms 1 both", false)
	s.Set("display", "none", true)
	s.Set("animation", "a, b", false)
	if got := s.String(); got != "animation: a, b; display: none !important;" {
		t.Errorf("String() = %q", got)
	}
	s.Set("animation", "", false)
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
	if got := s.Float("opacity", 1); got != 1 {
		t.Errorf("Float default = %v, want 1", got)
	}
}

func TestStyleSheet(t *testing.T) {
	doc := NewDocument()
	style := doc.CreateElement("style")
	sheet := style.Sheet()
	sheet.InsertRule("@keyframes b {}", 0)
	sheet.InsertRule("@keyframes c {}", 99)
	sheet.InsertRule("@keyframes a {}", 0)
	if diff := cmp.Diff([]string{"@keyframes a {}", "@keyframes b {}", "@keyframes c {}"}, sheet.Rules()); diff != "" {
		t.Errorf("rules mismatch (-want +got):\n%s", diff)
	}
	sheet.DeleteRule(1)
	if sheet.Len() != 2 || sheet.OwnerNode() != style {
		t.Errorf("Len() = %d, want 2", sheet.Len())
	}
	if doc.CreateElement("div").Sheet() != nil {
		t.Error("non-style element should have no sheet")
	}
}

func TestRootForStyle(t *testing.T) {
	doc := NewDocument()
	hostEl := doc.CreateElement("div")
	doc.Body().AppendChild(hostEl)
	shadow := hostEl.AttachShadow()
	inner := doc.CreateElement("span")
	shadow.AppendChild(inner)

	if got := RootForStyle(inner); got != shadow {
		t.Error("node in shadow tree should use the shadow root")
	}
	if got := RootForStyle(hostEl); got != doc {
		t.Error("node in light tree should use the document")
	}
	if got := RootForStyle(doc.CreateElement("p")); got != doc {
		t.Error("detached node should use its owner document")
	}
}

func TestTextContent(t *testing.T) {
	doc := NewDocument()
	if err := ParseFragment(doc.Body(), "<p>a<b>b</b><!--x-->c</p>"); err != nil {
		t.Fatal(err)
	}
	if got := doc.Body().TextContent(); got != "abc" {
		t.Errorf("TextContent() = %q, want abc", got)
	}
	if !strings.Contains(doc.Body().InnerHTML(), "<!--x-->") {
		t.Errorf("InnerHTML() = %q, missing comment", doc.Body().InnerHTML())
	}
}
