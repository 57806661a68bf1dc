package dom

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseDocument parses a full HTML document.
func ParseDocument(r io.Reader) (*Node, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	doc := newDocumentNode()
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if n := fromHTML(doc, c); n != nil {
			doc.AppendChild(n)
		}
	}
	doc.ResetStats()
	return doc, nil
}

// ParseFragment parses markup in the context of parent and appends the
// resulting nodes to it. The document's mutation counters are not touched.
func ParseFragment(parent *Node, markup string) error {
	doc := parent.OwnerDocument()
	ctxTag := parent.tag
	if parent.typ != ElementNode {
		ctxTag = "body"
	}
	context := &html.Node{Type: html.ElementNode, Data: ctxTag, DataAtom: atom.Lookup([]byte(ctxTag))}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return err
	}
	var saved Stats
	if doc != nil && doc.stats != nil {
		saved = *doc.stats
	}
	for _, h := range nodes {
		if n := fromHTML(doc, h); n != nil {
			parent.AppendChild(n)
		}
	}
	if doc != nil && doc.stats != nil {
		*doc.stats = saved
	}
	return nil
}

func fromHTML(doc *Node, h *html.Node) *Node {
	var n *Node
	switch h.Type {
	case html.ElementNode:
		n = doc.CreateElement(h.Data)
		for _, a := range h.Attr {
			name := a.Key
			if a.Namespace != "" {
				name = a.Namespace + ":" + a.Key
			}
			n.SetAttribute(name, a.Val)
		}
	case html.TextNode:
		return doc.CreateTextNode(h.Data)
	case html.CommentNode:
		return doc.CreateComment(h.Data)
	default:
		return nil
	}
	for c := h.FirstChild; c != nil; c = c.NextSibling {
		if child := fromHTML(doc, c); child != nil {
			n.AppendChild(child)
		}
	}
	return n
}

func toHTML(n *Node) *html.Node {
	switch n.typ {
	case TextNode:
		return &html.Node{Type: html.TextNode, Data: n.data}
	case CommentNode:
		return &html.Node{Type: html.CommentNode, Data: n.data}
	case DocumentNode:
		h := &html.Node{Type: html.DocumentNode}
		h.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
		appendHTMLChildren(h, n)
		return h
	case FragmentNode:
		h := &html.Node{Type: html.DocumentNode}
		appendHTMLChildren(h, n)
		return h
	}
	h := &html.Node{Type: html.ElementNode, Data: n.tag, DataAtom: atom.Lookup([]byte(n.tag))}
	for _, a := range n.Attributes() {
		h.Attr = append(h.Attr, html.Attribute{Key: a.Name, Val: a.Value})
	}
	if n.tag == "style" && n.sheet != nil && n.sheet.Len() > 0 {
		h.AppendChild(&html.Node{Type: html.TextNode, Data: strings.Join(n.sheet.rules, "\n")})
		return h
	}
	appendHTMLChildren(h, n)
	return h
}

func appendHTMLChildren(h *html.Node, n *Node) {
	for c := n.firstChild; c != nil; c = c.nextSibling {
		h.AppendChild(toHTML(c))
	}
}

// Render writes the HTML serialization of n to w.
func Render(w io.Writer, n *Node) error {
	h := toHTML(n)
	if h.Type == html.DocumentNode && n.typ == FragmentNode {
		for c := h.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(w, c); err != nil {
				return err
			}
		}
		return nil
	}
	return html.Render(w, h)
}

// OuterHTML returns the serialization of n including n itself.
func (n *Node) OuterHTML() string {
	var buf bytes.Buffer
	_ = Render(&buf, n)
	return buf.String()
}

// InnerHTML returns the serialization of n's children.
func (n *Node) InnerHTML() string {
	var buf bytes.Buffer
	for c := n.firstChild; c != nil; c = c.nextSibling {
		_ = Render(&buf, c)
	}
	return buf.String()
}

// SetInnerHTML replaces n's children with the parsed markup.
func (n *Node) SetInnerHTML(markup string) error {
	for n.firstChild != nil {
		n.unlink(n.firstChild)
	}
	return ParseFragment(n, markup)
}
