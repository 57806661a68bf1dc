package dom

import "strings"

// NewDocument creates an empty document with <html>, <head> and <body>.
func NewDocument() *Node {
	doc := newDocumentNode()
	html := doc.CreateElement("html")
	html.AppendChild(doc.CreateElement("head"))
	html.AppendChild(doc.CreateElement("body"))
	doc.AppendChild(html)
	*doc.stats = Stats{}
	return doc
}

func newDocumentNode() *Node {
	return &Node{typ: DocumentNode, stats: &Stats{}}
}

// CreateElement creates a detached element owned by the document.
func (n *Node) CreateElement(tag string) *Node {
	return &Node{typ: ElementNode, tag: strings.ToLower(tag), owner: n.OwnerDocument()}
}

// CreateTextNode creates a detached text node owned by the document.
func (n *Node) CreateTextNode(data string) *Node {
	return &Node{typ: TextNode, data: data, owner: n.OwnerDocument()}
}

// CreateComment creates a detached comment node owned by the document.
func (n *Node) CreateComment(data string) *Node {
	return &Node{typ: CommentNode, data: data, owner: n.OwnerDocument()}
}

// ResetStats zeroes the document's mutation counters.
func (n *Node) ResetStats() {
	if n.stats != nil {
		*n.stats = Stats{}
	}
}

// CreateFragment creates a detached fragment owned by the document.
func (n *Node) CreateFragment() *Node {
	return &Node{typ: FragmentNode, owner: n.OwnerDocument()}
}
