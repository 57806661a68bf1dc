package dom

import (
	"strings"
)

// NodeType is the node type discriminator.
type NodeType uint8

const (
	ElementNode  NodeType = iota + 1 // <div>, <style>, ...
	TextNode                         // character data
	CommentNode                      // <!-- -->
	DocumentNode                     // document root
	FragmentNode                     // shadow root or detached fragment
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	case CommentNode:
		return "Comment"
	case DocumentNode:
		return "Document"
	case FragmentNode:
		return "Fragment"
	default:
		return "Unknown"
	}
}

// Attr is a single element attribute.
type Attr struct {
	Name  string
	Value string
}

// Node is a node in the document tree.
type Node struct {
	typ  NodeType
	tag  string // lowercase tag name for elements
	data string // character data for text and comment nodes

	attrs []Attr
	style *Style
	sheet *StyleSheet

	parent      *Node
	firstChild  *Node
	lastChild   *Node
	prevSibling *Node
	nextSibling *Node

	owner  *Node // owning document; nil for documents
	host   *Node // shadow host, for shadow roots
	shadow *Node // attached shadow root, for elements

	listeners map[string][]*listener

	claimOrder int
	claimed    bool

	stats *Stats // documents only
}

// Stats counts structural mutations performed on a document's tree.
type Stats struct {
	// Inserts counts InsertBefore/AppendChild calls that attached a node.
	Inserts int
	// Moves counts inserts of a node that was already attached somewhere.
	Moves int
	// Removes counts RemoveChild calls.
	Removes int
}

// Type returns the node type.
func (n *Node) Type() NodeType { return n.typ }

// Tag returns the lowercase tag name of an element, or "".
func (n *Node) Tag() string { return n.tag }

// NodeName returns the DOM nodeName: the uppercase tag for elements and
// "#text", "#comment", "#document" or "#document-fragment" otherwise.
func (n *Node) NodeName() string {
	switch n.typ {
	case ElementNode:
		return strings.ToUpper(n.tag)
	case TextNode:
		return "#text"
	case CommentNode:
		return "#comment"
	case DocumentNode:
		return "#document"
	default:
		return "#document-fragment"
	}
}

// Data returns the character data of a text or comment node.
func (n *Node) Data() string { return n.data }

// SetData replaces the character data of a text or comment node.
func (n *Node) SetData(data string) { n.data = data }

// Parent returns the parent node, or nil when detached.
func (n *Node) Parent() *Node { return n.parent }

// FirstChild returns the first child, or nil.
func (n *Node) FirstChild() *Node { return n.firstChild }

// LastChild returns the last child, or nil.
func (n *Node) LastChild() *Node { return n.lastChild }

// NextSibling returns the next sibling, or nil.
func (n *Node) NextSibling() *Node { return n.nextSibling }

// PrevSibling returns the previous sibling, or nil.
func (n *Node) PrevSibling() *Node { return n.prevSibling }

// ChildNodes returns a snapshot of the node's children.
func (n *Node) ChildNodes() []*Node {
	var out []*Node
	for c := n.firstChild; c != nil; c = c.nextSibling {
		out = append(out, c)
	}
	return out
}

// OwnerDocument returns the document this node belongs to. For a
// document it returns the document itself.
func (n *Node) OwnerDocument() *Node {
	if n.typ == DocumentNode {
		return n
	}
	return n.owner
}

// Contains reports whether other is n or a descendant of n.
func (n *Node) Contains(other *Node) bool {
	for p := other; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// ClaimOrder returns the hydration claim order stamped on the node.
func (n *Node) ClaimOrder() int { return n.claimOrder }

// HasClaimOrder reports whether a claim order was ever assigned.
func (n *Node) HasClaimOrder() bool { return n.claimed }

// SetClaimOrder stamps the node with a hydration claim order.
func (n *Node) SetClaimOrder(order int) {
	n.claimOrder = order
	n.claimed = true
}

// TextContent returns the concatenated text of the node and its descendants.
func (n *Node) TextContent() string {
	if n.typ == TextNode || n.typ == CommentNode {
		return n.data
	}
	var b strings.Builder
	var walk func(*Node)
	walk = func(p *Node) {
		for c := p.firstChild; c != nil; c = c.nextSibling {
			if c.typ == TextNode {
				b.WriteString(c.data)
			} else if c.typ == ElementNode || c.typ == FragmentNode {
				walk(c)
			}
		}
	}
	walk(n)
	return b.String()
}

// InsertBefore inserts child into n before ref. A nil ref appends. If
// child is attached elsewhere it is moved. It panics if ref is not a
// child of n, as the DOM would throw.
func (n *Node) InsertBefore(child, ref *Node) {
	if ref != nil && ref.parent != n {
		panic("dom: InsertBefore reference node is not a child of this node")
	}
	if child == ref {
		return
	}
	if child.Contains(n) {
		panic("dom: InsertBefore would create a cycle")
	}

	moved := child.parent != nil
	if moved {
		child.parent.unlink(child)
	}

	child.parent = n
	if ref == nil {
		child.prevSibling = n.lastChild
		child.nextSibling = nil
		if n.lastChild != nil {
			n.lastChild.nextSibling = child
		} else {
			n.firstChild = child
		}
		n.lastChild = child
	} else {
		child.nextSibling = ref
		child.prevSibling = ref.prevSibling
		if ref.prevSibling != nil {
			ref.prevSibling.nextSibling = child
		} else {
			n.firstChild = child
		}
		ref.prevSibling = child
	}

	if st := n.docStats(); st != nil {
		st.Inserts++
		if moved {
			st.Moves++
		}
	}
}

// AppendChild appends child to n's children.
func (n *Node) AppendChild(child *Node) {
	n.InsertBefore(child, nil)
}

// RemoveChild detaches child from n. It is a no-op when child is not a
// child of n.
func (n *Node) RemoveChild(child *Node) {
	if child.parent != n {
		return
	}
	n.unlink(child)
	if st := n.docStats(); st != nil {
		st.Removes++
	}
}

// Remove detaches n from its parent, if any.
func (n *Node) Remove() {
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
}

func (n *Node) unlink(child *Node) {
	if child.prevSibling != nil {
		child.prevSibling.nextSibling = child.nextSibling
	} else {
		n.firstChild = child.nextSibling
	}
	if child.nextSibling != nil {
		child.nextSibling.prevSibling = child.prevSibling
	} else {
		n.lastChild = child.prevSibling
	}
	child.parent = nil
	child.prevSibling = nil
	child.nextSibling = nil
}

func (n *Node) docStats() *Stats {
	doc := n.OwnerDocument()
	if doc == nil {
		return nil
	}
	return doc.stats
}

// SplitText splits a text node at offset (in bytes). The node keeps the
// text before offset; a new text node holding the remainder is inserted
// directly after it and returned.
func (n *Node) SplitText(offset int) *Node {
	if n.typ != TextNode {
		panic("dom: SplitText on non-text node")
	}
	if offset < 0 || offset > len(n.data) {
		panic("dom: SplitText offset out of range")
	}
	rest := &Node{typ: TextNode, data: n.data[offset:], owner: n.owner}
	n.data = n.data[:offset]
	if n.parent != nil {
		n.parent.InsertBefore(rest, n.nextSibling)
	}
	return rest
}

// GetAttribute returns the value of the named attribute.
func (n *Node) GetAttribute(name string) (string, bool) {
	if name == "style" && n.style != nil && n.style.Len() > 0 {
		return n.style.String(), true
	}
	for _, a := range n.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttribute sets the named attribute. Setting "style" replaces the
// inline style declarations.
func (n *Node) SetAttribute(name, value string) {
	if name == "style" {
		n.Style().parse(value)
		return
	}
	for i := range n.attrs {
		if n.attrs[i].Name == name {
			n.attrs[i].Value = value
			return
		}
	}
	n.attrs = append(n.attrs, Attr{Name: name, Value: value})
}

// RemoveAttribute removes the named attribute.
func (n *Node) RemoveAttribute(name string) {
	if name == "style" {
		n.style = nil
		return
	}
	for i := range n.attrs {
		if n.attrs[i].Name == name {
			n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
			return
		}
	}
}

// HasAttribute reports whether the named attribute is set.
func (n *Node) HasAttribute(name string) bool {
	_, ok := n.GetAttribute(name)
	return ok
}

// Attributes returns the element's attributes in insertion order, with
// the inline style serialized as a "style" attribute when present.
func (n *Node) Attributes() []Attr {
	out := make([]Attr, 0, len(n.attrs)+1)
	out = append(out, n.attrs...)
	if n.style != nil && n.style.Len() > 0 {
		out = append(out, Attr{Name: "style", Value: n.style.String()})
	}
	return out
}

// Style returns the element's inline style, creating it on first use.
func (n *Node) Style() *Style {
	if n.style == nil {
		n.style = &Style{}
	}
	return n.style
}

// AttachShadow attaches a shadow root to an element and returns it.
// Calling it twice returns the existing root.
func (n *Node) AttachShadow() *Node {
	if n.shadow != nil {
		return n.shadow
	}
	n.shadow = &Node{typ: FragmentNode, owner: n.OwnerDocument(), host: n}
	return n.shadow
}

// ShadowRoot returns the attached shadow root, or nil.
func (n *Node) ShadowRoot() *Node { return n.shadow }

// Host returns the shadow host of a shadow root, or nil.
func (n *Node) Host() *Node { return n.host }

// RootNode returns the topmost ancestor of n: a document, a shadow root,
// or the root of a detached subtree.
func (n *Node) RootNode() *Node {
	p := n
	for p.parent != nil {
		p = p.parent
	}
	return p
}

// Sheet returns the stylesheet of a <style> element, creating it on
// first use. It returns nil for other nodes.
func (n *Node) Sheet() *StyleSheet {
	if n.typ != ElementNode || n.tag != "style" {
		return nil
	}
	if n.sheet == nil {
		n.sheet = &StyleSheet{owner: n}
	}
	return n.sheet
}

// Head returns the <head> element of a document, or nil.
func (n *Node) Head() *Node { return n.findChildElement("html", "head") }

// Body returns the <body> element of a document, or nil.
func (n *Node) Body() *Node { return n.findChildElement("html", "body") }

func (n *Node) findChildElement(path ...string) *Node {
	cur := n
	for _, tag := range path {
		var next *Node
		for c := cur.firstChild; c != nil; c = c.nextSibling {
			if c.typ == ElementNode && c.tag == tag {
				next = c
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

// Stats returns the mutation counters of a document, or nil for other
// nodes.
func (n *Node) Stats() *Stats { return n.stats }

// RootForStyle returns the node under which transition stylesheets for
// node must live: the enclosing shadow root when there is one, otherwise
// the owner document.
func RootForStyle(node *Node) *Node {
	if node == nil {
		return nil
	}
	root := node.RootNode()
	if root.typ == FragmentNode && root.host != nil {
		return root
	}
	return node.OwnerDocument()
}
