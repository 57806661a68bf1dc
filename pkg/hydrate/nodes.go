package hydrate

import (
	"strings"

	"github.com/vango-dev/vela/pkg/dom"
)

// Nodes is the list of candidate nodes a view claims from, usually the
// children of one container.
type Nodes struct {
	list []*dom.Node

	// LastIndex is the claim cursor. Forward searches start here.
	LastIndex int

	// TotalClaimed is the number of nodes claimed or created so far; it is
	// the next claim order.
	TotalClaimed int

	container *dom.Node
	session   *Session
}

// Children returns the children of container as claim candidates.
func Children(container *dom.Node) *Nodes {
	return &Nodes{list: container.ChildNodes(), container: container}
}

// Container returns the node the candidates were taken from.
func (n *Nodes) Container() *dom.Node { return n.container }

// Len returns the number of unclaimed candidates.
func (n *Nodes) Len() int { return len(n.list) }

// List returns a copy of the unclaimed candidates.
func (n *Nodes) List() []*dom.Node { return append([]*dom.Node(nil), n.list...) }

func (n *Nodes) document() *dom.Node {
	if n.container != nil {
		return n.container.OwnerDocument()
	}
	if len(n.list) > 0 {
		return n.list[0].OwnerDocument()
	}
	return nil
}

// Claim finds a candidate for which match returns true, searching forward
// from LastIndex and then backward from just before it. The matched node
// is passed to process, which returns a node to keep in its place in the
// list, or nil to drop it from the list. If nothing matches, create is
// called. Either way the result is stamped with the next claim order.
//
// With keepIndex set LastIndex is left alone, except that a backward match
// which drops a node shifts it down by one so it keeps pointing at the
// same candidate.
func (n *Nodes) Claim(match func(*dom.Node) bool, process func(*dom.Node) *dom.Node, create func() *dom.Node, keepIndex bool) *dom.Node {
	node, found := n.find(match, process, keepIndex)
	if !found {
		node = create()
		n.session.observe(ResultCreated)
	} else {
		n.session.observe(ResultClaimed)
	}
	node.SetClaimOrder(n.TotalClaimed)
	n.TotalClaimed++
	return node
}

func (n *Nodes) find(match func(*dom.Node) bool, process func(*dom.Node) *dom.Node, keepIndex bool) (*dom.Node, bool) {
	for i := n.LastIndex; i < len(n.list); i++ {
		node := n.list[i]
		if !match(node) {
			continue
		}
		n.replace(i, process(node))
		if !keepIndex {
			n.LastIndex = i
		}
		return node, true
	}
	for i := n.LastIndex - 1; i >= 0; i-- {
		node := n.list[i]
		if !match(node) {
			continue
		}
		replacement := process(node)
		n.replace(i, replacement)
		if !keepIndex {
			n.LastIndex = i
		} else if replacement == nil {
			n.LastIndex--
		}
		return node, true
	}
	return nil, false
}

func (n *Nodes) replace(i int, replacement *dom.Node) {
	if replacement != nil {
		n.list[i] = replacement
		return
	}
	n.list = append(n.list[:i], n.list[i+1:]...)
}

// ClaimElement claims an element with the given tag name and strips every
// attribute not named in attrs. A new element is created when none
// matches.
func ClaimElement(nodes *Nodes, name string, attrs []string) *dom.Node {
	name = strings.ToLower(name)
	keep := make(map[string]bool, len(attrs))
	for _, a := range attrs {
		keep[a] = true
	}
	return nodes.Claim(
		func(node *dom.Node) bool {
			return node.Type() == dom.ElementNode && node.Tag() == name
		},
		func(node *dom.Node) *dom.Node {
			var remove []string
			for _, a := range node.Attributes() {
				if !keep[a.Name] {
					remove = append(remove, a.Name)
				}
			}
			for _, a := range remove {
				node.RemoveAttribute(a)
			}
			return nil
		},
		func() *dom.Node { return nodes.document().CreateElement(name) },
		false,
	)
}

// ClaimText claims a text node whose data starts with data. When the
// server text is longer, the node is split and the remainder stays
// claimable in its place. A text node with different content is
// overwritten. ClaimText does not move the claim cursor.
func ClaimText(nodes *Nodes, data string) *dom.Node {
	return nodes.Claim(
		func(node *dom.Node) bool { return node.Type() == dom.TextNode },
		func(node *dom.Node) *dom.Node {
			found := node.Data()
			if strings.HasPrefix(found, data) {
				if len(found) != len(data) {
					return node.SplitText(len(data))
				}
				return nil
			}
			node.SetData(data)
			nodes.session.mismatch(data, found)
			return nil
		},
		func() *dom.Node { return nodes.document().CreateTextNode(data) },
		true,
	)
}

// ClaimSpace claims a single-space text node.
func ClaimSpace(nodes *Nodes) *dom.Node {
	return ClaimText(nodes, " ")
}

// ClaimComment claims a comment node, overwriting its data.
func ClaimComment(nodes *Nodes, data string) *dom.Node {
	return nodes.Claim(
		func(node *dom.Node) bool { return node.Type() == dom.CommentNode },
		func(node *dom.Node) *dom.Node {
			node.SetData(data)
			return nil
		},
		func() *dom.Node { return nodes.document().CreateComment(data) },
		false,
	)
}

// DetachUnclaimed removes every unclaimed candidate from the DOM and
// returns how many were removed.
func DetachUnclaimed(nodes *Nodes) int {
	n := len(nodes.list)
	for _, node := range nodes.list {
		node.Remove()
	}
	nodes.list = nil
	nodes.LastIndex = 0
	return n
}
