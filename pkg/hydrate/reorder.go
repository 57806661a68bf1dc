package hydrate

import (
	"sort"

	"github.com/vango-dev/vela/pkg/dom"
)

// Reorder moves the claimed children of target into claim order and
// returns the number of nodes moved. Children that were never claimed are
// ignored and left where they are.
//
// The children on a longest increasing subsequence of claim orders keep
// their place. Every other claimed child is inserted before the first
// subsequence node with a greater claim order, or appended.
func Reorder(target *dom.Node) int {
	var children []*dom.Node
	for c := target.FirstChild(); c != nil; c = c.NextSibling() {
		if c.HasClaimOrder() {
			children = append(children, c)
		}
	}
	if len(children) == 0 {
		return 0
	}

	order := func(i int) int { return children[i].ClaimOrder() }

	// m[k] is the index of the smallest tail of an increasing run of
	// length k; p[i] is one more than the index preceding i in its run.
	m := make([]int, len(children)+1)
	p := make([]int, len(children))
	m[0] = -1
	longest := 0
	for i := range children {
		current := order(i)
		var seqLen int
		if longest > 0 && order(m[longest]) <= current {
			seqLen = longest
		} else {
			seqLen = upperBound(1, longest, func(idx int) int { return order(m[idx]) }, current) - 1
		}
		p[i] = m[seqLen] + 1
		newLen := seqLen + 1
		m[newLen] = i
		if newLen > longest {
			longest = newLen
		}
	}

	var lis, toMove []*dom.Node
	last := len(children) - 1
	for cur := m[longest] + 1; cur != 0; cur = p[cur-1] {
		lis = append(lis, children[cur-1])
		for ; last >= cur; last-- {
			toMove = append(toMove, children[last])
		}
		last--
	}
	for ; last >= 0; last-- {
		toMove = append(toMove, children[last])
	}
	for i, j := 0, len(lis)-1; i < j; i, j = i+1, j-1 {
		lis[i], lis[j] = lis[j], lis[i]
	}

	sort.SliceStable(toMove, func(a, b int) bool {
		return toMove[a].ClaimOrder() < toMove[b].ClaimOrder()
	})

	j := 0
	for _, node := range toMove {
		for j < len(lis) && node.ClaimOrder() >= lis[j].ClaimOrder() {
			j++
		}
		var anchor *dom.Node
		if j < len(lis) {
			anchor = lis[j]
		}
		target.InsertBefore(node, anchor)
	}
	return len(toMove)
}

// upperBound returns the first index in [low, high) whose key is greater
// than value, or high.
func upperBound(low, high int, key func(int) int, value int) int {
	for low < high {
		mid := low + (high-low)/2
		if key(mid) <= value {
			low = mid + 1
		} else {
			high = mid
		}
	}
	return low
}
