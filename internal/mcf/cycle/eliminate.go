// Package cycle implements the cycle eliminator: after a first-pass sweep
// over all sources, flow assigned by different sources
// can combine into a directed flow cycle. EliminateCycles cancels the
// minimum flow around every such cycle and coalesces parallel path
// fragments that share an (origin, first-hop) pair.
package cycle

import (
	"mcfsolver/internal/mcf"
	"mcfsolver/internal/mcf/pathtree"
	"mcfsolver/pkg/domain"
)

// sentinelResolved marks a node as already proven cycle-free for the
// origin currently being searched, pruning revisits within that DFS.
var sentinelResolved = &pathtree.Node{}

// EliminateCycles scans job.Paths() for flow cycles introduced by
// incremental path assignment and cancels them, returning true if any
// cycle was found across any origin. Coalescing parallel fragments alone
// does not make it return true.
func EliminateCycles(job *domain.Job) bool {
	n := job.Size()
	forward := buildForwardIndex(job, n)

	found := false
	for origin := 0; origin < n; origin++ {
		visit := make([]*pathtree.Node, n)
		o := mcf.NodeID(origin)
		if eliminateFrom(job, forward, visit, o, o) {
			found = true
		}
	}
	return found
}

// buildForwardIndex inverts job.Paths() (keyed by terminal node) into a map
// keyed by parent node, giving each node the list of path-tree nodes that
// are one hop forward from it — the "children" the DFS below walks.
func buildForwardIndex(job *domain.Job, n int) map[mcf.NodeID][]*pathtree.Node {
	idx := make(map[mcf.NodeID][]*pathtree.Node)
	for v := 0; v < n; v++ {
		for _, p := range job.Paths(mcf.NodeID(v)) {
			if p.Parent == nil {
				continue
			}
			parent := p.Parent.Node
			idx[parent] = append(idx[parent], p)
		}
	}
	return idx
}

// eliminateFrom is the recursive DFS described in the cycle eliminator's
// design: visit[next] == sentinelResolved means next was already proven
// cycle-free for this origin; visit[next] == nil means unvisited; any other
// value is a live path node, meaning next is an ancestor on the current
// stack and a cycle has been found.
func eliminateFrom(job *domain.Job, forward map[mcf.NodeID][]*pathtree.Node, visit []*pathtree.Node, origin, next mcf.NodeID) bool {
	switch visit[next] {
	case sentinelResolved:
		return false
	case nil:
		children := groupChildren(forward[next], origin)
		found := false
		for _, child := range children {
			if child.Flow == 0 {
				continue
			}
			visit[next] = child
			if eliminateFrom(job, forward, visit, origin, child.Node) {
				found = true
			}
		}
		if found {
			visit[next] = nil
		} else {
			visit[next] = sentinelResolved
		}
		return found
	default:
		f := findCycleFlow(visit, visit[next])
		if f > 0 {
			cancelCycle(job, visit, visit[next], f)
		}
		return true
	}
}

// groupChildren selects the subset of children whose Origin matches origin
// and coalesces parallel fragments sharing the same destination node: for
// each group of more than one member, the first-encountered member becomes
// the representative, absorbing every other member's flow; the others are
// zeroed out. The returned slice holds one representative per distinct
// destination, in first-encountered order.
func groupChildren(children []*pathtree.Node, origin mcf.NodeID) []*pathtree.Node {
	reps := make(map[mcf.NodeID]*pathtree.Node)
	order := make([]mcf.NodeID, 0, len(children))

	for _, p := range children {
		if p.Origin != origin {
			continue
		}
		rep, ok := reps[p.Node]
		if !ok {
			reps[p.Node] = p
			order = append(order, p.Node)
			continue
		}
		if rep == p {
			continue
		}
		rep.Flow += p.Flow
		p.ReduceFlow(p.Flow)
	}

	out := make([]*pathtree.Node, len(order))
	for i, node := range order {
		out[i] = reps[node]
	}
	return out
}

// findCycleFlow returns the minimum Flow along the path-node sequence
// starting at start and returning to itself by following visit[p.Node]
// repeatedly.
func findCycleFlow(visit []*pathtree.Node, start *pathtree.Node) uint64 {
	minFlow := start.Flow
	cur := start
	for {
		next := visit[cur.Node]
		if next == start || next == nil || next == sentinelResolved {
			break
		}
		if next.Flow < minFlow {
			minFlow = next.Flow
		}
		cur = next
	}
	return minFlow
}

// cancelCycle reduces every path node along the cycle starting at start by
// f, and decrements the corresponding job edge's flow by the same amount.
func cancelCycle(job *domain.Job, visit []*pathtree.Node, start *pathtree.Node, f uint64) {
	cur := start
	for {
		cur.ReduceFlow(f)
		if cur.Parent != nil {
			job.RemoveFlow(cur.Parent.Node, cur.Node, f)
		}
		next := visit[cur.Node]
		if next == start || next == nil || next == sentinelResolved {
			break
		}
		cur = next
	}
}
