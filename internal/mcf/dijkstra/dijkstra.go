// Package dijkstra implements the modified Dijkstra kernel, parameterized
// over an annotation.Policy and an iterator.Edge interface value. It builds one path tree
// per source sweep using a container/heap priority queue with decrease-key
// via heap.Fix, generalized to a pluggable comparator.
package dijkstra

import (
	"container/heap"

	"mcfsolver/internal/mcf"
	"mcfsolver/internal/mcf/annotation"
	"mcfsolver/internal/mcf/iterator"
	"mcfsolver/internal/mcf/pathtree"
	"mcfsolver/pkg/domain"
)

// frontierItem wraps a path node with its current heap index, so Fork
// followed by heap.Fix can relocate it after a decrease-key update.
type frontierItem struct {
	node  *pathtree.Node
	index int
}

// frontier is a container/heap.Interface ordered by the active policy's
// comparator, tie-broken on node id inside the policy itself.
type frontier struct {
	items  []*frontierItem
	policy annotation.Policy
}

func (f frontier) Len() int { return len(f.items) }

func (f frontier) Less(i, j int) bool {
	return f.policy.Less(f.items[i].node, f.items[j].node)
}

func (f frontier) Swap(i, j int) {
	f.items[i], f.items[j] = f.items[j], f.items[i]
	f.items[i].index = i
	f.items[j].index = j
}

func (f *frontier) Push(x any) {
	item := x.(*frontierItem)
	item.index = len(f.items)
	f.items = append(f.items, item)
}

func (f *frontier) Pop() any {
	old := f.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	f.items = old[:n-1]
	return item
}

// Run builds a full path tree rooted at source over all of job's nodes,
// using policy to order the frontier and decide fork eligibility, and edges
// to enumerate each finalized node's outgoing edges. The returned slice has
// length job.Size(); tree[v] is the best path node reaching v, possibly
// still disconnected (Distance == mcf.Unreachable).
//
// A node popped off the frontier is not permanently done: under the
// Capacity policy, IsBetter's free-capacity branch is not monotonic in the
// comparator's primary key, so a node visited later along a higher-capacity
// but longer route can still improve on an already-popped node's path. Each
// item's index tracks whether it is currently in the heap (>=0) or has been
// popped (-1); a successful Fork reinserts a popped item rather than
// dropping the relaxation.
func Run(job *domain.Job, source mcf.NodeID, policy annotation.Policy, edges iterator.Edge) []*pathtree.Node {
	n := job.Size()
	tree := make([]*pathtree.Node, n)
	items := make([]*frontierItem, n)

	fr := &frontier{policy: policy, items: make([]*frontierItem, 0, n)}
	for v := 0; v < n; v++ {
		node := pathtree.New(mcf.NodeID(v), mcf.NodeID(v) == source)
		tree[v] = node
		item := &frontierItem{node: node}
		items[v] = item
		heap.Push(fr, item)
	}

	maxSaturation := job.Settings().MaxSaturation

	for fr.Len() > 0 {
		top := heap.Pop(fr).(*frontierItem)
		u := top.node.Node

		edges.SetNode(source, u)
		for {
			w, ok := edges.Next()
			if !ok {
				break
			}
			if w == u {
				continue
			}
			dstItem := items[w]

			rawCap := job.EdgeCapacity(u, w)
			cap := mcf.ScaledCapacity(rawCap, maxSaturation)
			flow := job.EdgeFlow(u, w)
			free := int64(cap) - int64(flow)
			dist := job.EdgeDistance(u, w) + 1

			dst := dstItem.node
			if policy.IsBetter(dst, top.node, cap, free, dist) {
				dst.Fork(top.node, cap, free, dist)
				if dstItem.index == -1 {
					heap.Push(fr, dstItem)
				} else {
					heap.Fix(fr, dstItem.index)
				}
			}
		}
	}

	return tree
}
