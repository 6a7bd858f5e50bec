// Package pathtree implements the path-tree node: the in-memory node of a
// Dijkstra path tree, with fork/add-flow/reduce-flow/detach operations and
// the capacity-ratio ordering key used by the Capacity annotation.
//
// A Node is owned by the arena that created it for the duration of one
// source sweep (see internal/mcf/dijkstra); nodes with Flow > 0 survive
// cleanup by being recorded in the job's per-node Paths collection — pool
// objects that outlive their local arena.
package pathtree

import "mcfsolver/internal/mcf"

// EdgeOps is the minimal edge contract a path node needs to push or pull
// flow along the (parent, self) edge. It is satisfied by *domain.Job.
type EdgeOps interface {
	// EdgeCapacity returns the raw (unscaled) capacity of edge (from, to).
	EdgeCapacity(from, to mcf.NodeID) uint64
	// EdgeFlow returns the current flow assigned to edge (from, to).
	EdgeFlow(from, to mcf.NodeID) uint64
	// AddEdgeFlow increases the flow on edge (from, to) by amount.
	AddEdgeFlow(from, to mcf.NodeID, amount uint64)
}

// Node is one node of a path tree: the best known path from some origin
// (source) to Node, as discovered by one Dijkstra sweep.
type Node struct {
	// Node is the graph node this path terminates at.
	Node mcf.NodeID
	// Parent is the predecessor path node, or nil for a source root.
	Parent *Node
	// Origin is the source graph node (root) of this path.
	Origin mcf.NodeID
	// Capacity is the minimum edge capacity along the path from root.
	Capacity uint64
	// FreeCapacity is the minimum capacity-flow along the path, signed so
	// it can go negative once pass 2 overloads an edge.
	FreeCapacity int64
	// Distance is the summed edge distance from root; Unreachable marks a
	// disconnected node.
	Distance uint64
	// Flow is the amount of commodity currently assigned to edge
	// (Parent, Node).
	Flow uint64
	// NumChildren counts live path nodes whose Parent is this node.
	NumChildren int
	// IsSource marks a source-root node (Origin == Node, no Parent).
	IsSource bool
}

// New allocates a path node for graph node, either as the source root of a
// new sweep (isSource) or as an initially-disconnected placeholder.
func New(node mcf.NodeID, isSource bool) *Node {
	if isSource {
		return &Node{
			Node:         node,
			Origin:       node,
			Capacity:     mcf.CapInfinity,
			FreeCapacity: mcf.FreeCapInfinity,
			Distance:     0,
			IsSource:     true,
		}
	}
	return &Node{
		Node:         node,
		Origin:       -1,
		Capacity:     0,
		FreeCapacity: mcf.FreeCapUnreached,
		Distance:     mcf.Unreachable,
	}
}

// Fork attaches n as a child of base by extending base's path with one edge
// of capacity edgeCap, free capacity edgeFree and distance edgeDist. Fork
// changes the annotation fields that order a frontier, so a caller that forks
// a node still inside an ordered frontier must restore the order right after,
// as the kernel in internal/mcf/dijkstra does with heap.Fix (or heap.Push for
// a node already popped).
func (n *Node) Fork(base *Node, edgeCap uint64, edgeFree int64, edgeDist uint64) {
	if n.Parent != nil {
		n.Parent.NumChildren--
	}
	n.Parent = base
	n.Distance = base.Distance + edgeDist
	n.Capacity = minUint64(base.Capacity, edgeCap)
	n.FreeCapacity = minInt64(base.FreeCapacity, edgeFree)
	n.Origin = base.Origin
	base.NumChildren++
}

// AddFlow walks the parent chain adding amount to every traversed edge,
// capped at maxSaturation percent of that edge's raw capacity on each hop.
// mcf.SaturationUnlimited disables the cap entirely (not merely widens it to
// the raw capacity), which is how pass 2 forces flow onto an edge already at
// or above capacity. It returns the amount actually added — the minimum
// permitted along the whole chain — and increments the Flow field of every
// path node it traverses, including n itself.
func (n *Node) AddFlow(amount uint64, edges EdgeOps, maxSaturation uint64) uint64 {
	if amount == 0 || n.Parent == nil && !n.IsSource {
		return 0
	}

	// First pass up the chain: determine how much can actually be pushed.
	actual := amount
	for p := n; p.Parent != nil; p = p.Parent {
		if maxSaturation == mcf.SaturationUnlimited {
			continue
		}
		cap := mcf.ScaledCapacity(edges.EdgeCapacity(p.Parent.Node, p.Node), maxSaturation)
		flow := edges.EdgeFlow(p.Parent.Node, p.Node)
		var headroom uint64
		if cap > flow {
			headroom = cap - flow
		}
		if headroom < actual {
			actual = headroom
		}
	}
	if actual == 0 {
		return 0
	}

	// Second pass: commit the push.
	for p := n; p.Parent != nil; p = p.Parent {
		edges.AddEdgeFlow(p.Parent.Node, p.Node, actual)
		p.Flow += actual
	}
	return actual
}

// ReduceFlow decrements only this node's own Flow field. The corresponding
// edge-side decrement is the cycle eliminator's responsibility (it may
// collapse several path nodes onto the same edge).
func (n *Node) ReduceFlow(amount uint64) {
	if amount > n.Flow {
		amount = n.Flow
	}
	n.Flow -= amount
}

// Detach clears Parent and decrements the former parent's NumChildren. It is
// a no-op if n has no parent.
func (n *Node) Detach() {
	if n.Parent == nil {
		return
	}
	n.Parent.NumChildren--
	n.Parent = nil
}

// Deletable reports whether n may be freed: no live children and no flow.
func (n *Node) Deletable() bool {
	return n.NumChildren == 0 && n.Flow == 0
}

// CapacityRatio returns the scaled free_capacity/capacity ratio used by the
// Capacity annotation's ordering. A disconnected node (capacity == 0) sorts
// worst.
func (n *Node) CapacityRatio() int64 {
	if n.Distance == mcf.Unreachable {
		return mcf.WorstCapacityRatio
	}
	return mcf.CapRatio(n.FreeCapacity, n.Capacity)
}

func minUint64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
