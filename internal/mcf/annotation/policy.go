// Package annotation implements the pluggable path-tree ordering policies
// used by the Dijkstra kernel's frontier: Distance (shortest path first)
// for pass 1, and Capacity (max min-capacity ratio) for pass 2. Both break
// ties on node id rather than leaving the heap order ambiguous, but not in
// the same direction: Distance ties break ascending, Capacity ties break
// descending, matching each policy's own reference comparator.
package annotation

import (
	"mcfsolver/internal/mcf"
	"mcfsolver/internal/mcf/pathtree"
)

// Policy orders path nodes for the Dijkstra frontier and decides whether
// extending base by a new edge improves on self's current best path.
type Policy interface {
	// Less reports whether a should be popped from the frontier before b —
	// the ordering used by the kernel's priority queue.
	Less(a, b *pathtree.Node) bool

	// IsBetter reports whether extending base with an edge of capacity cap,
	// free capacity freeCap and distance dist yields a path strictly better
	// than self's current one. self is the destination path node under
	// consideration, base the node being extended from.
	IsBetter(self, base *pathtree.Node, cap uint64, freeCap int64, dist uint64) bool
}

// Distance orders path nodes by ascending Distance, tie-broken by ascending
// Node id so sweeps are deterministic across otherwise-equal candidates.
type Distance struct{}

func (Distance) Less(a, b *pathtree.Node) bool {
	if a.Distance != b.Distance {
		return a.Distance < b.Distance
	}
	return a.Node < b.Node
}

// IsBetter implements the Distance policy's decision table. It deliberately
// never consults cap or freeCap: only the prefix through base matters, per
// the documented design contract.
func (Distance) IsBetter(self, base *pathtree.Node, _ uint64, _ int64, dist uint64) bool {
	if base.Distance == mcf.Unreachable {
		return false
	}
	if self.Distance == mcf.Unreachable {
		return true
	}
	bfree := base.FreeCapacity > 0
	sfree := self.FreeCapacity > 0
	switch {
	case bfree && sfree:
		return base.Distance+dist < self.Distance
	case bfree && !sfree:
		return true
	case !bfree && sfree:
		return false
	default:
		return base.Distance+dist < self.Distance
	}
}

// Capacity orders path nodes by descending CapacityRatio (best ratio
// first), tie-broken by descending Node id. Distance plays no part in this
// ordering; it only enters IsBetter's own tie-break once two ratios are
// already equal.
type Capacity struct{}

func (Capacity) Less(a, b *pathtree.Node) bool {
	ra, rb := a.CapacityRatio(), b.CapacityRatio()
	if ra != rb {
		return ra > rb
	}
	return a.Node > b.Node
}

// IsBetter implements the Capacity policy's decision table: compare the
// ratio the extended path would have against self's current ratio, tie
// broken by strictly shorter distance.
func (Capacity) IsBetter(self, base *pathtree.Node, cap uint64, freeCap int64, dist uint64) bool {
	free := freeCap
	if base.FreeCapacity < free {
		free = base.FreeCapacity
	}
	total := cap
	if base.Capacity < total {
		total = base.Capacity
	}
	minCap := mcf.CapRatio(free, total)
	selfRatio := self.CapacityRatio()
	if minCap == selfRatio {
		return base.Distance != mcf.Unreachable && base.Distance+dist < self.Distance
	}
	return minCap > selfRatio
}
