// Package flowpush implements the flow-pushing policy: converting an
// edge's unsatisfied demand plus a computed path-tree leaf
// into an actual flow increment, and the between-sources path-tree cleanup
// that prunes zero-flow path nodes while keeping flow-carrying leaves
// registered on their terminal node.
package flowpush

import (
	"mcfsolver/internal/mcf"
	"mcfsolver/internal/mcf/pathtree"
	"mcfsolver/pkg/domain"
)

func clampUint64(v, lo, hi uint64) uint64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// PushFlow pushes flow along leaf toward edge's destination: target =
// clamp(demand/accuracy, 1, unsatisfied_demand), then leaf.AddFlow commits
// whatever the tightest edge on the path (after the max_saturation cap)
// actually permits, and the edge's unsatisfied demand is decremented by
// that amount. It returns the amount actually pushed.
//
// Precondition: edge.UnsatisfiedDemand(from,to) > 0.
func PushFlow(job *domain.Job, from, to mcf.NodeID, leaf *pathtree.Node, accuracy, maxSaturation uint64) uint64 {
	demand := job.Demand(from, to)
	unsatisfied := job.UnsatisfiedDemand(from, to)

	target := demand / accuracy
	target = clampUint64(target, 1, unsatisfied)

	actual := leaf.AddFlow(target, job, maxSaturation)
	if actual > 0 {
		job.SatisfyDemand(from, to, actual)
	}
	return actual
}

// CleanupPaths runs after all destinations from one source have been
// processed. For each first hop out of the source that carries flow, it
// records a flow share at the source, then detaches that hop from the source
// root. It then walks up the parent chain detaching every node with
// flow == 0, stopping at the first node that carries flow (or at the
// source). That flow-carrying node is registered on its own node's Paths
// collection, and, while it still has a parent, a flow share is recorded at
// that parent, so pass 2's FlowEdge iterator can later discover every hop.
func CleanupPaths(job *domain.Job, source mcf.NodeID, tree []*pathtree.Node) {
	for v, p := range tree {
		if mcf.NodeID(v) == source || p == nil {
			continue
		}
		if p.Parent != nil && p.Parent.Node == source {
			if p.Flow > 0 {
				job.AddFlowShare(source, job.Station(source), job.Station(p.Node))
			}
			p.Detach()
		}

		cur := p
		for cur != nil && cur.Node != source && cur.Flow == 0 {
			parent := cur.Parent
			cur.Detach()
			cur = parent
		}
		if cur != nil && cur.Node != source && cur.Flow > 0 {
			appendPath(job, source, cur)
		}
	}
	// The source root itself has no flow and, by construction, every one of
	// its children has already been detached above; the caller discards it.
}

func appendPath(job *domain.Job, source mcf.NodeID, p *pathtree.Node) {
	existing := job.Paths(p.Node)
	for _, e := range existing {
		if e == p {
			return
		}
	}
	job.SetPaths(p.Node, append(existing, p))
	if p.Parent != nil {
		job.AddFlowShare(p.Parent.Node, job.Station(source), job.Station(p.Node))
	}
}
