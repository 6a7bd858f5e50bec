// Package iterator implements the two edge-iteration policies (spec
// component C3) the Dijkstra kernel is parameterized over: GraphEdge walks
// every real outgoing link in the job (pass 1), FlowEdge walks only the
// links already carrying flow shares for the current source (pass 2).
package iterator

import (
	"mcfsolver/internal/mcf"
	"mcfsolver/pkg/domain"
)

// Edge is the outgoing-edge iterator contract the Dijkstra kernel drives.
// SetNode(source, current) positions the cursor at current for the sweep
// rooted at source; Next yields the next edge target, skipping self-loops.
type Edge interface {
	SetNode(source, current mcf.NodeID)
	Next() (mcf.NodeID, bool)
}

// GraphEdge walks every real outgoing link of the current node, as recorded
// in the job's adjacency list. Used by pass 1.
type GraphEdge struct {
	job       *domain.Job
	current   mcf.NodeID
	neighbors []mcf.NodeID
	pos       int
}

// NewGraphEdge constructs a GraphEdge iterator bound to job.
func NewGraphEdge(job *domain.Job) *GraphEdge {
	return &GraphEdge{job: job}
}

func (g *GraphEdge) SetNode(_ mcf.NodeID, current mcf.NodeID) {
	g.current = current
	g.neighbors = g.job.Neighbors(current)
	g.pos = 0
}

func (g *GraphEdge) Next() (mcf.NodeID, bool) {
	for g.pos < len(g.neighbors) {
		w := g.neighbors[g.pos]
		g.pos++
		if w == g.current {
			continue // self-loop consumption marker, never a real edge
		}
		return w, true
	}
	return 0, false
}

// FlowEdge walks only the next hops that already carry a flow share for the
// current sweep's source, as recorded in the job's per-node flow-stat map.
// Used by pass 2, restricted to the paths pass 1 laid down.
type FlowEdge struct {
	job     *domain.Job
	current mcf.NodeID
	shares  []domain.FlowShare
	pos     int
}

// NewFlowEdge constructs a FlowEdge iterator bound to job. The job's
// station set is immutable for the solver's lifetime, so no inverse index
// needs to be rebuilt per sweep; station-to-node lookups go through
// job.NodeByStation.
func NewFlowEdge(job *domain.Job) *FlowEdge {
	return &FlowEdge{job: job}
}

func (f *FlowEdge) SetNode(source, current mcf.NodeID) {
	f.current = current
	f.shares = nil
	f.pos = 0
	stat := f.job.FlowStat(current, f.job.Station(source))
	if stat != nil {
		f.shares = stat.Shares
	}
}

func (f *FlowEdge) Next() (mcf.NodeID, bool) {
	for f.pos < len(f.shares) {
		share := f.shares[f.pos]
		f.pos++
		w, ok := f.job.NodeByStation(share.NextHopStation)
		if !ok || w == f.current {
			continue
		}
		return w, true
	}
	return 0, false
}
