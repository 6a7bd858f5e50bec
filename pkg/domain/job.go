// Package domain defines the link-graph job the solver operates over:
// stations, links (edges) with capacity/distance/demand bookkeeping, and the
// flow-stat shares pass 2's flow-edge iterator reads. The layout uses
// adjacency lists keyed by node id, a mutex-guarded map of edges, and
// Clone-style value copies, over unsigned-integer capacity/distance/demand
// bookkeeping.
package domain

import (
	"fmt"
	"sync"

	"mcfsolver/internal/mcf"
	"mcfsolver/internal/mcf/pathtree"
)

// EdgeKey uniquely identifies a link by its endpoints.
type EdgeKey struct {
	From mcf.NodeID
	To   mcf.NodeID
}

func (k EdgeKey) String() string {
	return fmt.Sprintf("%d->%d", k.From, k.To)
}

// Edge is one directed link between two nodes.
type Edge struct {
	Distance          uint64
	Capacity          uint64
	Flow              uint64
	Demand            uint64
	UnsatisfiedDemand uint64
}

// Clone returns a value copy of e.
func (e *Edge) Clone() *Edge {
	clone := *e
	return &clone
}

// FlowShare is one (next-hop, weight) entry in a FlowStat.
type FlowShare struct {
	ID             mcf.ShareID
	NextHopStation mcf.StationID
}

// FlowStat describes how flow rooted at some origin station is distributed
// at a node across next hops, as an ordered share list.
type FlowStat struct {
	Shares []FlowShare
}

// Job is an immutable-during-solve snapshot of the link graph: N nodes
// indexed 0..N-1, their outgoing links, and the per-node flow-stat map pass
// 2's FlowEdge iterator consults.
type Job struct {
	mu sync.RWMutex

	stations []mcf.StationID
	settings mcf.Settings

	edges    map[EdgeKey]*Edge
	outgoing map[mcf.NodeID][]mcf.NodeID // insertion order preserved, deterministic iteration

	flows    map[mcf.NodeID]map[mcf.StationID]*FlowStat
	paths    map[mcf.NodeID][]*pathtree.Node
	shareSeq uint64

	stationIndex map[mcf.StationID]mcf.NodeID
}

// New creates an empty job for the given stations, in node-id order.
func New(stations []mcf.StationID, settings mcf.Settings) *Job {
	j := &Job{
		stations:     append([]mcf.StationID(nil), stations...),
		settings:     settings,
		edges:        make(map[EdgeKey]*Edge),
		outgoing:     make(map[mcf.NodeID][]mcf.NodeID),
		flows:        make(map[mcf.NodeID]map[mcf.StationID]*FlowStat),
		paths:        make(map[mcf.NodeID][]*pathtree.Node),
		stationIndex: make(map[mcf.StationID]mcf.NodeID, len(stations)),
	}
	for i, s := range stations {
		j.stationIndex[s] = mcf.NodeID(i)
	}
	return j
}

// Size returns the number of nodes N.
func (j *Job) Size() int {
	return len(j.stations)
}

// Station returns the opaque station identifier for node v.
func (j *Job) Station(v mcf.NodeID) mcf.StationID {
	return j.stations[v]
}

// NodeByStation resolves a station identifier back to its node id.
func (j *Job) NodeByStation(s mcf.StationID) (mcf.NodeID, bool) {
	v, ok := j.stationIndex[s]
	return v, ok
}

// Settings returns the job's accuracy/max_saturation configuration.
func (j *Job) Settings() mcf.Settings {
	return j.settings
}

// AddEdge inserts or replaces the real routing link (from, to), with its own
// local demand. A self-loop is permitted as a consumption marker; iteration
// is responsible for skipping it. AddEdge registers the link in the outgoing
// adjacency list used by the GraphEdge iterator.
func (j *Job) AddEdge(from, to mcf.NodeID, distance, capacity, demand uint64) {
	j.mu.Lock()
	defer j.mu.Unlock()

	key := EdgeKey{from, to}
	if _, exists := j.edges[key]; !exists {
		j.outgoing[from] = append(j.outgoing[from], to)
	}
	j.edges[key] = &Edge{
		Distance:          distance,
		Capacity:          capacity,
		Demand:            demand,
		UnsatisfiedDemand: demand,
	}
}

// AddDemand registers demand between a (from, to) pair that has no direct
// routing link — distance(from,to) is conceptually infinite, so the pair
// never appears in the GraphEdge or FlowEdge adjacency, but it remains
// addressable as a demand-bearing entry for the pass drivers.
func (j *Job) AddDemand(from, to mcf.NodeID, demand uint64) {
	j.mu.Lock()
	defer j.mu.Unlock()

	key := EdgeKey{from, to}
	e, exists := j.edges[key]
	if !exists {
		e = &Edge{}
		j.edges[key] = e
	}
	e.Demand = demand
	e.UnsatisfiedDemand = demand
}

// Neighbors returns the outgoing edge targets of v, in insertion order.
func (j *Job) Neighbors(v mcf.NodeID) []mcf.NodeID {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.outgoing[v]
}

func (j *Job) edge(from, to mcf.NodeID) *Edge {
	return j.edges[EdgeKey{from, to}]
}

// HasEdge reports whether a link record exists for (from, to) at all. Pairs
// with no record have no demand and are skipped by the pass drivers rather
// than treated as a zero-value edge.
func (j *Job) HasEdge(from, to mcf.NodeID) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, ok := j.edges[EdgeKey{from, to}]
	return ok
}

// EdgeDistance returns distance(from,to); callers must only ask for edges
// that exist (iterators never yield a pair without one).
func (j *Job) EdgeDistance(from, to mcf.NodeID) uint64 {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.edge(from, to).Distance
}

// EdgeCapacity returns the raw (unscaled) capacity of edge (from, to). It
// satisfies pathtree.EdgeOps.
func (j *Job) EdgeCapacity(from, to mcf.NodeID) uint64 {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.edge(from, to).Capacity
}

// EdgeFlow returns the current flow assigned to edge (from, to). It
// satisfies pathtree.EdgeOps.
func (j *Job) EdgeFlow(from, to mcf.NodeID) uint64 {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.edge(from, to).Flow
}

// AddEdgeFlow increases the flow on edge (from, to) by amount. It satisfies
// pathtree.EdgeOps.
func (j *Job) AddEdgeFlow(from, to mcf.NodeID, amount uint64) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.edge(from, to).Flow += amount
}

// RemoveFlow decrements the flow on edge (from, to) by amount, used by the
// cycle eliminator when cancelling a detected cycle.
func (j *Job) RemoveFlow(from, to mcf.NodeID, amount uint64) {
	j.mu.Lock()
	defer j.mu.Unlock()
	e := j.edge(from, to)
	if amount > e.Flow {
		amount = e.Flow
	}
	e.Flow -= amount
}

// UnsatisfiedDemand returns unsatisfied_demand(from,to).
func (j *Job) UnsatisfiedDemand(from, to mcf.NodeID) uint64 {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.edge(from, to).UnsatisfiedDemand
}

// Demand returns demand(from,to).
func (j *Job) Demand(from, to mcf.NodeID) uint64 {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.edge(from, to).Demand
}

// SatisfyDemand decrements unsatisfied_demand(from,to) by amount.
func (j *Job) SatisfyDemand(from, to mcf.NodeID, amount uint64) {
	j.mu.Lock()
	defer j.mu.Unlock()
	e := j.edge(from, to)
	if amount > e.UnsatisfiedDemand {
		amount = e.UnsatisfiedDemand
	}
	e.UnsatisfiedDemand -= amount
}

// SetFlowStat replaces the flow-stat entry for (v, origin).
func (j *Job) SetFlowStat(v mcf.NodeID, origin mcf.StationID, stat *FlowStat) {
	j.mu.Lock()
	defer j.mu.Unlock()
	m := j.flows[v]
	if m == nil {
		m = make(map[mcf.StationID]*FlowStat)
		j.flows[v] = m
	}
	m[origin] = stat
}

// FlowStat returns the flow-stat entry for (v, origin), or nil if absent.
func (j *Job) FlowStat(v mcf.NodeID, origin mcf.StationID) *FlowStat {
	j.mu.RLock()
	defer j.mu.RUnlock()
	m := j.flows[v]
	if m == nil {
		return nil
	}
	return m[origin]
}

// AddFlowShare records that flow rooted at origin passes through v toward
// nextHop, so pass 2's FlowEdge iterator can later discover the hop. It is
// idempotent per (v, origin, nextHop): a hop already recorded for this
// origin is not duplicated.
func (j *Job) AddFlowShare(v mcf.NodeID, origin, nextHop mcf.StationID) {
	j.mu.Lock()
	defer j.mu.Unlock()

	m := j.flows[v]
	if m == nil {
		m = make(map[mcf.StationID]*FlowStat)
		j.flows[v] = m
	}
	stat := m[origin]
	if stat == nil {
		stat = &FlowStat{}
		m[origin] = stat
	}
	for _, s := range stat.Shares {
		if s.NextHopStation == nextHop {
			return
		}
	}
	j.shareSeq++
	stat.Shares = append(stat.Shares, FlowShare{ID: mcf.ShareID(j.shareSeq), NextHopStation: nextHop})
}

// Paths returns the path-tree leaves currently recorded as terminating at v.
func (j *Job) Paths(v mcf.NodeID) []*pathtree.Node {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.paths[v]
}

// SetPaths replaces the collection of path-tree leaves terminating at v.
func (j *Job) SetPaths(v mcf.NodeID, paths []*pathtree.Node) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if len(paths) == 0 {
		delete(j.paths, v)
		return
	}
	j.paths[v] = paths
}

// AllEdges returns every link currently in the job, for diagnostics and
// tests; iteration order is unspecified.
func (j *Job) AllEdges() map[EdgeKey]*Edge {
	j.mu.RLock()
	defer j.mu.RUnlock()
	out := make(map[EdgeKey]*Edge, len(j.edges))
	for k, e := range j.edges {
		out[k] = e.Clone()
	}
	return out
}
