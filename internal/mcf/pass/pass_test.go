package pass

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"mcfsolver/internal/mcf"
	"mcfsolver/pkg/domain"
)

func stations(n int) []mcf.StationID {
	out := make([]mcf.StationID, n)
	for i := range out {
		out[i] = mcf.StationID(string(rune('A' + i)))
	}
	return out
}

func silentOptions() *Options {
	return DefaultOptions().WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// TestSolveSingleEdge is end-to-end scenario 1: a single edge fully
// satisfies its own demand.
func TestSolveSingleEdge(t *testing.T) {
	job := domain.New(stations(2), mcf.Settings{Accuracy: 1, MaxSaturation: 100})
	job.AddEdge(0, 1, 5, 10, 7)

	Solve(job, silentOptions())

	assert.Equal(t, uint64(7), job.EdgeFlow(0, 1))
	assert.Equal(t, uint64(0), job.UnsatisfiedDemand(0, 1))
}

// TestSolveCapacityForcedSplit is end-to-end scenario 3: demand that
// exceeds any single path's capacity is split across the direct and
// two-hop routes, never exceeding either edge's capacity.
func TestSolveCapacityForcedSplit(t *testing.T) {
	job := domain.New(stations(3), mcf.Settings{Accuracy: 8, MaxSaturation: 100})
	job.AddEdge(0, 1, 1, 5, 0)
	job.AddEdge(0, 2, 1, 5, 8)
	job.AddEdge(1, 2, 1, 5, 0)

	Solve(job, silentOptions())

	direct := job.EdgeFlow(0, 2)
	viaHop := job.EdgeFlow(0, 1)
	assert.LessOrEqual(t, direct, uint64(5))
	assert.LessOrEqual(t, viaHop, uint64(5))
	assert.Equal(t, uint64(8), direct+viaHop)
	assert.Equal(t, uint64(0), job.UnsatisfiedDemand(0, 2))
}

// TestSolveUnreachableDestinationLeavesDemandUnsatisfied is end-to-end
// scenario 5.
func TestSolveUnreachableDestinationLeavesDemandUnsatisfied(t *testing.T) {
	job := domain.New(stations(2), mcf.Settings{Accuracy: 1, MaxSaturation: 100})
	job.AddDemand(0, 1, 5)

	Solve(job, silentOptions())

	assert.Equal(t, uint64(5), job.UnsatisfiedDemand(0, 1))
	assert.Equal(t, uint64(0), job.EdgeFlow(0, 1))
}

// TestSolvePass2ForcedOverload is end-to-end scenario 6: pass 1 saturates a
// tight two-hop chain, pass 2 forces the remaining demand through despite
// overloading both edges.
func TestSolvePass2ForcedOverload(t *testing.T) {
	job := domain.New(stations(3), mcf.Settings{Accuracy: 1, MaxSaturation: 100})
	job.AddEdge(0, 1, 1, 1, 0)
	job.AddEdge(1, 2, 1, 1, 0)
	job.AddDemand(0, 2, 10)

	Solve(job, silentOptions())

	assert.Equal(t, uint64(0), job.UnsatisfiedDemand(0, 2))
	assert.Equal(t, uint64(10), job.EdgeFlow(0, 1))
	assert.Equal(t, uint64(10), job.EdgeFlow(1, 2))
}

func TestSolveIsDeterministic(t *testing.T) {
	build := func() *domain.Job {
		job := domain.New(stations(4), mcf.Settings{Accuracy: 4, MaxSaturation: 100})
		job.AddEdge(0, 1, 1, 5, 0)
		job.AddEdge(1, 2, 1, 5, 0)
		job.AddEdge(0, 2, 1, 3, 0)
		job.AddEdge(2, 3, 1, 5, 9)
		return job
	}

	a := build()
	b := build()
	Solve(a, silentOptions())
	Solve(b, silentOptions())

	for key, ea := range a.AllEdges() {
		eb := b.AllEdges()[key]
		assert.Equal(t, ea.Flow, eb.Flow, "edge %v flow mismatch", key)
	}
}
