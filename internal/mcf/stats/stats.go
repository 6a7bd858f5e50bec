// Package stats holds the per-run solve counters surfaced by the pass
// drivers: sweep and outer-iteration counts, cycles eliminated, total flow
// pushed, and the final unsatisfied demand remaining.
package stats

// Stats accumulates counters across one FirstPass/SecondPass/Solve call.
type Stats struct {
	Pass1Iterations  int
	Pass1Sweeps      int
	CyclesEliminated int

	Pass2Iterations int
	Pass2Sweeps     int

	TotalFlowPushed        uint64
	FinalUnsatisfiedDemand uint64
}

// New returns a zeroed Stats.
func New() *Stats {
	return &Stats{}
}

// Merge folds other's counters into s, used to combine FirstPass and
// SecondPass results into one Solve-level summary.
func (s *Stats) Merge(other *Stats) {
	if other == nil {
		return
	}
	s.Pass1Iterations += other.Pass1Iterations
	s.Pass1Sweeps += other.Pass1Sweeps
	s.CyclesEliminated += other.CyclesEliminated
	s.Pass2Iterations += other.Pass2Iterations
	s.Pass2Sweeps += other.Pass2Sweeps
	s.TotalFlowPushed += other.TotalFlowPushed
	s.FinalUnsatisfiedDemand = other.FinalUnsatisfiedDemand
}
