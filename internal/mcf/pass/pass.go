// Package pass implements the pass drivers: the saturating first pass
// (distance-ordered Dijkstra over every real edge, pushing flow while
// capacity allows, then eliminating cycles) and the forced second pass
// (capacity-ordered Dijkstra restricted to edges already carrying flow,
// forcibly assigning whatever demand remains). Options and Stats follow a
// builder-pattern shape, keeping the per-run knobs and counters separate
// from the algorithm itself.
package pass

import (
	"log/slog"

	"mcfsolver/internal/mcf"
	"mcfsolver/internal/mcf/annotation"
	"mcfsolver/internal/mcf/cycle"
	"mcfsolver/internal/mcf/dijkstra"
	"mcfsolver/internal/mcf/flowpush"
	"mcfsolver/internal/mcf/iterator"
	"mcfsolver/internal/mcf/stats"
	"mcfsolver/pkg/domain"
)

// Options configures the pass drivers. Zero value is safe to use;
// DefaultOptions applies sensible defaults.
type Options struct {
	// Logger receives one structured line per outer iteration of each pass.
	// Defaults to slog.Default() if nil.
	Logger *slog.Logger

	// MaxOuterIterations caps the outer repeat-loop of each pass as a
	// defensive safety valve; zero means unlimited, matching the reference
	// algorithm's unconditional repeat-until.
	MaxOuterIterations int
}

// DefaultOptions returns Options with a non-nil logger and no iteration cap.
func DefaultOptions() *Options {
	return &Options{
		Logger:             slog.Default(),
		MaxOuterIterations: 0,
	}
}

// WithLogger sets the logger and returns the options for chaining.
func (o *Options) WithLogger(l *slog.Logger) *Options {
	if l != nil {
		o.Logger = l
	}
	return o
}

// WithMaxOuterIterations sets the outer-loop safety cap and returns the
// options for chaining.
func (o *Options) WithMaxOuterIterations(n int) *Options {
	o.MaxOuterIterations = n
	return o
}

func (o *Options) logger() *slog.Logger {
	if o == nil || o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

func (o *Options) iterationCap() int {
	if o == nil {
		return 0
	}
	return o.MaxOuterIterations
}

// FirstPass runs the saturating pass to completion: repeated distance-
// ordered sweeps over every source, pushing flow onto shortest paths while
// capacity allows, followed by cycle elimination, until neither makes
// further progress.
func FirstPass(job *domain.Job, opts *Options) *stats.Stats {
	log := opts.logger()
	settings := job.Settings()
	n := job.Size()
	st := stats.New()

	for {
		moreLoops := false

		for source := 0; source < n; source++ {
			src := mcf.NodeID(source)
			tree := dijkstra.Run(job, src, annotation.Distance{}, iterator.NewGraphEdge(job))

			for dest := 0; dest < n; dest++ {
				d := mcf.NodeID(dest)
				if src == d || !job.HasEdge(src, d) {
					continue
				}
				if job.UnsatisfiedDemand(src, d) == 0 {
					continue
				}

				p := tree[dest]
				mcf.Assertf(p != nil, "pass1: missing path node for destination %d from source %d", dest, source)

				switch {
				case p.FreeCapacity > 0:
					pushed := flowpush.PushFlow(job, src, d, p, settings.Accuracy, settings.MaxSaturation)
					st.TotalFlowPushed += pushed
					if pushed > 0 && job.UnsatisfiedDemand(src, d) > 0 {
						moreLoops = true
					}
				case job.UnsatisfiedDemand(src, d) == job.Demand(src, d) && p.FreeCapacity > mcf.FreeCapUnreached:
					pushed := flowpush.PushFlow(job, src, d, p, settings.Accuracy, mcf.SaturationUnlimited)
					st.TotalFlowPushed += pushed
				}
			}

			flowpush.CleanupPaths(job, src, tree)
			st.Pass1Sweeps++
		}

		cyclesFound := cycle.EliminateCycles(job)
		st.Pass1Iterations++
		if cyclesFound {
			st.CyclesEliminated++
		}

		log.Info("pass1 sweep complete",
			"iteration", st.Pass1Iterations,
			"more_loops", moreLoops,
			"cycles_found", cyclesFound,
			"flow_pushed", st.TotalFlowPushed,
		)

		if !(moreLoops || cyclesFound) {
			break
		}
		if cap := opts.iterationCap(); cap > 0 && st.Pass1Iterations >= cap {
			log.Warn("pass1 stopped at outer iteration cap", "cap", cap)
			break
		}
	}

	st.FinalUnsatisfiedDemand = totalUnsatisfiedDemand(job)
	return st
}

// SecondPass runs the forced-assignment pass to completion: repeated
// capacity-ordered sweeps restricted to edges already carrying flow,
// forcibly assigning any remaining unsatisfied demand even if it overloads
// an edge, until no sweep makes further progress. Each push ignores the
// max_saturation cap, but the sweeps' Dijkstra runs still scale edge
// capacities by the job's max_saturation setting when ranking paths.
func SecondPass(job *domain.Job, opts *Options) *stats.Stats {
	log := opts.logger()
	settings := job.Settings()
	n := job.Size()
	st := stats.New()

	for {
		demandLeft := false

		for source := 0; source < n; source++ {
			src := mcf.NodeID(source)
			tree := dijkstra.Run(job, src, annotation.Capacity{}, iterator.NewFlowEdge(job))

			for dest := 0; dest < n; dest++ {
				d := mcf.NodeID(dest)
				if src == d || !job.HasEdge(src, d) {
					continue
				}
				if job.UnsatisfiedDemand(src, d) == 0 {
					continue
				}

				p := tree[dest]
				mcf.Assertf(p != nil, "pass2: missing path node for destination %d from source %d", dest, source)

				if p.FreeCapacity > mcf.FreeCapUnreached {
					pushed := flowpush.PushFlow(job, src, d, p, settings.Accuracy, mcf.SaturationUnlimited)
					st.TotalFlowPushed += pushed
					if job.UnsatisfiedDemand(src, d) > 0 {
						demandLeft = true
					}
				}
			}

			flowpush.CleanupPaths(job, src, tree)
			st.Pass2Sweeps++
		}

		st.Pass2Iterations++
		log.Info("pass2 sweep complete",
			"iteration", st.Pass2Iterations,
			"demand_left", demandLeft,
			"flow_pushed", st.TotalFlowPushed,
		)

		if !demandLeft {
			break
		}
		if cap := opts.iterationCap(); cap > 0 && st.Pass2Iterations >= cap {
			log.Warn("pass2 stopped at outer iteration cap", "cap", cap)
			break
		}
	}

	st.FinalUnsatisfiedDemand = totalUnsatisfiedDemand(job)
	return st
}

// Solve runs FirstPass followed by SecondPass and returns their combined
// statistics.
func Solve(job *domain.Job, opts *Options) *stats.Stats {
	if opts == nil {
		opts = DefaultOptions()
	}
	combined := FirstPass(job, opts)
	combined.Merge(SecondPass(job, opts))
	return combined
}

func totalUnsatisfiedDemand(job *domain.Job) uint64 {
	var total uint64
	for _, e := range job.AllEdges() {
		total += e.UnsatisfiedDemand
	}
	return total
}
