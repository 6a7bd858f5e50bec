package main

import (
	"context"
	"time"

	"mcfsolver/internal/mcf/pass"
	"mcfsolver/internal/mcf/stats"
	"mcfsolver/pkg/apperror"
	"mcfsolver/pkg/cache"
	"mcfsolver/pkg/config"
	"mcfsolver/pkg/job"
	"mcfsolver/pkg/logger"
	"mcfsolver/pkg/metrics"
	"mcfsolver/pkg/store"
	"mcfsolver/pkg/telemetry"
)

// runner holds the collaborators shared across every job file processed in
// one invocation of the CLI.
type runner struct {
	cfg     *config.Config
	metrics *metrics.Metrics
	cache   *cache.SolverCache
	store   store.Store
}

// runFile loads, solves, and reports on a single job file, persisting and
// caching the result if those collaborators are configured.
func (r *runner) runFile(ctx context.Context, path string) error {
	rec, err := job.LoadRecord(path)
	if err != nil {
		return err
	}

	log := logger.WithJobID(rec.ID.String())
	log.Info("job loaded", "file", path, "stations", rec.Job.Size(), "hash", rec.Hash)
	r.metrics.RecordJobSize("loaded", rec.Job.Size(), len(rec.Job.AllEdges()))

	if r.cache != nil {
		if cached, ok, err := r.cache.Get(ctx, rec.Job); err != nil {
			log.Warn("cache lookup failed", "error", err)
		} else if ok {
			r.metrics.RecordCacheHit(r.cfg.Cache.Driver)
			log.Info("cache hit, skipping solve",
				"total_flow_pushed", cached.TotalFlowPushed,
				"final_unsatisfied_demand", cached.FinalUnsatisfiedDemand,
			)
			return nil
		}
		r.metrics.RecordCacheMiss(r.cfg.Cache.Driver)
	}

	if r.store != nil {
		if err := r.store.SaveJob(ctx, store.NewJobRecord(rec)); err != nil {
			log.Warn("failed to persist job", "error", err)
		}
	}

	opts := pass.DefaultOptions().
		WithLogger(log).
		WithMaxOuterIterations(r.cfg.Solver.MaxPass1Iterations)

	start := time.Now()
	var solveStats *stats.Stats
	err = telemetry.WrapPass(ctx, "solve", func(ctx context.Context) error {
		solveStats = pass.Solve(rec.Job, opts)
		return nil
	})
	duration := time.Since(start)
	if err != nil {
		r.metrics.RecordSolve(rec.ID.String(), false, duration, 0, 0, 0, 0, 0)
		return apperror.Wrap(err, apperror.CodeInternal, "solve failed")
	}

	r.metrics.RecordSolve(rec.ID.String(), true, duration,
		solveStats.Pass1Iterations, solveStats.Pass2Iterations, solveStats.CyclesEliminated,
		solveStats.TotalFlowPushed, solveStats.FinalUnsatisfiedDemand,
	)

	log.Info("job solved",
		"duration_ms", duration.Milliseconds(),
		"pass1_iterations", solveStats.Pass1Iterations,
		"pass2_iterations", solveStats.Pass2Iterations,
		"cycles_eliminated", solveStats.CyclesEliminated,
		"total_flow_pushed", solveStats.TotalFlowPushed,
		"final_unsatisfied_demand", solveStats.FinalUnsatisfiedDemand,
	)

	if r.cache != nil {
		snapshot := cache.SnapshotResult(rec.Job,
			solveStats.Pass1Iterations, solveStats.Pass2Iterations, solveStats.CyclesEliminated,
			solveStats.TotalFlowPushed,
		)
		if err := r.cache.Set(ctx, rec.Job, snapshot, 0); err != nil {
			log.Warn("failed to cache result", "error", err)
		}
	}

	if r.store != nil {
		result := &store.ResultRecord{
			JobID:                  rec.ID,
			Pass1Iterations:        solveStats.Pass1Iterations,
			Pass2Iterations:        solveStats.Pass2Iterations,
			CyclesEliminated:       solveStats.CyclesEliminated,
			TotalFlowPushed:        solveStats.TotalFlowPushed,
			FinalUnsatisfiedDemand: solveStats.FinalUnsatisfiedDemand,
			DurationMs:             duration.Milliseconds(),
			ComputedAt:             time.Now(),
		}
		if err := r.store.SaveResult(ctx, result); err != nil {
			log.Warn("failed to persist result", "error", err)
		}
	}

	if solveStats.FinalUnsatisfiedDemand > 0 {
		return apperror.New(apperror.CodeIterationLimit, "job finished with unsatisfied demand").
			WithDetails("remaining", solveStats.FinalUnsatisfiedDemand)
	}
	return nil
}
