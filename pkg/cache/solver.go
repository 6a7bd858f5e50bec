package cache

import (
	"context"
	"encoding/json"
	"time"

	"mcfsolver/internal/mcf"
	"mcfsolver/pkg/domain"
)

// SolverCache caches solve results keyed by a structural hash of the job
// plus its settings, so re-solving an unchanged job snapshot through the
// CLI batch runner (cmd/mcfsolve) is a cache hit rather than a re-run of
// both passes.
type SolverCache struct {
	cache      Cache
	defaultTTL time.Duration
}

// CachedEdgeFlow is one edge's post-solve flow/demand snapshot.
type CachedEdgeFlow struct {
	From              mcf.NodeID `json:"from"`
	To                mcf.NodeID `json:"to"`
	Flow              uint64     `json:"flow"`
	Capacity          uint64     `json:"capacity"`
	UnsatisfiedDemand uint64     `json:"unsatisfied_demand"`
}

// CachedSolveResult is the cached outcome of running pass.Solve over a job.
type CachedSolveResult struct {
	Pass1Iterations        int              `json:"pass1_iterations"`
	Pass2Iterations        int              `json:"pass2_iterations"`
	CyclesEliminated       int              `json:"cycles_eliminated"`
	TotalFlowPushed        uint64           `json:"total_flow_pushed"`
	FinalUnsatisfiedDemand uint64           `json:"final_unsatisfied_demand"`
	Edges                  []CachedEdgeFlow `json:"edges,omitempty"`
	ComputedAt             time.Time        `json:"computed_at"`
}

// NewSolverCache wraps a Cache with a default TTL for solve results.
func NewSolverCache(cache Cache, defaultTTL time.Duration) *SolverCache {
	if defaultTTL <= 0 {
		defaultTTL = 10 * time.Minute
	}
	return &SolverCache{cache: cache, defaultTTL: defaultTTL}
}

// Get looks up a cached solve result for job, keyed by JobHash(job).
func (sc *SolverCache) Get(ctx context.Context, job *domain.Job) (*CachedSolveResult, bool, error) {
	key := BuildSolveKey(JobHash(job))

	data, err := sc.cache.Get(ctx, key)
	if err != nil {
		if err == ErrKeyNotFound {
			return nil, false, nil
		}
		return nil, false, err
	}

	var result CachedSolveResult
	if err := json.Unmarshal(data, &result); err != nil {
		_ = sc.cache.Delete(ctx, key) //nolint:errcheck // best-effort cleanup of a corrupted entry
		return nil, false, nil
	}

	return &result, true, nil
}

// Set stores result under job's structural hash, using ttl or the cache's
// default TTL when ttl <= 0.
func (sc *SolverCache) Set(ctx context.Context, job *domain.Job, result *CachedSolveResult, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = sc.defaultTTL
	}

	key := BuildSolveKey(JobHash(job))
	result.ComputedAt = time.Now()

	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	return sc.cache.Set(ctx, key, data, ttl)
}

// SnapshotResult builds a CachedSolveResult from a completed job and the
// accumulated pass statistics, ready to pass to Set.
func SnapshotResult(job *domain.Job, pass1Iter, pass2Iter, cyclesEliminated int, totalFlowPushed uint64) *CachedSolveResult {
	all := job.AllEdges()
	edges := make([]CachedEdgeFlow, 0, len(all))
	var unsatisfied uint64
	for key, e := range all {
		unsatisfied += e.UnsatisfiedDemand
		edges = append(edges, CachedEdgeFlow{
			From:              key.From,
			To:                key.To,
			Flow:              e.Flow,
			Capacity:          e.Capacity,
			UnsatisfiedDemand: e.UnsatisfiedDemand,
		})
	}
	return &CachedSolveResult{
		Pass1Iterations:        pass1Iter,
		Pass2Iterations:        pass2Iter,
		CyclesEliminated:       cyclesEliminated,
		TotalFlowPushed:        totalFlowPushed,
		FinalUnsatisfiedDemand: unsatisfied,
		Edges:                  edges,
	}
}

// Invalidate removes the cached solve result for job, if any.
func (sc *SolverCache) Invalidate(ctx context.Context, job *domain.Job) error {
	return sc.cache.Delete(ctx, BuildSolveKey(JobHash(job)))
}

// InvalidateAll removes every cached solve result.
func (sc *SolverCache) InvalidateAll(ctx context.Context) (int64, error) {
	return sc.cache.DeleteByPattern(ctx, "solve:*")
}
