package cache

import (
	"context"
	"testing"
	"time"

	"mcfsolver/internal/mcf"
	"mcfsolver/pkg/domain"
)

func buildJob() *domain.Job {
	j := domain.New(stations(3), mcf.Settings{Accuracy: 16, MaxSaturation: 100})
	j.AddEdge(0, 1, 1, 10, 0)
	j.AddEdge(1, 2, 1, 10, 0)
	j.AddDemand(0, 2, 7)
	return j
}

func TestSolverCache_SetGet(t *testing.T) {
	memCache := NewMemoryCache(nil)
	defer memCache.Close()

	solverCache := NewSolverCache(memCache, 5*time.Minute)
	ctx := context.Background()
	job := buildJob()

	job.AddEdgeFlow(0, 1, 7)
	job.AddEdgeFlow(1, 2, 7)
	job.SatisfyDemand(0, 2, 7)

	result := SnapshotResult(job, 2, 1, 0, 7)

	if err := solverCache.Set(ctx, job, result, 0); err != nil {
		t.Fatalf("failed to set: %v", err)
	}

	got, found, err := solverCache.Get(ctx, job)
	if err != nil {
		t.Fatalf("failed to get: %v", err)
	}
	if !found {
		t.Fatal("expected to find cached result")
	}
	if got.TotalFlowPushed != 7 {
		t.Errorf("expected total flow pushed 7, got %d", got.TotalFlowPushed)
	}
	if got.FinalUnsatisfiedDemand != 0 {
		t.Errorf("expected final unsatisfied demand 0, got %d", got.FinalUnsatisfiedDemand)
	}
	if len(got.Edges) != 3 {
		t.Errorf("expected 3 edges, got %d", len(got.Edges))
	}
}

func TestSolverCache_GetNotFound(t *testing.T) {
	memCache := NewMemoryCache(nil)
	defer memCache.Close()

	solverCache := NewSolverCache(memCache, 5*time.Minute)
	ctx := context.Background()
	job := buildJob()

	result, found, err := solverCache.Get(ctx, job)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected not found")
	}
	if result != nil {
		t.Error("expected nil result")
	}
}

func TestSolverCache_DifferentJobDoesNotCollide(t *testing.T) {
	memCache := NewMemoryCache(nil)
	defer memCache.Close()

	solverCache := NewSolverCache(memCache, 5*time.Minute)
	ctx := context.Background()

	jobA := buildJob()
	jobB := domain.New(stations(2), mcf.Settings{Accuracy: 1, MaxSaturation: 100})
	jobB.AddEdge(0, 1, 5, 5, 5)

	solverCache.Set(ctx, jobA, SnapshotResult(jobA, 1, 1, 0, 0), 0)

	_, found, _ := solverCache.Get(ctx, jobB)
	if found {
		t.Error("expected no cached result for a structurally different job")
	}
}

func TestSolverCache_Invalidate(t *testing.T) {
	memCache := NewMemoryCache(nil)
	defer memCache.Close()

	solverCache := NewSolverCache(memCache, 5*time.Minute)
	ctx := context.Background()
	job := buildJob()

	solverCache.Set(ctx, job, SnapshotResult(job, 1, 1, 0, 0), 0)

	if err := solverCache.Invalidate(ctx, job); err != nil {
		t.Fatalf("failed to invalidate: %v", err)
	}

	_, found, _ := solverCache.Get(ctx, job)
	if found {
		t.Error("expected cache to be invalidated")
	}
}

func TestSolverCache_InvalidateAll(t *testing.T) {
	memCache := NewMemoryCache(nil)
	defer memCache.Close()

	solverCache := NewSolverCache(memCache, 5*time.Minute)
	ctx := context.Background()

	job1 := buildJob()
	job2 := domain.New(stations(2), mcf.Settings{Accuracy: 1, MaxSaturation: 100})
	job2.AddEdge(0, 1, 5, 5, 5)

	solverCache.Set(ctx, job1, SnapshotResult(job1, 1, 1, 0, 0), 0)
	solverCache.Set(ctx, job2, SnapshotResult(job2, 1, 1, 0, 0), 0)

	count, err := solverCache.InvalidateAll(ctx)
	if err != nil {
		t.Fatalf("failed to invalidate all: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 invalidated, got %d", count)
	}
}
