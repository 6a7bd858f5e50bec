package store

import (
	"context"

	"github.com/google/uuid"

	"mcfsolver/pkg/apperror"
)

// Errors returned by Store implementations.
var (
	ErrNotFound      = apperror.New(apperror.CodeNotFound, "record not found")
	ErrAlreadyExists = apperror.New(apperror.CodeInvalidArgument, "record already exists")
)

// Store persists jobs and their solve results.
type Store interface {
	// SaveJob inserts rec, or is a no-op if a job with the same ID already exists.
	SaveJob(ctx context.Context, rec *JobRecord) error

	// GetJob returns the job with the given ID, or ErrNotFound.
	GetJob(ctx context.Context, id uuid.UUID) (*JobRecord, error)

	// GetJobByHash returns the most recently saved job with the given
	// structural hash, or ErrNotFound.
	GetJobByHash(ctx context.Context, hash string) (*JobRecord, error)

	// ListJobs returns up to limit jobs ordered by creation time, descending.
	ListJobs(ctx context.Context, limit, offset int) ([]*JobRecord, error)

	// SaveResult inserts or replaces the result for rec.JobID.
	SaveResult(ctx context.Context, rec *ResultRecord) error

	// GetResult returns the result for jobID, or ErrNotFound.
	GetResult(ctx context.Context, jobID uuid.UUID) (*ResultRecord, error)

	// Close releases the store's underlying resources.
	Close() error

	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error
}
