// Package store persists the jobs the CLI runner loads and the results it
// computes, in Postgres via pgx, so a past solve attempt can be looked up
// instead of re-run. The repository shape is an interface plus a single
// Postgres implementation behind database.DB.
package store

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"mcfsolver/pkg/job"
)

// JobRecord is a persisted job: its identity, structural hash, and the
// description it was built from.
type JobRecord struct {
	ID           uuid.UUID
	Hash         string
	Description  job.Description
	StationCount int
	LinkCount    int
	CreatedAt    time.Time
}

// ResultRecord is the persisted outcome of running pass.Solve over a job.
type ResultRecord struct {
	JobID                  uuid.UUID
	Pass1Iterations        int
	Pass2Iterations        int
	CyclesEliminated       int
	TotalFlowPushed        uint64
	FinalUnsatisfiedDemand uint64
	DurationMs             int64
	ComputedAt             time.Time
}

// NewJobRecord builds a JobRecord from a loaded job.Record.
func NewJobRecord(rec *job.Record) *JobRecord {
	return &JobRecord{
		ID:           rec.ID,
		Hash:         rec.Hash,
		Description:  *rec.Description,
		StationCount: len(rec.Description.Stations),
		LinkCount:    len(rec.Description.Links),
		CreatedAt:    rec.LoadedAt,
	}
}

func marshalDescription(desc job.Description) ([]byte, error) {
	return json.Marshal(desc)
}

func unmarshalDescription(data []byte) (job.Description, error) {
	var desc job.Description
	if err := json.Unmarshal(data, &desc); err != nil {
		return job.Description{}, err
	}
	return desc, nil
}
