package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"mcfsolver/pkg/database"
)

// PostgresStore is the Postgres-backed Store implementation.
type PostgresStore struct {
	db database.DB
}

// NewPostgresStore wraps db as a Store.
func NewPostgresStore(db database.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// SaveJob inserts rec. Re-saving a job with the same ID is a no-op.
func (s *PostgresStore) SaveJob(ctx context.Context, rec *JobRecord) error {
	descJSON, err := marshalDescription(rec.Description)
	if err != nil {
		return fmt.Errorf("failed to marshal job description: %w", err)
	}

	query := `
		INSERT INTO jobs (id, hash, description, station_count, link_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING`

	_, err = s.db.Exec(ctx, query,
		rec.ID, rec.Hash, descJSON, rec.StationCount, rec.LinkCount, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert job: %w", err)
	}
	return nil
}

// GetJob returns the job with the given ID.
func (s *PostgresStore) GetJob(ctx context.Context, id uuid.UUID) (*JobRecord, error) {
	query := `
		SELECT id, hash, description, station_count, link_count, created_at
		FROM jobs WHERE id = $1`

	return s.scanJob(s.db.QueryRow(ctx, query, id))
}

// GetJobByHash returns the most recently saved job with the given hash.
func (s *PostgresStore) GetJobByHash(ctx context.Context, hash string) (*JobRecord, error) {
	query := `
		SELECT id, hash, description, station_count, link_count, created_at
		FROM jobs WHERE hash = $1 ORDER BY created_at DESC LIMIT 1`

	return s.scanJob(s.db.QueryRow(ctx, query, hash))
}

// ListJobs returns up to limit jobs ordered by creation time, descending.
func (s *PostgresStore) ListJobs(ctx context.Context, limit, offset int) ([]*JobRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 200 {
		limit = 200
	}

	query := `
		SELECT id, hash, description, station_count, link_count, created_at
		FROM jobs ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := s.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var records []*JobRecord
	for rows.Next() {
		rec, err := s.scanJob(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// SaveResult inserts or replaces the result for rec.JobID.
func (s *PostgresStore) SaveResult(ctx context.Context, rec *ResultRecord) error {
	query := `
		INSERT INTO solve_results (
			job_id, pass1_iterations, pass2_iterations, cycles_eliminated,
			total_flow_pushed, final_unsatisfied_demand, duration_ms, computed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (job_id) DO UPDATE SET
			pass1_iterations = EXCLUDED.pass1_iterations,
			pass2_iterations = EXCLUDED.pass2_iterations,
			cycles_eliminated = EXCLUDED.cycles_eliminated,
			total_flow_pushed = EXCLUDED.total_flow_pushed,
			final_unsatisfied_demand = EXCLUDED.final_unsatisfied_demand,
			duration_ms = EXCLUDED.duration_ms,
			computed_at = EXCLUDED.computed_at`

	_, err := s.db.Exec(ctx, query,
		rec.JobID, rec.Pass1Iterations, rec.Pass2Iterations, rec.CyclesEliminated,
		rec.TotalFlowPushed, rec.FinalUnsatisfiedDemand, rec.DurationMs, rec.ComputedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert solve result: %w", err)
	}
	return nil
}

// GetResult returns the result for jobID.
func (s *PostgresStore) GetResult(ctx context.Context, jobID uuid.UUID) (*ResultRecord, error) {
	query := `
		SELECT job_id, pass1_iterations, pass2_iterations, cycles_eliminated,
			total_flow_pushed, final_unsatisfied_demand, duration_ms, computed_at
		FROM solve_results WHERE job_id = $1`

	var rec ResultRecord
	err := s.db.QueryRow(ctx, query, jobID).Scan(
		&rec.JobID, &rec.Pass1Iterations, &rec.Pass2Iterations, &rec.CyclesEliminated,
		&rec.TotalFlowPushed, &rec.FinalUnsatisfiedDemand, &rec.DurationMs, &rec.ComputedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get solve result: %w", err)
	}
	return &rec, nil
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}

// Ping checks that the database is reachable.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *PostgresStore) scanJob(row rowScanner) (*JobRecord, error) {
	var rec JobRecord
	var descJSON []byte
	var createdAt time.Time

	err := row.Scan(&rec.ID, &rec.Hash, &descJSON, &rec.StationCount, &rec.LinkCount, &createdAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan job: %w", err)
	}

	desc, err := unmarshalDescription(descJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal job description: %w", err)
	}
	rec.Description = desc
	rec.CreatedAt = createdAt

	return &rec, nil
}
