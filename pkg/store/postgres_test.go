package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcfsolver/pkg/job"
)

// pgxMockAdapter satisfies database.DB over a pgxmock pool.
type pgxMockAdapter struct {
	mock pgxmock.PgxPoolIface
}

func (a *pgxMockAdapter) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return a.mock.Exec(ctx, sql, args...)
}

func (a *pgxMockAdapter) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return a.mock.Query(ctx, sql, args...)
}

func (a *pgxMockAdapter) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return a.mock.QueryRow(ctx, sql, args...)
}

func (a *pgxMockAdapter) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
	return a.mock.BeginTx(ctx, txOptions)
}

func (a *pgxMockAdapter) Close() {
	a.mock.Close()
}

func (a *pgxMockAdapter) Ping(ctx context.Context) error {
	return a.mock.Ping(ctx)
}

func setupMockStore(t *testing.T) (pgxmock.PgxPoolIface, *PostgresStore) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)

	store := NewPostgresStore(&pgxMockAdapter{mock: mock})
	return mock, store
}

func sampleJobRecord() *JobRecord {
	return &JobRecord{
		ID:   uuid.New(),
		Hash: "abc123",
		Description: job.Description{
			Stations: []string{"A", "B"},
			Links:    []job.LinkDescription{{From: "A", To: "B", Distance: 1, Capacity: 10}},
			Settings: job.SettingsDescription{Accuracy: 16, MaxSaturation: 100},
		},
		StationCount: 2,
		LinkCount:    1,
		CreatedAt:    time.Now(),
	}
}

func TestPostgresStore_SaveJob_Success(t *testing.T) {
	mock, store := setupMockStore(t)
	defer mock.Close()

	rec := sampleJobRecord()
	mock.ExpectExec(`INSERT INTO jobs`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := store.SaveJob(context.Background(), rec)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveJob_Error(t *testing.T) {
	mock, store := setupMockStore(t)
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO jobs`).
		WillReturnError(errors.New("database error"))

	err := store.SaveJob(context.Background(), sampleJobRecord())

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetJob_NotFound(t *testing.T) {
	mock, store := setupMockStore(t)
	defer mock.Close()

	id := uuid.New()
	mock.ExpectQuery(`SELECT id, hash, description`).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	rec, err := store.GetJob(context.Background(), id)

	assert.Nil(t, rec)
	assert.Equal(t, ErrNotFound, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveResult_Success(t *testing.T) {
	mock, store := setupMockStore(t)
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO solve_results`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	rec := &ResultRecord{
		JobID:                  uuid.New(),
		Pass1Iterations:        3,
		Pass2Iterations:        2,
		CyclesEliminated:       0,
		TotalFlowPushed:        100,
		FinalUnsatisfiedDemand: 0,
		DurationMs:             42,
		ComputedAt:             time.Now(),
	}

	err := store.SaveResult(context.Background(), rec)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetResult_NotFound(t *testing.T) {
	mock, store := setupMockStore(t)
	defer mock.Close()

	jobID := uuid.New()
	mock.ExpectQuery(`SELECT job_id, pass1_iterations`).
		WithArgs(jobID).
		WillReturnError(pgx.ErrNoRows)

	rec, err := store.GetResult(context.Background(), jobID)

	assert.Nil(t, rec)
	assert.Equal(t, ErrNotFound, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Ping(t *testing.T) {
	mock, store := setupMockStore(t)
	defer mock.Close()

	mock.ExpectPing()

	err := store.Ping(context.Background())

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewPostgresStore(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresStore(&pgxMockAdapter{mock: mock})
	assert.NotNil(t, store)
}
