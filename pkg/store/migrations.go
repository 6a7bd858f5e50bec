package store

import (
	"context"
	"embed"

	"github.com/jackc/pgx/v5/pgxpool"

	"mcfsolver/pkg/config"
	"mcfsolver/pkg/database"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const migrationsDir = "migrations"

// Open creates a Postgres connection pool from cfg, applies pending
// migrations if cfg.AutoMigrate is set, and returns a ready-to-use Store.
func Open(ctx context.Context, cfg *config.DatabaseConfig) (*PostgresStore, error) {
	db, err := database.NewPostgresDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := database.RunMigrations(ctx, db.Pool(), cfg, migrationFiles, migrationsDir); err != nil {
		db.Close()
		return nil, err
	}

	return NewPostgresStore(db), nil
}

// Migrate applies pending migrations against an already-open pool, outside
// of Open's auto-migrate gate — for an explicit "migrate" CLI subcommand.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	migrator := database.NewMigrator(pool, migrationFiles, migrationsDir)
	return migrator.Up(ctx)
}
