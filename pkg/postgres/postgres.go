package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const dateLayout = "2006-01-02"

// DB provides roster storage on PostgreSQL
type DB struct {
	pool *pgxpool.Pool
}

// NewDB connects to PostgreSQL and brings the schema up to date
func NewDB(ctx context.Context, connString string) (*DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{pool: pool}
	if err := db.RunMigrations(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return db, nil
}

// Close closes the database connection pool
func (db *DB) Close() error {
	db.pool.Close()
	return nil
}

// RunMigrations executes all pending SQL migration files in filename order.
// Applied files are recorded in schema_migrations.
func (db *DB) RunMigrations(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			filename TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	rows, err := db.pool.Query(ctx, `SELECT filename FROM schema_migrations`)
	if err != nil {
		return fmt.Errorf("failed to query applied migrations: %w", err)
	}
	applied, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return fmt.Errorf("failed to scan migration filenames: %w", err)
	}

	pending, err := pendingMigrations(applied)
	if err != nil {
		return err
	}

	for _, filename := range pending {
		content, err := fs.ReadFile(migrationsFS, "migrations/"+filename)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", filename, err)
		}

		err = pgx.BeginFunc(ctx, db.pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, string(content)); err != nil {
				return fmt.Errorf("failed to execute migration %s: %w", filename, err)
			}
			if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (filename) VALUES ($1)`, filename); err != nil {
				return fmt.Errorf("failed to record migration %s: %w", filename, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// pendingMigrations lists embedded migration files not yet applied, sorted
func pendingMigrations(applied []string) ([]string, error) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	done := make(map[string]bool, len(applied))
	for _, filename := range applied {
		done[filename] = true
	}

	var pending []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") || done[entry.Name()] {
			continue
		}
		pending = append(pending, entry.Name())
	}
	sort.Strings(pending)

	return pending, nil
}

// nonNil keeps TEXT[] columns from receiving NULL
func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
