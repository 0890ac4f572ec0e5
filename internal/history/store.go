// Package history provides optional PostgreSQL persistence of pipeline runs.
// It is never load-bearing: the pipeline runs identically without a database,
// and store failures degrade to warnings.
package history

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS resume_runs (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	job_title TEXT NOT NULL DEFAULT '',
	model TEXT NOT NULL,
	status TEXT NOT NULL,
	tex_path TEXT NOT NULL DEFAULT '',
	pdf_path TEXT NOT NULL DEFAULT '',
	started_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	completed_at TIMESTAMPTZ
)`

// Store wraps a PostgreSQL connection pool recording one row per pipeline run.
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool and ensures the schema exists.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure run history schema: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// StartRun records the beginning of a pipeline run and returns its ID.
func (s *Store) StartRun(ctx context.Context, jobTitle, model string) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.pool.QueryRow(ctx,
		`INSERT INTO resume_runs (job_title, model, status)
		 VALUES ($1, $2, 'running')
		 RETURNING id`,
		jobTitle, model,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to record run start: %w", err)
	}
	return id, nil
}

// FinishRun records the outcome of a run. Paths may be empty on failure.
func (s *Store) FinishRun(ctx context.Context, id uuid.UUID, status, texPath, pdfPath string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE resume_runs
		 SET status = $1, tex_path = $2, pdf_path = $3, completed_at = NOW()
		 WHERE id = $4`,
		status, texPath, pdfPath, id,
	)
	if err != nil {
		return fmt.Errorf("failed to record run outcome: %w", err)
	}
	return nil
}
