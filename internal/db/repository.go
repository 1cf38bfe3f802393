package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository handles database operations for IPO history and collector runs.
// It satisfies history.Backend, storing each bucket as one JSONB row.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Put inserts or replaces the bucket stored under key.
func (r *Repository) Put(ctx context.Context, key string, value []byte) (string, error) {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO ipo_history (bucket_key, records, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (bucket_key) DO UPDATE SET
			records = EXCLUDED.records,
			updated_at = NOW()
	`, key, json.RawMessage(value))
	if err != nil {
		return "", fmt.Errorf("upserting bucket %s: %w", key, err)
	}
	return "postgres://ipo_history/" + key, nil
}

// Get returns the bucket stored under key.
func (r *Repository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var records string
	err := r.pool.QueryRow(ctx,
		"SELECT records::text FROM ipo_history WHERE bucket_key = $1", key).Scan(&records)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("querying bucket %s: %w", key, err)
	}
	return []byte(records), true, nil
}

// Keys returns every bucket key.
func (r *Repository) Keys(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, "SELECT bucket_key FROM ipo_history ORDER BY bucket_key")
	if err != nil {
		return nil, fmt.Errorf("listing buckets: %w", err)
	}
	keys, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scanning bucket keys: %w", err)
	}
	return keys, nil
}

// Run is one collector execution.
type Run struct {
	ID         string    `json:"run_id"`
	BucketKey  string    `json:"bucket_key"`
	IPOCount   int       `json:"ipo_count"`
	RuleCount  int       `json:"rule_count"`
	UsedMock   bool      `json:"used_mock"`
	FinishedAt time.Time `json:"finished_at"`
}

// RecordRun inserts a collector run.
func (r *Repository) RecordRun(ctx context.Context, run Run) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO collector_runs (run_id, bucket_key, ipo_count, rule_count, used_mock, finished_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`, run.ID, run.BucketKey, run.IPOCount, run.RuleCount, run.UsedMock)
	if err != nil {
		return fmt.Errorf("recording run %s: %w", run.ID, err)
	}
	return nil
}

// LatestRun returns the most recent collector run, or nil if none was recorded.
func (r *Repository) LatestRun(ctx context.Context) (*Run, error) {
	var run Run
	err := r.pool.QueryRow(ctx, `
		SELECT run_id::text, bucket_key, ipo_count, rule_count, used_mock, finished_at
		FROM collector_runs
		ORDER BY finished_at DESC
		LIMIT 1
	`).Scan(&run.ID, &run.BucketKey, &run.IPOCount, &run.RuleCount, &run.UsedMock, &run.FinishedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying latest run: %w", err)
	}
	return &run, nil
}

// GetBucketCount returns the number of stored buckets.
func (r *Repository) GetBucketCount(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM ipo_history").Scan(&count)
	return count, err
}
