package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresKV implements KV on a single payload table. The whole collection
// payload is read and upserted in one statement each, keeping the
// read-modify-write cycle as coarse as the contract demands.
type PostgresKV struct {
	pool *pgxpool.Pool
}

// NewPostgresKV creates a Postgres-backed KV.
func NewPostgresKV(pool *pgxpool.Pool) *PostgresKV {
	return &PostgresKV{pool: pool}
}

// EnsureSchema creates the payload table when missing.
func (p *PostgresKV) EnsureSchema(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS kv_payloads (
    key        text PRIMARY KEY,
    payload    text NOT NULL,
    updated_at timestamptz NOT NULL DEFAULT now()
);
`)
	if err != nil {
		return fmt.Errorf("ensure kv schema: %w", err)
	}
	return nil
}

// Get returns the payload under key.
func (p *PostgresKV) Get(ctx context.Context, key string) (string, bool, error) {
	var payload string
	err := p.pool.QueryRow(ctx, `
SELECT payload FROM kv_payloads WHERE key = $1;
`, key).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get payload %q: %w", key, err)
	}
	return payload, true, nil
}

// Set upserts the payload under key.
func (p *PostgresKV) Set(ctx context.Context, key, payload string) error {
	_, err := p.pool.Exec(ctx, `
INSERT INTO kv_payloads (key, payload, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now();
`, key, payload)
	if err != nil {
		return fmt.Errorf("set payload %q: %w", key, err)
	}
	return nil
}
