package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is applied on startup. The name_key index backs the case-insensitive
// merge lookup; it is deliberately not unique so two concurrent adds of a
// brand-new name behave like the document-store original (last writer wins).
const Schema = `
CREATE TABLE IF NOT EXISTS shopping_items (
    id         UUID PRIMARY KEY,
    name       TEXT NOT NULL,
    name_key   TEXT NOT NULL,
    bought     BOOLEAN NOT NULL DEFAULT FALSE,
    quantity   INTEGER NOT NULL DEFAULT 1 CHECK (quantity >= 0),
    sort_order INTEGER NOT NULL DEFAULT 0 CHECK (sort_order >= 0),
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS shopping_items_name_key_idx ON shopping_items (name_key);

CREATE TABLE IF NOT EXISTS list_settings (
    id         UUID PRIMARY KEY,
    title      TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Connect opens a pgx pool, verifies connectivity and ensures the schema.
func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	if _, err := pool.Exec(ctx, Schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return pool, nil
}
