package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"einkauf/internal/list/models"
	"einkauf/pkg/platform/sentinel"
)

// Postgres persists the settings singleton in the list_settings table. The
// table holds at most one row; Upsert updates whichever row exists.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func scanSettings(row pgx.Row) (*models.Settings, error) {
	var s models.Settings
	if err := row.Scan(&s.ID, &s.Title, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan list settings: %w", err)
	}
	return &s, nil
}

func (s *Postgres) Find(ctx context.Context) (*models.Settings, error) {
	row := s.pool.QueryRow(ctx, "SELECT id, title, created_at FROM list_settings LIMIT 1")
	return scanSettings(row)
}

func (s *Postgres) Create(ctx context.Context, settings models.Settings) error {
	_, err := s.pool.Exec(ctx,
		"INSERT INTO list_settings (id, title, created_at) VALUES ($1, $2, $3)",
		settings.ID, settings.Title, settings.CreatedAt)
	if err != nil {
		return fmt.Errorf("create list settings: %w", err)
	}
	return nil
}

func (s *Postgres) Upsert(ctx context.Context, settings models.Settings) (*models.Settings, error) {
	// Update-first keeps the existing row's id and creation time; the insert
	// only runs when the list was never titled.
	row := s.pool.QueryRow(ctx,
		`UPDATE list_settings SET title = $1
		 WHERE id = (SELECT id FROM list_settings LIMIT 1)
		 RETURNING id, title, created_at`,
		settings.Title)
	updated, err := scanSettings(row)
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, err
	}

	if err := s.Create(ctx, settings); err != nil {
		return nil, err
	}
	return &settings, nil
}
