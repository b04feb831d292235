// Package store persists the list-settings singleton. Implementations return
// sentinel.ErrNotFound when no record was ever written.
package store

import (
	"context"

	"einkauf/internal/list/models"
)

// Store is interface-driven so the service can run against in-memory,
// PostgreSQL or Redis persistence without rewiring.
type Store interface {
	// Find returns the singleton record.
	Find(ctx context.Context) (*models.Settings, error)
	// Create writes the singleton for the first time.
	Create(ctx context.Context, settings models.Settings) error
	// Upsert replaces the singleton's title, creating the record (with the
	// given id and timestamp) when it does not exist yet.
	Upsert(ctx context.Context, settings models.Settings) (*models.Settings, error)
}
