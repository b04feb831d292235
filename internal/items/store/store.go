// Package store persists shopping items. Implementations return
// sentinel.ErrNotFound for missing rows; the service layer translates
// sentinels into coded domain errors.
package store

import (
	"context"

	"github.com/google/uuid"

	"einkauf/internal/items/models"
)

// UpdateFields carries a partial update. Nil fields are left untouched, so a
// single store call is an atomic read-modify-write on one row.
type UpdateFields struct {
	Name     *string
	Bought   *bool
	Quantity *int
	Order    *int
}

// Store is interface-driven so the service can run against in-memory or
// PostgreSQL persistence without rewiring.
type Store interface {
	// List returns all items sorted by order ascending, then createdAt
	// descending.
	List(ctx context.Context) ([]models.Item, error)
	// FindByNameKey looks an item up by its normalized name key.
	FindByNameKey(ctx context.Context, key string) (*models.Item, error)
	Create(ctx context.Context, item models.Item) error
	// Update applies the non-nil fields to the row and returns the updated
	// item.
	Update(ctx context.Context, id uuid.UUID, fields UpdateFields) (*models.Item, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
