// Package service implements the item mutation rules: merge-on-add,
// quantity-zero deletion and list-wide ordering.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	itemmetrics "einkauf/internal/items/metrics"
	"einkauf/internal/items/models"
	"einkauf/internal/items/store"
	dErrors "einkauf/pkg/domain-errors"
	"einkauf/pkg/platform/sentinel"
)

// Service orchestrates item mutations. It holds no item state between calls;
// every operation re-reads from the store.
type Service struct {
	store   store.Store
	metrics *itemmetrics.Metrics
	now     func() time.Time
	newID   func() uuid.UUID
}

type Option func(*Service)

// WithMetrics attaches item lifecycle counters.
func WithMetrics(m *itemmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock overrides the creation timestamp source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDSource overrides id generation, for tests.
func WithIDSource(newID func() uuid.UUID) Option {
	return func(s *Service) { s.newID = newID }
}

func New(st store.Store, opts ...Option) *Service {
	s := &Service{
		store: st,
		now:   time.Now,
		newID: uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns all items sorted by order ascending, ties broken by createdAt
// descending.
func (s *Service) List(ctx context.Context) ([]models.Item, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list items")
	}
	return items, nil
}

// Add creates an item or, when the trimmed name matches an existing item
// case-insensitively, increments that item's quantity instead of creating a
// duplicate row. The stored display name is re-normalized on merge.
func (s *Service) Add(ctx context.Context, name string) (*models.Item, error) {
	normalized := models.NormalizeName(name)
	if normalized == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "Validation error").
			WithDetails(map[string]string{"name": "must not be empty"})
	}

	existing, err := s.store.FindByNameKey(ctx, models.NameKey(normalized))
	switch {
	case err == nil:
		quantity := existing.Quantity + 1
		freshName := models.NormalizeName(existing.Name)
		updated, err := s.store.Update(ctx, existing.ID, store.UpdateFields{
			Name:     &freshName,
			Quantity: &quantity,
		})
		if err != nil {
			return nil, s.wrapStoreErr(err, "failed to merge item")
		}
		s.metrics.IncrementMerged()
		return updated, nil

	case errors.Is(err, sentinel.ErrNotFound):
		order, err := s.nextOrder(ctx)
		if err != nil {
			return nil, err
		}
		item := models.Item{
			ID:        s.newID(),
			Name:      normalized,
			Bought:    false,
			Quantity:  1,
			Order:     order,
			CreatedAt: s.now(),
		}
		if err := s.store.Create(ctx, item); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create item")
		}
		s.metrics.IncrementCreated()
		return &item, nil

	default:
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up item by name")
	}
}

// nextOrder is max(order)+1 across all items, or 0 on an empty list. Two
// concurrent adds of a brand-new name can both pass the lookup and create two
// rows; that race is accepted, matching the original last-writer-wins model.
func (s *Service) nextOrder(ctx context.Context) (int, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to compute next order")
	}
	if len(items) == 0 {
		return 0, nil
	}
	max := items[0].Order
	for _, item := range items[1:] {
		if item.Order > max {
			max = item.Order
		}
	}
	return max + 1, nil
}

// Update applies a partial update. A quantity of exactly 0 deletes the item
// instead; the boolean result distinguishes that deletion from a normal
// update so the HTTP layer can answer 204.
func (s *Service) Update(ctx context.Context, id string, req models.UpdateItemRequest) (*models.Item, bool, error) {
	itemID, err := parseID(id)
	if err != nil {
		return nil, false, err
	}
	if err := validateUpdate(req); err != nil {
		return nil, false, err
	}

	if req.Quantity != nil && *req.Quantity == 0 {
		if err := s.store.Delete(ctx, itemID); err != nil {
			return nil, false, s.wrapStoreErr(err, "failed to delete item")
		}
		s.metrics.IncrementDeleted()
		return nil, true, nil
	}

	updated, err := s.store.Update(ctx, itemID, store.UpdateFields{
		Bought:   req.Bought,
		Quantity: req.Quantity,
		Order:    req.Order,
	})
	if err != nil {
		return nil, false, s.wrapStoreErr(err, "failed to update item")
	}
	return updated, false, nil
}

// Remove deletes an item by id.
func (s *Service) Remove(ctx context.Context, id string) error {
	itemID, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, itemID); err != nil {
		return s.wrapStoreErr(err, "failed to delete item")
	}
	s.metrics.IncrementDeleted()
	return nil
}

// parseID keeps the malformed-id failure (400) distinct from a well-formed id
// that resolves to nothing (404).
func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, "Invalid id")
	}
	return parsed, nil
}

func validateUpdate(req models.UpdateItemRequest) error {
	if req.Bought == nil && req.Quantity == nil && req.Order == nil {
		return dErrors.New(dErrors.CodeValidation, "Validation error").
			WithDetails(map[string]string{"body": "at least one field must be provided"})
	}
	if req.Quantity != nil && *req.Quantity < 0 {
		return dErrors.New(dErrors.CodeValidation, "Validation error").
			WithDetails(map[string]string{"quantity": "must not be negative"})
	}
	if req.Order != nil && *req.Order < 0 {
		return dErrors.New(dErrors.CodeValidation, "Validation error").
			WithDetails(map[string]string{"order": "must not be negative"})
	}
	return nil
}

func (s *Service) wrapStoreErr(err error, message string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "Item not found")
	}
	if errors.Is(err, sentinel.ErrUnavailable) {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "store unavailable")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, message)
}
