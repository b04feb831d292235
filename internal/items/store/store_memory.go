package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"einkauf/internal/items/models"
	"einkauf/pkg/platform/sentinel"
)

// InMemory keeps items in a map guarded by a RWMutex. It backs unit tests and
// processes running without a DATABASE_URL.
type InMemory struct {
	mu    sync.RWMutex
	items map[uuid.UUID]models.Item
}

func NewInMemory() *InMemory {
	return &InMemory{items: make(map[uuid.UUID]models.Item)}
}

func (s *InMemory) List(_ context.Context) ([]models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Item, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *InMemory) FindByNameKey(_ context.Context, key string) (*models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if models.NameKey(item.Name) == key {
			found := item
			return &found, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) Create(_ context.Context, item models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = item
	return nil
}

func (s *InMemory) Update(_ context.Context, id uuid.UUID, fields UpdateFields) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if fields.Name != nil {
		item.Name = *fields.Name
	}
	if fields.Bought != nil {
		item.Bought = *fields.Bought
	}
	if fields.Quantity != nil {
		item.Quantity = *fields.Quantity
	}
	if fields.Order != nil {
		item.Order = *fields.Order
	}
	s.items[id] = item
	return &item, nil
}

func (s *InMemory) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.items, id)
	return nil
}
