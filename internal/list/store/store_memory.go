package store

import (
	"context"
	"sync"

	"einkauf/internal/list/models"
	"einkauf/pkg/platform/sentinel"
)

// InMemory holds the settings singleton behind a RWMutex.
type InMemory struct {
	mu       sync.RWMutex
	settings *models.Settings
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

func (s *InMemory) Find(_ context.Context) (*models.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.settings == nil {
		return nil, sentinel.ErrNotFound
	}
	found := *s.settings
	return &found, nil
}

func (s *InMemory) Create(_ context.Context, settings models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = &settings
	return nil
}

func (s *InMemory) Upsert(_ context.Context, settings models.Settings) (*models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.settings == nil {
		s.settings = &settings
	} else {
		// Keep identity and creation time of the existing record.
		s.settings.Title = settings.Title
	}
	result := *s.settings
	return &result, nil
}
