// Package service manages the list-settings singleton: lazy creation with a
// default title and upsert-style title updates.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"einkauf/internal/list/models"
	"einkauf/internal/list/store"
	dErrors "einkauf/pkg/domain-errors"
	"einkauf/pkg/platform/sentinel"
)

type Service struct {
	store        store.Store
	defaultTitle string
	now          func() time.Time
	newID        func() uuid.UUID
}

type Option func(*Service)

// WithClock overrides the creation timestamp source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(st store.Store, defaultTitle string, opts ...Option) *Service {
	s := &Service{
		store:        st,
		defaultTitle: defaultTitle,
		now:          time.Now,
		newID:        uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetOrCreate returns the settings singleton, creating it with the configured
// default title when no record exists yet.
func (s *Service) GetOrCreate(ctx context.Context) (*models.Settings, error) {
	existing, err := s.store.Find(ctx)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load list settings")
	}

	settings := models.Settings{
		ID:        s.newID(),
		Title:     s.defaultTitle,
		CreatedAt: s.now(),
	}
	if err := s.store.Create(ctx, settings); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create list settings")
	}
	return &settings, nil
}

// SetTitle upserts the singleton with a new title.
func (s *Service) SetTitle(ctx context.Context, title string) (*models.Settings, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "Validation error").
			WithDetails(map[string]string{"title": "must not be empty"})
	}

	settings, err := s.store.Upsert(ctx, models.Settings{
		ID:        s.newID(),
		Title:     trimmed,
		CreatedAt: s.now(),
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save list title")
	}
	return settings, nil
}
