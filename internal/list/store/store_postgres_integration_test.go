//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"einkauf/internal/list/models"
	"einkauf/internal/list/store"
	"einkauf/pkg/platform/sentinel"
	"einkauf/pkg/testutil/containers"
)

type PostgresSettingsStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.Postgres
}

func TestPostgresSettingsStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresSettingsStoreSuite))
}

func (s *PostgresSettingsStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgres(s.postgres.Pool)
}

func (s *PostgresSettingsStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.Truncate(context.Background(), "list_settings"))
}

func newTestSettings(title string) models.Settings {
	return models.Settings{
		ID:        uuid.New(),
		Title:     title,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

func (s *PostgresSettingsStoreSuite) TestFindBeforeCreate() {
	_, err := s.store.Find(context.Background())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresSettingsStoreSuite) TestUpsertCreatesThenUpdates() {
	ctx := context.Background()

	created, err := s.store.Upsert(ctx, newTestSettings("Erste Liste"))
	s.Require().NoError(err)
	s.Equal("Erste Liste", created.Title)

	updated, err := s.store.Upsert(ctx, newTestSettings("Neue Liste"))
	s.Require().NoError(err)
	s.Equal(created.ID, updated.ID, "singleton keeps its id across upserts")
	s.Equal("Neue Liste", updated.Title)

	found, err := s.store.Find(ctx)
	s.Require().NoError(err)
	s.Equal("Neue Liste", found.Title)
}
