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

type RedisSettingsStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *store.Redis
}

func TestRedisSettingsStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisSettingsStoreSuite))
}

func (s *RedisSettingsStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = store.NewRedis(s.redis.Client)
}

func (s *RedisSettingsStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisSettingsStoreSuite) TestRoundTrip() {
	ctx := context.Background()

	_, err := s.store.Find(ctx)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	settings := models.Settings{
		ID:        uuid.New(),
		Title:     "Wochenendeinkauf",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	s.Require().NoError(s.store.Create(ctx, settings))

	found, err := s.store.Find(ctx)
	s.Require().NoError(err)
	s.Equal(settings.ID, found.ID)
	s.Equal(settings.Title, found.Title)
	s.True(settings.CreatedAt.Equal(found.CreatedAt))
}

func (s *RedisSettingsStoreSuite) TestUpsertKeepsIdentity() {
	ctx := context.Background()

	created, err := s.store.Upsert(ctx, models.Settings{
		ID:        uuid.New(),
		Title:     "Erste Liste",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	})
	s.Require().NoError(err)

	updated, err := s.store.Upsert(ctx, models.Settings{
		ID:        uuid.New(),
		Title:     "Neue Liste",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	})
	s.Require().NoError(err)
	s.Equal(created.ID, updated.ID, "existing document keeps its id")
	s.Equal("Neue Liste", updated.Title)
}
