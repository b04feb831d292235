package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"einkauf/internal/list/models"
	platformredis "einkauf/internal/platform/redis"
	"einkauf/pkg/platform/sentinel"
)

// settingsKey holds the singleton as one JSON document, the closest Redis
// analogue to the original single-document collection.
const settingsKey = "einkauf:list:settings"

type settingsDoc struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// Redis persists the settings singleton as a JSON value under a fixed key.
type Redis struct {
	client *platformredis.Client
}

func NewRedis(client *platformredis.Client) *Redis {
	return &Redis{client: client}
}

func (s *Redis) Find(ctx context.Context) (*models.Settings, error) {
	raw, err := s.client.Get(ctx, settingsKey).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get list settings: %w", err)
	}
	return decodeSettings(raw)
}

func (s *Redis) Create(ctx context.Context, settings models.Settings) error {
	raw, err := encodeSettings(settings)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, settingsKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("set list settings: %w", err)
	}
	return nil
}

func (s *Redis) Upsert(ctx context.Context, settings models.Settings) (*models.Settings, error) {
	existing, err := s.Find(ctx)
	switch {
	case err == nil:
		existing.Title = settings.Title
		if err := s.Create(ctx, *existing); err != nil {
			return nil, err
		}
		return existing, nil
	case errors.Is(err, sentinel.ErrNotFound):
		if err := s.Create(ctx, settings); err != nil {
			return nil, err
		}
		return &settings, nil
	default:
		return nil, err
	}
}

func encodeSettings(settings models.Settings) ([]byte, error) {
	raw, err := json.Marshal(settingsDoc{
		ID:        settings.ID.String(),
		Title:     settings.Title,
		CreatedAt: settings.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("encode list settings: %w", err)
	}
	return raw, nil
}

func decodeSettings(raw []byte) (*models.Settings, error) {
	var doc settingsDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode list settings: %w", err)
	}
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("decode list settings id: %w", err)
	}
	return &models.Settings{
		ID:        id,
		Title:     doc.Title,
		CreatedAt: doc.CreatedAt,
	}, nil
}
