package models

import (
	"time"

	"github.com/google/uuid"
)

// Settings is the singleton list-title record.
//
// Invariants:
//   - at most one record exists; the first read creates it with the
//     configured default title
//   - Title is non-empty after trimming
//   - CreatedAt is immutable after construction
type Settings struct {
	ID        uuid.UUID
	Title     string
	CreatedAt time.Time
}

// SettingsDTO is the wire shape served by the HTTP API.
type SettingsDTO struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"createdAt"`
}

// ToDTO maps the settings record to its wire shape.
func ToDTO(s Settings) SettingsDTO {
	return SettingsDTO{
		ID:        s.ID.String(),
		Title:     s.Title,
		CreatedAt: s.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// UpdateListTitleRequest is the PUT /list body.
type UpdateListTitleRequest struct {
	Title string `json:"title"`
}
