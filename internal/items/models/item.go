package models

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// Item is a single shopping-list row.
//
// Invariants:
//   - Name is non-empty after trimming; it is stored display-ready (first
//     rune capitalized)
//   - At most one item exists per case-insensitive name; Add merges instead
//     of duplicating (see items/service)
//   - Quantity is never negative; an update that reaches 0 deletes the row
//   - Order is never negative; new rows get max(order)+1, or 0 on an empty list
//   - CreatedAt is immutable after construction
type Item struct {
	ID        uuid.UUID
	Name      string
	Bought    bool
	Quantity  int
	Order     int
	CreatedAt time.Time
}

// NameKey returns the normalized lookup key for case-insensitive matching.
// Storing the key alongside the display name replaces the escaped-regex
// matching a document store would need and sidesteps pattern injection.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NormalizeName trims the name and capitalizes its first rune for display.
func NormalizeName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return trimmed
	}
	runes := []rune(trimmed)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// ItemDTO is the stable wire shape served by the HTTP API.
type ItemDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Bought    bool   `json:"bought"`
	Quantity  int    `json:"quantity"`
	Order     int    `json:"order"`
	CreatedAt string `json:"createdAt"`
}

// ToDTO maps an item to its wire shape. Names are normalized again here so
// rows written before normalization existed still render capitalized.
func ToDTO(item Item) ItemDTO {
	return ItemDTO{
		ID:        item.ID.String(),
		Name:      NormalizeName(item.Name),
		Bought:    item.Bought,
		Quantity:  item.Quantity,
		Order:     item.Order,
		CreatedAt: item.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// CreateItemRequest is the POST /items body.
type CreateItemRequest struct {
	Name string `json:"name"`
}

// UpdateItemRequest is the PUT /items/{id} body. All fields are optional but
// at least one must be present.
type UpdateItemRequest struct {
	Bought   *bool `json:"bought,omitempty"`
	Quantity *int  `json:"quantity,omitempty"`
	Order    *int  `json:"order,omitempty"`
}
