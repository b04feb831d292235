package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"einkauf/internal/items/models"
	"einkauf/internal/items/service"
	"einkauf/internal/items/store"
)

func newItemsRouter(t *testing.T) http.Handler {
	t.Helper()
	svc := service.New(store.NewInMemory())
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	h := New(svc, logger)
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestListItemsEmpty(t *testing.T) {
	router := newItemsRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/items", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 listing items, got %d", rec.Code)
	}
	if got := rec.Body.String(); got != "[]\n" {
		t.Fatalf("expected empty JSON array, got %q", got)
	}
}

func TestAddItemViaHandler(t *testing.T) {
	router := newItemsRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/items", map[string]string{"name": "apfel"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating item, got %d", rec.Code)
	}

	var item models.ItemDTO
	if err := json.NewDecoder(rec.Body).Decode(&item); err != nil {
		t.Fatalf("failed to decode item response: %v", err)
	}
	if item.Name != "Apfel" {
		t.Fatalf("expected capitalized name, got %q", item.Name)
	}
	if item.Quantity != 1 || item.Order != 0 || item.Bought {
		t.Fatalf("unexpected defaults: %+v", item)
	}
	if _, err := uuid.Parse(item.ID); err != nil {
		t.Fatalf("expected a uuid id, got %q", item.ID)
	}
	if _, err := time.Parse(time.RFC3339, item.CreatedAt); err != nil {
		t.Fatalf("expected RFC3339 createdAt, got %q", item.CreatedAt)
	}

	// Adding the same name again merges instead of creating a second row.
	rec = doJSON(t, router, http.MethodPost, "/items", map[string]string{"name": "APFEL"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 on merge add, got %d", rec.Code)
	}
	var merged models.ItemDTO
	if err := json.NewDecoder(rec.Body).Decode(&merged); err != nil {
		t.Fatalf("failed to decode merged response: %v", err)
	}
	if merged.ID != item.ID {
		t.Fatalf("expected merge into existing item, got new id %q", merged.ID)
	}
	if merged.Quantity != 2 {
		t.Fatalf("expected quantity 2 after merge, got %d", merged.Quantity)
	}

	rec = doJSON(t, router, http.MethodGet, "/items", nil)
	var list []models.ItemDTO
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("failed to decode list response: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected a single item after merge, got %d", len(list))
	}
}

func TestAddItemValidation(t *testing.T) {
	router := newItemsRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/items", map[string]string{"name": "   "})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank name, got %d", rec.Code)
	}

	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if body["message"] != "Validation error" {
		t.Fatalf("expected validation message, got %q", body["message"])
	}
}

func TestUpdateItemViaHandler(t *testing.T) {
	router := newItemsRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/items", map[string]string{"name": "Brot"})
	var item models.ItemDTO
	if err := json.NewDecoder(rec.Body).Decode(&item); err != nil {
		t.Fatalf("failed to decode item: %v", err)
	}

	t.Run("toggles bought", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPut, "/items/"+item.ID, map[string]any{"bought": true})
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 updating item, got %d", rec.Code)
		}
		var updated models.ItemDTO
		if err := json.NewDecoder(rec.Body).Decode(&updated); err != nil {
			t.Fatalf("failed to decode updated item: %v", err)
		}
		if !updated.Bought {
			t.Fatalf("expected bought=true after toggle")
		}
	})

	t.Run("empty payload is rejected", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPut, "/items/"+item.ID, map[string]any{})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for empty payload, got %d", rec.Code)
		}
	})

	t.Run("quantity zero answers 204 and removes the item", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPut, "/items/"+item.ID, map[string]any{"quantity": 0})
		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204 for quantity zero, got %d", rec.Code)
		}

		rec = doJSON(t, router, http.MethodGet, "/items", nil)
		var list []models.ItemDTO
		if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
			t.Fatalf("failed to decode list: %v", err)
		}
		if len(list) != 0 {
			t.Fatalf("expected empty list after quantity-zero delete, got %d items", len(list))
		}
	})

	t.Run("malformed id answers 400", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPut, "/items/not-a-uuid", map[string]any{"bought": true})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for malformed id, got %d", rec.Code)
		}
	})

	t.Run("unknown id answers 404", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPut, "/items/"+uuid.NewString(), map[string]any{"bought": true})
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404 for unknown id, got %d", rec.Code)
		}
	})
}

func TestRemoveItemViaHandler(t *testing.T) {
	router := newItemsRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/items", map[string]string{"name": "Milch"})
	var item models.ItemDTO
	if err := json.NewDecoder(rec.Body).Decode(&item); err != nil {
		t.Fatalf("failed to decode item: %v", err)
	}

	rec = doJSON(t, router, http.MethodDelete, "/items/"+item.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 deleting item, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodDelete, "/items/"+item.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 deleting the same item twice, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodDelete, "/items/oops", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 deleting a malformed id, got %d", rec.Code)
	}
}
