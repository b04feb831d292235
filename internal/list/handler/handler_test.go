package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"einkauf/internal/list/models"
	"einkauf/internal/list/service"
	"einkauf/internal/list/store"
)

const defaultTitle = "Was brauchst du heute?"

func newListRouter(t *testing.T) http.Handler {
	t.Helper()
	svc := service.New(store.NewInMemory(), defaultTitle)
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	h := New(svc, logger)
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func TestGetListCreatesDefault(t *testing.T) {
	router := newListRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/list", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 fetching list settings, got %d", rec.Code)
	}

	var settings models.SettingsDTO
	if err := json.NewDecoder(rec.Body).Decode(&settings); err != nil {
		t.Fatalf("failed to decode settings response: %v", err)
	}
	if settings.Title != defaultTitle {
		t.Fatalf("expected default title, got %q", settings.Title)
	}
	if settings.ID == "" || settings.CreatedAt == "" {
		t.Fatalf("expected id and createdAt to be populated: %+v", settings)
	}
}

func TestUpdateListTitle(t *testing.T) {
	router := newListRouter(t)

	body, _ := json.Marshal(map[string]string{"title": "Wochenendeinkauf"})
	req := httptest.NewRequest(http.MethodPut, "/list", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 updating title, got %d", rec.Code)
	}

	var settings models.SettingsDTO
	if err := json.NewDecoder(rec.Body).Decode(&settings); err != nil {
		t.Fatalf("failed to decode settings response: %v", err)
	}
	if settings.Title != "Wochenendeinkauf" {
		t.Fatalf("expected updated title, got %q", settings.Title)
	}

	// The upsert must not have created a second record: a read returns the
	// same id and the new title.
	getReq := httptest.NewRequest(http.MethodGet, "/list", nil)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, getReq)

	var fetched models.SettingsDTO
	if err := json.NewDecoder(getRec.Body).Decode(&fetched); err != nil {
		t.Fatalf("failed to decode fetched settings: %v", err)
	}
	if fetched.ID != settings.ID || fetched.Title != settings.Title {
		t.Fatalf("expected singleton upsert, got %+v vs %+v", fetched, settings)
	}
}

func TestUpdateListTitleValidation(t *testing.T) {
	router := newListRouter(t)

	body, _ := json.Marshal(map[string]string{"title": "   "})
	req := httptest.NewRequest(http.MethodPut, "/list", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank title, got %d", rec.Code)
	}

	var errBody map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&errBody); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if errBody["message"] != "Validation error" {
		t.Fatalf("expected validation message, got %q", errBody["message"])
	}
}
