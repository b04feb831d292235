package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"einkauf/internal/items/models"
	"einkauf/internal/platform/middleware"
	dErrors "einkauf/pkg/domain-errors"
	"einkauf/pkg/platform/httputil"
)

// Service defines the item operations the HTTP layer depends on.
type Service interface {
	List(ctx context.Context) ([]models.Item, error)
	Add(ctx context.Context, name string) (*models.Item, error)
	Update(ctx context.Context, id string, req models.UpdateItemRequest) (*models.Item, bool, error)
	Remove(ctx context.Context, id string) error
}

// Handler serves the /items endpoints.
type Handler struct {
	logger *slog.Logger
	items  Service
}

// New creates the items Handler.
func New(items Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger: logger,
		items:  items,
	}
}

// Register registers the item routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/items", h.handleList)
	r.Post("/items", h.handleAdd)
	r.Put("/items/{id}", h.handleUpdate)
	r.Delete("/items/{id}", h.handleRemove)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := h.items.List(ctx)
	if err != nil {
		h.logError(ctx, "failed to list items", err)
		httputil.WriteError(w, err)
		return
	}

	dtos := make([]models.ItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, models.ToDTO(item))
	}
	httputil.WriteJSON(w, http.StatusOK, dtos)
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	item, err := h.items.Add(ctx, req.Name)
	if err != nil {
		h.logError(ctx, "failed to add item", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, models.ToDTO(*item))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var req models.UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	item, deleted, err := h.items.Update(ctx, id, req)
	if err != nil {
		h.logError(ctx, "failed to update item", err)
		httputil.WriteError(w, err)
		return
	}
	if deleted {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, models.ToDTO(*item))
}

func (h *Handler) handleRemove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	if err := h.items.Remove(ctx, id); err != nil {
		h.logError(ctx, "failed to remove item", err)
		httputil.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// logError keeps client faults at warn level; only unexpected failures are
// errors.
func (h *Handler) logError(ctx context.Context, message string, err error) {
	code := dErrors.CodeOf(err)
	attrs := []any{
		"request_id", middleware.GetRequestID(ctx),
		"code", string(code),
		"error", err.Error(),
	}
	if code == dErrors.CodeInternal || code == dErrors.CodeUnavailable {
		h.logger.ErrorContext(ctx, message, attrs...)
		return
	}
	h.logger.WarnContext(ctx, message, attrs...)
}
