package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"einkauf/internal/list/models"
	"einkauf/internal/platform/middleware"
	dErrors "einkauf/pkg/domain-errors"
	"einkauf/pkg/platform/httputil"
)

// Service defines the list-settings operations the HTTP layer depends on.
type Service interface {
	GetOrCreate(ctx context.Context) (*models.Settings, error)
	SetTitle(ctx context.Context, title string) (*models.Settings, error)
}

// Handler serves the /list endpoints.
type Handler struct {
	logger   *slog.Logger
	settings Service
}

// New creates the list Handler.
func New(settings Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:   logger,
		settings: settings,
	}
}

// Register registers the list routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/list", h.handleGet)
	r.Put("/list", h.handleSetTitle)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	settings, err := h.settings.GetOrCreate(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load list settings",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, models.ToDTO(*settings))
}

func (h *Handler) handleSetTitle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.UpdateListTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	settings, err := h.settings.SetTitle(ctx, req.Title)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeValidation) {
			h.logger.WarnContext(ctx, "invalid list title",
				"request_id", middleware.GetRequestID(ctx),
				"error", err.Error(),
			)
		} else {
			h.logger.ErrorContext(ctx, "failed to save list title",
				"request_id", middleware.GetRequestID(ctx),
				"error", err.Error(),
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, models.ToDTO(*settings))
}
