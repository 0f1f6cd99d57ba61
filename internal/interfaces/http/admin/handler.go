package admin

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	adminapp "github.com/rchitlangi/cv-site/api/internal/admin/application"
)

// Handler wires admin HTTP endpoints to application services.
type Handler struct {
	logger zerolog.Logger
	events adminapp.ContactEventService
}

// Config provides dependencies for Handler.
type Config struct {
	Logger zerolog.Logger
	Events adminapp.ContactEventService
}

// NewHandler constructs an admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger: cfg.Logger.With().Str("component", "admin_http").Logger(),
		events: cfg.Events,
	}
}

// Register mounts admin routes onto router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/contact-events", h.contactEventListHandler())
}
