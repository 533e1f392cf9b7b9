package auth

import (
	"log/slog"

	"hazard-watch/internal/core/port"

	"github.com/go-chi/chi/v5"
)

// HandlerV1 is the handler for v1 auth routes
type HandlerV1 struct {
	authService port.AuthService
	logger      *slog.Logger
}

// NewAuthHandlerV1 creates HandlerV1
func NewAuthHandlerV1(service port.AuthService, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		authService: service,
		logger:      logger,
	}
}

// Routes exposes handler routes
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", h.RegisterV1)
	router.Post("/login", h.LoginV1)

	return router
}
