package video

import (
	"log/slog"
	"time"

	"hazard-watch/internal/core/port"

	"github.com/go-chi/chi/v5"
)

// HandlerV1 is the handler for v1 video routes
type HandlerV1 struct {
	processing port.ProcessingService
	reconciler port.ReconcilerService
	metadata   port.MetadataStore
	presignTTL time.Duration
	logger     *slog.Logger
}

// NewVideoHandlerV1 creates HandlerV1
func NewVideoHandlerV1(processing port.ProcessingService, reconciler port.ReconcilerService, metadata port.MetadataStore, presignTTL time.Duration, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		processing: processing,
		reconciler: reconciler,
		metadata:   metadata,
		presignTTL: presignTTL,
		logger:     logger,
	}
}

// Routes exposes handler routes
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/upload", h.UploadVideoV1)
	router.Get("/", h.ListVideosV1)
	router.Get("/{key}", h.GetVideoV1)
	router.Get("/{key}/url", h.GetVideoURLV1)
	router.Get("/{key}/log", h.GetDetectionLogV1)
	router.Patch("/{key}", h.RenameVideoV1)
	router.Delete("/{key}", h.DeleteVideoV1)
	router.Get("/actions", h.ListActionsV1)

	return router
}
