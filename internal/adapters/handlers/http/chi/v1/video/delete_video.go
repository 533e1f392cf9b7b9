package video

import (
	"encoding/json"
	"errors"
	"net/http"

	"hazard-watch/internal/adapters/handlers/http/chi/identity"
	"hazard-watch/internal/core/domain"

	"github.com/go-chi/chi/v5"
)

// V1DeleteVideoResponse reports which backends completed the delete
type V1DeleteVideoResponse struct {
	MetadataRemoved bool `json:"metadata_removed"`
	ObjectsRemoved  bool `json:"objects_removed"`
}

// DeleteVideoV1 is the handler for deleting one video from both backends
func (h *HandlerV1) DeleteVideoV1(w http.ResponseWriter, r *http.Request) {

	id, ok := identity.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	key := chi.URLParam(r, "key")

	outcome, err := h.reconciler.Delete(r.Context(), key, id)
	resp := V1DeleteVideoResponse{
		MetadataRemoved: outcome.MetadataRemoved,
		ObjectsRemoved:  outcome.ObjectsRemoved,
	}
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrPartialFailure):
		h.logger.Error("delete left backends out of step", "key", key, "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		if encErr := json.NewEncoder(w).Encode(resp); encErr != nil {
			h.logger.Error("error encoding response", "error", encErr)
		}
	case err != nil:
		h.logger.Error("error deleting video", "key", key, "error", err)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
	default:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
	}

}
