package video

import (
	"encoding/json"
	"errors"
	"net/http"

	"hazard-watch/internal/adapters/handlers/http/chi/identity"
	"hazard-watch/internal/core/domain"

	"github.com/go-chi/chi/v5"
)

// GetDetectionLogV1 is the handler for fetching the per-frame detection log of
// one video. The body is the stored JSON array of [frame, weapon, knife]
// tuples.
func (h *HandlerV1) GetDetectionLogV1(w http.ResponseWriter, r *http.Request) {

	id, ok := identity.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	key := chi.URLParam(r, "key")

	frames, err := h.reconciler.DetectionLog(r.Context(), key, id)
	switch {
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrDetectionLogNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrStoreUnavailable):
		h.logger.Error("object store unavailable", "key", key, "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	case err != nil:
		h.logger.Error("error fetching detection log", "key", key, "error", err)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
	default:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(frames); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
	}

}
