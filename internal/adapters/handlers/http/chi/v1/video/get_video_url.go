package video

import (
	"encoding/json"
	"errors"
	"net/http"

	"hazard-watch/internal/adapters/handlers/http/chi/identity"
	"hazard-watch/internal/core/domain"

	"github.com/go-chi/chi/v5"
)

// V1VideoURLResponse carries a presigned download URL
type V1VideoURLResponse struct {
	URL string `json:"url"`
}

// GetVideoURLV1 is the handler for issuing a presigned URL for one video
func (h *HandlerV1) GetVideoURLV1(w http.ResponseWriter, r *http.Request) {

	id, ok := identity.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	key := chi.URLParam(r, "key")

	url, err := h.reconciler.VideoURL(r.Context(), key, h.presignTTL, id)
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrVideoNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrStoreUnavailable):
		h.logger.Error("object store unavailable", "key", key, "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	case err != nil:
		h.logger.Error("error issuing presigned url", "key", key, "error", err)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
	default:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(V1VideoURLResponse{URL: url}); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
	}

}
