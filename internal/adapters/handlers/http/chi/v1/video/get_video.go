package video

import (
	"encoding/json"
	"errors"
	"net/http"

	"hazard-watch/internal/adapters/handlers/http/chi/identity"
	"hazard-watch/internal/core/domain"

	"github.com/go-chi/chi/v5"
)

// GetVideoV1 is the handler for looking up one video by key. Videos that only
// exist in the object store are still returned, with a synthesized record.
func (h *HandlerV1) GetVideoV1(w http.ResponseWriter, r *http.Request) {

	id, ok := identity.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	key := chi.URLParam(r, "key")

	owner, err := domain.KeyOwner(key)
	if err != nil || owner != id.Username {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	record, err := h.reconciler.Lookup(r.Context(), key)
	switch {
	case errors.Is(err, domain.ErrVideoNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrStoreUnavailable), errors.Is(err, domain.ErrMetadataUnavailable):
		h.logger.Error("lookup unavailable", "key", key, "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	case err != nil:
		h.logger.Error("error looking up video", "key", key, "error", err)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
	default:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(toVideoResponse(*record)); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
	}

}
