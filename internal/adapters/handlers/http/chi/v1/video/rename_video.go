package video

import (
	"encoding/json"
	"errors"
	"net/http"

	"hazard-watch/internal/adapters/handlers/http/chi/identity"
	"hazard-watch/internal/core/domain"

	"github.com/go-chi/chi/v5"
)

// V1RenameVideoRequest is the body request for Rename
type V1RenameVideoRequest struct {
	NewName string `json:"new_name"`
}

// V1RenameVideoResponse reports the key after the rename
type V1RenameVideoResponse struct {
	Key string `json:"key"`
}

// RenameVideoV1 is the handler for renaming one video
func (h *HandlerV1) RenameVideoV1(w http.ResponseWriter, r *http.Request) {

	id, ok := identity.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req V1RenameVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("error decoding rename request", "error", err)
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.NewName == "" {
		http.Error(w, "new_name required", http.StatusBadRequest)
		return
	}

	key := chi.URLParam(r, "key")

	newKey, err := h.reconciler.Rename(r.Context(), key, req.NewName, id)
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrInvalidKey):
		http.Error(w, "invalid key", http.StatusBadRequest)
	case errors.Is(err, domain.ErrDuplicateKey):
		http.Error(w, "a video with that name already exists", http.StatusConflict)
	case errors.Is(err, domain.ErrPartialFailure):
		// Metadata moved but at least one object did not. Report the new key
		// so the caller keeps a valid handle while the sweep catches up.
		h.logger.Error("rename left backends out of step", "key", key, "new_key", newKey, "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		if encErr := json.NewEncoder(w).Encode(V1RenameVideoResponse{Key: newKey}); encErr != nil {
			h.logger.Error("error encoding response", "error", encErr)
		}
	case err != nil:
		h.logger.Error("error renaming video", "key", key, "error", err)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
	default:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(V1RenameVideoResponse{Key: newKey}); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
	}

}
