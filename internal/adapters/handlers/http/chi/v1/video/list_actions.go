package video

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"hazard-watch/internal/adapters/handlers/http/chi/identity"

	"github.com/google/uuid"
)

const defaultActionLimit = 50

// V1ActionResponse is one audit row
type V1ActionResponse struct {
	ID        int64             `json:"id"`
	Action    string            `json:"action"`
	VideoID   *uuid.UUID        `json:"video_id,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// ListActionsV1 is the handler for listing the caller's audit trail
func (h *HandlerV1) ListActionsV1(w http.ResponseWriter, r *http.Request) {

	id, ok := identity.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	limit := defaultActionLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	entries, err := h.metadata.GetUserLogs(r.Context(), id.UserID, limit)
	if err != nil {
		h.logger.Error("error listing actions", "error", err)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
		return
	}

	resp := make([]V1ActionResponse, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, V1ActionResponse{
			ID:        entry.ID,
			Action:    string(entry.Action),
			VideoID:   entry.VideoID,
			Details:   entry.Details,
			CreatedAt: entry.CreatedAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("error encoding response", "error", err)
	}

}
