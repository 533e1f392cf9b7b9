package video

import (
	"encoding/json"
	"net/http"
	"time"

	"hazard-watch/internal/adapters/handlers/http/chi/identity"
	"hazard-watch/internal/core/domain"

	"github.com/google/uuid"
)

// V1VideoResponse is one video row in list and lookup responses
type V1VideoResponse struct {
	ID             uuid.UUID         `json:"id"`
	Key            string            `json:"key"`
	Bucket         string            `json:"bucket"`
	Status         string            `json:"status"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	UploadTime     time.Time         `json:"upload_time"`
	HazardDetected bool              `json:"hazard_detected"`
}

func toVideoResponse(record domain.VideoRecord) V1VideoResponse {
	return V1VideoResponse{
		ID:             record.ID,
		Key:            record.S3Key,
		Bucket:         record.Bucket,
		Status:         string(record.Status),
		Metadata:       record.Metadata,
		UploadTime:     record.UploadTime,
		HazardDetected: record.HazardDetected,
	}
}

// ListVideosV1 is the handler for listing the caller's videos
func (h *HandlerV1) ListVideosV1(w http.ResponseWriter, r *http.Request) {

	id, ok := identity.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	records, err := h.reconciler.ListVideos(r.Context(), id.UserID)
	if err != nil {
		h.logger.Error("error listing videos", "error", err)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
		return
	}

	resp := make([]V1VideoResponse, 0, len(records))
	for _, record := range records {
		resp = append(resp, toVideoResponse(record))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("error encoding response", "error", err)
	}

}
