package video

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"hazard-watch/internal/adapters/handlers/http/chi/identity"
	"hazard-watch/internal/core/domain"

	"github.com/google/uuid"
)

// V1UploadVideoResponse reports the outcome of a processed upload
type V1UploadVideoResponse struct {
	VideoID        uuid.UUID `json:"video_id"`
	Key            string    `json:"key"`
	HazardDetected bool      `json:"hazard_detected"`
	Frames         int       `json:"frames"`
	FPS            int       `json:"fps"`
}

// UploadVideoV1 stages the uploaded file on local disk, runs it through
// detection and persists the outcome
func (h *HandlerV1) UploadVideoV1(w http.ResponseWriter, r *http.Request) {

	id, ok := identity.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	file, header, err := r.FormFile("video")
	if err != nil {
		h.logger.Error("error reading upload form", "error", err)
		http.Error(w, "video file required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if filepath.Ext(header.Filename) != ".mp4" {
		http.Error(w, "only mp4 uploads are accepted", http.StatusBadRequest)
		return
	}

	staged, err := os.CreateTemp("", "upload-*.mp4")
	if err != nil {
		h.logger.Error("error staging upload", "error", err)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
		return
	}
	defer os.Remove(staged.Name())

	if _, err := io.Copy(staged, file); err != nil {
		staged.Close()
		h.logger.Error("error staging upload", "error", err)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
		return
	}
	staged.Close()

	result, err := h.processing.ProcessAndStore(r.Context(), staged.Name(), header.Filename, id)
	switch {
	case errors.Is(err, domain.ErrInvalidMedia):
		http.Error(w, "file is not a readable video", http.StatusUnprocessableEntity)
	case errors.Is(err, domain.ErrStoreUnavailable), errors.Is(err, domain.ErrMetadataUnavailable):
		h.logger.Error("upload processing unavailable", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	case err != nil:
		h.logger.Error("error processing upload", "error", err)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
	default:
		resp := V1UploadVideoResponse{
			VideoID:        result.VideoID,
			Key:            result.ArtifactKey,
			HazardDetected: result.HazardDetected,
			Frames:         len(result.Frames),
			FPS:            result.FPS,
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
	}

}
