package video_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	http2 "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hazard-watch/internal/adapters/handlers/http/chi"
	auth2 "hazard-watch/internal/adapters/handlers/http/chi/v1/auth"
	video2 "hazard-watch/internal/adapters/handlers/http/chi/v1/video"
	"hazard-watch/internal/core/domain"
	"hazard-watch/internal/core/service/auth"
	"hazard-watch/internal/core/service/metadata"
	"hazard-watch/internal/core/service/process"
	"hazard-watch/internal/core/service/reconcile"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type testDeps struct {
	processing *process.MockProcessingService
	reconciler *reconcile.MockReconcilerService
	metadata   *metadata.MockMetadataStore
	identity   domain.Identity
	handler    http2.Handler
}

// newTestDeps wires the full router with a token middleware that resolves the
// fixed bearer token "valid-token" to alice's identity.
func newTestDeps() *testDeps {
	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	id := domain.Identity{UserID: uuid.New(), Username: "alice"}

	mockAuth := &auth.MockAuthService{}
	mockAuth.On("ValidateToken", "valid-token").Return(&id, nil)
	mockAuth.On("ValidateToken", mock.Anything).Return(nil, domain.ErrUnauthorized)

	deps := &testDeps{
		processing: &process.MockProcessingService{},
		reconciler: &reconcile.MockReconcilerService{},
		metadata:   metadata.NewMockMetadataStore(),
		identity:   id,
	}
	authHandler := auth2.NewAuthHandlerV1(mockAuth, discardLogger)
	videoHandler := video2.NewVideoHandlerV1(deps.processing, deps.reconciler, deps.metadata, 15*time.Minute, discardLogger)
	deps.handler = chi.NewRouter(discardLogger, mockAuth, authHandler, videoHandler, "test")
	return deps
}

func authed(req *http2.Request) *http2.Request {
	req.Header.Set("Authorization", "Bearer valid-token")
	return req
}

func multipartVideo(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("video", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUploadVideoV1(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		// Arrange
		deps := newTestDeps()
		videoID := uuid.New()
		result := &domain.ProcessResult{
			VideoID:        videoID,
			ArtifactKey:    "alice_20250115_093045_holiday.mp4",
			LogKey:         "alice_20250115_093045_holiday.mp4.json",
			Frames:         []domain.FrameDetection{{Frame: 0, Weapon: true}},
			FPS:            30,
			HazardDetected: true,
		}
		deps.processing.On("ProcessAndStore", mock.Anything, mock.Anything, "holiday.mp4", deps.identity).Return(result, nil)

		body, contentType := multipartVideo(t, "holiday.mp4", []byte("fake video bytes"))
		req := authed(httptest.NewRequest(http2.MethodPost, "/api/v1/video/upload", body))
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		// Act
		deps.handler.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusCreated, w.Code)

		var response video2.V1UploadVideoResponse
		err := json.NewDecoder(w.Body).Decode(&response)
		require.NoError(t, err)
		assert.Equal(t, videoID, response.VideoID)
		assert.Equal(t, "alice_20250115_093045_holiday.mp4", response.Key)
		assert.True(t, response.HazardDetected)
		assert.Equal(t, 1, response.Frames)
		assert.Equal(t, 30, response.FPS)
		deps.processing.AssertExpectations(t)
	})

	t.Run("error - missing bearer token", func(t *testing.T) {
		// Arrange
		deps := newTestDeps()
		body, contentType := multipartVideo(t, "holiday.mp4", []byte("fake"))
		req := httptest.NewRequest(http2.MethodPost, "/api/v1/video/upload", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		// Act
		deps.handler.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusUnauthorized, w.Code)
		deps.processing.AssertNotCalled(t, "ProcessAndStore", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("error - wrong extension", func(t *testing.T) {
		// Arrange
		deps := newTestDeps()
		body, contentType := multipartVideo(t, "holiday.avi", []byte("fake"))
		req := authed(httptest.NewRequest(http2.MethodPost, "/api/v1/video/upload", body))
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		// Act
		deps.handler.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusBadRequest, w.Code)
		deps.processing.AssertNotCalled(t, "ProcessAndStore", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("error - detector rejects media", func(t *testing.T) {
		// Arrange
		deps := newTestDeps()
		deps.processing.On("ProcessAndStore", mock.Anything, mock.Anything, "broken.mp4", deps.identity).Return(nil, domain.ErrInvalidMedia)

		body, contentType := multipartVideo(t, "broken.mp4", []byte("not a video"))
		req := authed(httptest.NewRequest(http2.MethodPost, "/api/v1/video/upload", body))
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		// Act
		deps.handler.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusUnprocessableEntity, w.Code)
	})

	t.Run("error - object store down", func(t *testing.T) {
		// Arrange
		deps := newTestDeps()
		deps.processing.On("ProcessAndStore", mock.Anything, mock.Anything, "holiday.mp4", deps.identity).Return(nil, domain.ErrStoreUnavailable)

		body, contentType := multipartVideo(t, "holiday.mp4", []byte("fake"))
		req := authed(httptest.NewRequest(http2.MethodPost, "/api/v1/video/upload", body))
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		// Act
		deps.handler.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusServiceUnavailable, w.Code)
	})
}

func TestListVideosV1(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		// Arrange
		deps := newTestDeps()
		records := []domain.VideoRecord{
			{ID: uuid.New(), S3Key: "alice_20250115_093045_holiday.mp4", Bucket: "videos", Status: domain.VideoStatusCompleted, HazardDetected: true},
			{ID: uuid.New(), S3Key: "alice_20250116_101500_cats.mp4", Bucket: "videos", Status: domain.VideoStatusPending},
		}
		deps.reconciler.On("ListVideos", mock.Anything, deps.identity.UserID).Return(records, nil)

		req := authed(httptest.NewRequest(http2.MethodGet, "/api/v1/video/", nil))
		w := httptest.NewRecorder()

		// Act
		deps.handler.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusOK, w.Code)

		var response []video2.V1VideoResponse
		err := json.NewDecoder(w.Body).Decode(&response)
		require.NoError(t, err)
		require.Len(t, response, 2)
		assert.Equal(t, "alice_20250115_093045_holiday.mp4", response[0].Key)
		assert.True(t, response[0].HazardDetected)
		assert.Equal(t, "pending", response[1].Status)
	})

	t.Run("success - empty list is an empty array", func(t *testing.T) {
		// Arrange
		deps := newTestDeps()
		deps.reconciler.On("ListVideos", mock.Anything, deps.identity.UserID).Return(nil, nil)

		req := authed(httptest.NewRequest(http2.MethodGet, "/api/v1/video/", nil))
		w := httptest.NewRecorder()

		// Act
		deps.handler.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusOK, w.Code)
		assert.Equal(t, "[]\n", w.Body.String())
	})
}

func TestGetVideoURLV1(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		// Arrange
		deps := newTestDeps()
		key := "alice_20250115_093045_holiday.mp4"
		deps.reconciler.On("VideoURL", mock.Anything, key, 15*time.Minute, deps.identity).
			Return("https://minio.local/videos/"+key+"?signed", nil)

		req := authed(httptest.NewRequest(http2.MethodGet, "/api/v1/video/"+key+"/url", nil))
		w := httptest.NewRecorder()

		// Act
		deps.handler.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusOK, w.Code)

		var response video2.V1VideoURLResponse
		err := json.NewDecoder(w.Body).Decode(&response)
		require.NoError(t, err)
		assert.Contains(t, response.URL, key)
	})

	t.Run("error - foreign video reads as missing", func(t *testing.T) {
		// Arrange
		deps := newTestDeps()
		key := "bob_20250115_093045_secret.mp4"
		deps.reconciler.On("VideoURL", mock.Anything, key, 15*time.Minute, deps.identity).
			Return("", domain.ErrUnauthorized)

		req := authed(httptest.NewRequest(http2.MethodGet, "/api/v1/video/"+key+"/url", nil))
		w := httptest.NewRecorder()

		// Act
		deps.handler.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusNotFound, w.Code)
	})
}

func TestRenameVideoV1(t *testing.T) {
	key := "alice_20250115_093045_holiday.mp4"
	newKey := "alice_20250115_093045_summer.mp4"

	t.Run("success", func(t *testing.T) {
		// Arrange
		deps := newTestDeps()
		deps.reconciler.On("Rename", mock.Anything, key, "summer", deps.identity).Return(newKey, nil)

		req := authed(httptest.NewRequest(http2.MethodPatch, "/api/v1/video/"+key, strings.NewReader(`{"new_name":"summer"}`)))
		w := httptest.NewRecorder()

		// Act
		deps.handler.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusOK, w.Code)

		var response video2.V1RenameVideoResponse
		err := json.NewDecoder(w.Body).Decode(&response)
		require.NoError(t, err)
		assert.Equal(t, newKey, response.Key)
	})

	t.Run("accepted - metadata renamed but objects lag", func(t *testing.T) {
		// Arrange
		deps := newTestDeps()
		deps.reconciler.On("Rename", mock.Anything, key, "summer", deps.identity).
			Return(newKey, domain.ErrPartialFailure)

		req := authed(httptest.NewRequest(http2.MethodPatch, "/api/v1/video/"+key, strings.NewReader(`{"new_name":"summer"}`)))
		w := httptest.NewRecorder()

		// Act
		deps.handler.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusAccepted, w.Code)

		var response video2.V1RenameVideoResponse
		err := json.NewDecoder(w.Body).Decode(&response)
		require.NoError(t, err)
		assert.Equal(t, newKey, response.Key)
	})

	t.Run("error - target name taken", func(t *testing.T) {
		// Arrange
		deps := newTestDeps()
		deps.reconciler.On("Rename", mock.Anything, key, "summer", deps.identity).
			Return("", domain.ErrDuplicateKey)

		req := authed(httptest.NewRequest(http2.MethodPatch, "/api/v1/video/"+key, strings.NewReader(`{"new_name":"summer"}`)))
		w := httptest.NewRecorder()

		// Act
		deps.handler.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusConflict, w.Code)
	})

	t.Run("error - empty new name", func(t *testing.T) {
		// Arrange
		deps := newTestDeps()

		req := authed(httptest.NewRequest(http2.MethodPatch, "/api/v1/video/"+key, strings.NewReader(`{"new_name":""}`)))
		w := httptest.NewRecorder()

		// Act
		deps.handler.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusBadRequest, w.Code)
		deps.reconciler.AssertNotCalled(t, "Rename", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDeleteVideoV1(t *testing.T) {
	key := "alice_20250115_093045_holiday.mp4"

	t.Run("success", func(t *testing.T) {
		// Arrange
		deps := newTestDeps()
		deps.reconciler.On("Delete", mock.Anything, key, deps.identity).
			Return(domain.DeleteOutcome{MetadataRemoved: true, ObjectsRemoved: true}, nil)

		req := authed(httptest.NewRequest(http2.MethodDelete, "/api/v1/video/"+key, nil))
		w := httptest.NewRecorder()

		// Act
		deps.handler.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusOK, w.Code)

		var response video2.V1DeleteVideoResponse
		err := json.NewDecoder(w.Body).Decode(&response)
		require.NoError(t, err)
		assert.True(t, response.MetadataRemoved)
		assert.True(t, response.ObjectsRemoved)
	})

	t.Run("accepted - objects survived the delete", func(t *testing.T) {
		// Arrange
		deps := newTestDeps()
		deps.reconciler.On("Delete", mock.Anything, key, deps.identity).
			Return(domain.DeleteOutcome{MetadataRemoved: true, ObjectsRemoved: false}, domain.ErrPartialFailure)

		req := authed(httptest.NewRequest(http2.MethodDelete, "/api/v1/video/"+key, nil))
		w := httptest.NewRecorder()

		// Act
		deps.handler.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusAccepted, w.Code)

		var response video2.V1DeleteVideoResponse
		err := json.NewDecoder(w.Body).Decode(&response)
		require.NoError(t, err)
		assert.True(t, response.MetadataRemoved)
		assert.False(t, response.ObjectsRemoved)
	})

	t.Run("error - foreign video reads as missing", func(t *testing.T) {
		// Arrange
		deps := newTestDeps()
		deps.reconciler.On("Delete", mock.Anything, "bob_20250115_093045_secret.mp4", deps.identity).
			Return(domain.DeleteOutcome{}, domain.ErrUnauthorized)

		req := authed(httptest.NewRequest(http2.MethodDelete, "/api/v1/video/bob_20250115_093045_secret.mp4", nil))
		w := httptest.NewRecorder()

		// Act
		deps.handler.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusNotFound, w.Code)
	})
}

func TestListActionsV1(t *testing.T) {
	t.Run("success - limit defaults to 50", func(t *testing.T) {
		// Arrange
		deps := newTestDeps()
		videoID := uuid.New()
		entries := []domain.ActionLogEntry{
			{ID: 2, UserID: deps.identity.UserID, Action: domain.ActionRename, VideoID: &videoID},
			{ID: 1, UserID: deps.identity.UserID, Action: domain.ActionUpload, VideoID: &videoID},
		}
		deps.metadata.On("GetUserLogs", mock.Anything, deps.identity.UserID, 50).Return(entries, nil)

		req := authed(httptest.NewRequest(http2.MethodGet, "/api/v1/video/actions", nil))
		w := httptest.NewRecorder()

		// Act
		deps.handler.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusOK, w.Code)
		deps.metadata.AssertExpectations(t)
	})

	t.Run("success - explicit limit", func(t *testing.T) {
		// Arrange
		deps := newTestDeps()
		deps.metadata.On("GetUserLogs", mock.Anything, deps.identity.UserID, 10).Return(nil, nil)

		req := authed(httptest.NewRequest(http2.MethodGet, "/api/v1/video/actions?limit=10", nil))
		w := httptest.NewRecorder()

		// Act
		deps.handler.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusOK, w.Code)
		deps.metadata.AssertExpectations(t)
	})
}

func TestGetDetectionLogV1(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		// Arrange
		deps := newTestDeps()
		key := "alice_20250115_093045_holiday.mp4"
		frames := []domain.FrameDetection{{Frame: 0}, {Frame: 1, Knife: true}}
		deps.reconciler.On("DetectionLog", mock.Anything, key, deps.identity).Return(frames, nil)

		req := authed(httptest.NewRequest(http2.MethodGet, "/api/v1/video/"+key+"/log", nil))
		w := httptest.NewRecorder()

		// Act
		deps.handler.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusOK, w.Code)
		assert.JSONEq(t, `[[0,false,false],[1,false,true]]`, strings.TrimSpace(w.Body.String()))
	})

	t.Run("error - log missing", func(t *testing.T) {
		// Arrange
		deps := newTestDeps()
		key := "alice_20250115_093045_holiday.mp4"
		deps.reconciler.On("DetectionLog", mock.Anything, key, deps.identity).
			Return(nil, domain.ErrDetectionLogNotFound)

		req := authed(httptest.NewRequest(http2.MethodGet, "/api/v1/video/"+key+"/log", nil))
		w := httptest.NewRecorder()

		// Act
		deps.handler.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusNotFound, w.Code)
	})
}
