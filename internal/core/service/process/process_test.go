package process_test

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"hazard-watch/internal/adapters/storage"
	"hazard-watch/internal/config"
	"hazard-watch/internal/core/domain"
	"hazard-watch/internal/core/service/metadata"
	"hazard-watch/internal/core/service/process"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testDetectorConfig() config.DetectorConfig {
	return config.DetectorConfig{Endpoint: "http://detector:8000", ConfidenceThreshold: 0.6}
}

func TestProcessingService_ProcessAndStore_Nominal(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockStore := storage.NewMockObjectStore()
	mockMeta := metadata.NewMockMetadataStore()
	mockDetector := &process.MockDetector{}
	service := process.NewProcessingService(mockStore, mockMeta, mockDetector, testDetectorConfig(), slog.Default())

	id := domain.Identity{UserID: uuid.New(), Username: "alice"}
	videoID := uuid.New()
	report := &domain.DetectionReport{
		Frames: []domain.FrameDetection{
			{Frame: 0},
			{Frame: 1, Weapon: true},
			{Frame: 2, Knife: true},
		},
		FPS:    30,
		Width:  1280,
		Height: 720,
	}

	keyMatch := func(key string) bool {
		return strings.HasPrefix(key, "alice_") && strings.HasSuffix(key, "_holiday.mp4")
	}
	logKeyMatch := func(key string) bool {
		return strings.HasPrefix(key, "alice_") && strings.HasSuffix(key, "_holiday.mp4.json")
	}

	mockDetector.On("Detect", ctx, "/tmp/staged.mp4", 0.6).Return(report, nil)
	mockStore.On("PutArtifact", ctx, "/tmp/staged.mp4", mock.MatchedBy(keyMatch), mock.MatchedBy(func(meta map[string]string) bool {
		return meta[domain.MetaUsername] == "alice" &&
			meta[domain.MetaOriginalFilename] == "holiday.mp4" &&
			meta[domain.MetaFPS] == "30"
	})).Return(nil)
	mockStore.On("PutLog", ctx, mock.MatchedBy(logKeyMatch), report.Frames, mock.Anything).Return(nil)
	mockStore.On("VideoBucket").Return("videos")
	mockMeta.On("SaveVideoMetadata", ctx, id.UserID, mock.MatchedBy(keyMatch), "videos", mock.Anything, domain.VideoStatusPending).Return(videoID, nil)
	mockMeta.On("SaveDetectionResult", ctx, videoID, mock.MatchedBy(logKeyMatch), true, domain.DetectionSummary{TotalFrames: 3, HazardFrames: 2}).Return(nil)
	mockMeta.On("AppendActionLog", ctx, id.UserID, domain.ActionUpload, &videoID, map[string]string(nil)).Return()

	// Act
	result, err := service.ProcessAndStore(ctx, "/tmp/staged.mp4", "holiday.mp4", id)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, videoID, result.VideoID)
	assert.True(t, result.HazardDetected)
	assert.Equal(t, result.ArtifactKey+".json", result.LogKey)
	assert.Len(t, result.Frames, 3)
	mockStore.AssertExpectations(t)
	mockMeta.AssertExpectations(t)
	mockDetector.AssertExpectations(t)
}

func TestProcessingService_ProcessAndStore_DetectorRejectsMedia(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockStore := storage.NewMockObjectStore()
	mockMeta := metadata.NewMockMetadataStore()
	mockDetector := &process.MockDetector{}
	service := process.NewProcessingService(mockStore, mockMeta, mockDetector, testDetectorConfig(), slog.Default())

	id := domain.Identity{UserID: uuid.New(), Username: "alice"}
	mockDetector.On("Detect", ctx, "/tmp/staged.mp4", 0.6).Return(nil, domain.ErrInvalidMedia)

	// Act
	result, err := service.ProcessAndStore(ctx, "/tmp/staged.mp4", "holiday.mp4", id)

	// Assert
	assert.ErrorIs(t, err, domain.ErrInvalidMedia)
	assert.Nil(t, result)
	mockStore.AssertNotCalled(t, "PutArtifact", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessingService_ProcessAndStore_ArtifactWriteFails(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockStore := storage.NewMockObjectStore()
	mockMeta := metadata.NewMockMetadataStore()
	mockDetector := &process.MockDetector{}
	service := process.NewProcessingService(mockStore, mockMeta, mockDetector, testDetectorConfig(), slog.Default())

	id := domain.Identity{UserID: uuid.New(), Username: "alice"}
	report := &domain.DetectionReport{Frames: []domain.FrameDetection{{Frame: 0}}, FPS: 30}

	mockDetector.On("Detect", ctx, "/tmp/staged.mp4", 0.6).Return(report, nil)
	mockStore.On("PutArtifact", ctx, "/tmp/staged.mp4", mock.Anything, mock.Anything).Return(domain.ErrStoreUnavailable)

	// Act
	result, err := service.ProcessAndStore(ctx, "/tmp/staged.mp4", "holiday.mp4", id)

	// Assert
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Nil(t, result)
	mockMeta.AssertNotCalled(t, "SaveVideoMetadata", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessingService_ProcessAndStore_MetadataDownKeepsArtifact(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockStore := storage.NewMockObjectStore()
	mockMeta := metadata.NewMockMetadataStore()
	mockDetector := &process.MockDetector{}
	service := process.NewProcessingService(mockStore, mockMeta, mockDetector, testDetectorConfig(), slog.Default())

	id := domain.Identity{UserID: uuid.New(), Username: "alice"}
	report := &domain.DetectionReport{Frames: []domain.FrameDetection{{Frame: 0, Weapon: true}}, FPS: 30}

	mockDetector.On("Detect", ctx, "/tmp/staged.mp4", 0.6).Return(report, nil)
	mockStore.On("PutArtifact", ctx, "/tmp/staged.mp4", mock.Anything, mock.Anything).Return(nil)
	mockStore.On("PutLog", ctx, mock.Anything, report.Frames, mock.Anything).Return(nil)
	mockStore.On("VideoBucket").Return("videos")
	mockMeta.On("SaveVideoMetadata", ctx, id.UserID, mock.Anything, "videos", mock.Anything, domain.VideoStatusPending).Return(uuid.Nil, domain.ErrMetadataUnavailable)

	// Act
	result, err := service.ProcessAndStore(ctx, "/tmp/staged.mp4", "holiday.mp4", id)

	// Assert
	assert.ErrorIs(t, err, domain.ErrMetadataUnavailable)
	assert.Nil(t, result)
	// The object store writes happened; nothing attempts to undo them
	mockStore.AssertCalled(t, "PutArtifact", ctx, "/tmp/staged.mp4", mock.Anything, mock.Anything)
	mockStore.AssertNotCalled(t, "RemoveObjects", mock.Anything, mock.Anything, mock.Anything)
	mockMeta.AssertNotCalled(t, "SaveDetectionResult", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
