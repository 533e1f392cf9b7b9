package reconcile

import (
	"context"
	"time"

	"hazard-watch/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockReconcilerService struct {
	mock.Mock
}

func (m *MockReconcilerService) Lookup(ctx context.Context, key string) (*domain.VideoRecord, error) {
	args := m.Called(ctx, key)
	var record *domain.VideoRecord
	if args.Get(0) != nil {
		record = args.Get(0).(*domain.VideoRecord)
	}
	return record, args.Error(1)
}

func (m *MockReconcilerService) ListVideos(ctx context.Context, userID uuid.UUID) ([]domain.VideoRecord, error) {
	args := m.Called(ctx, userID)
	var records []domain.VideoRecord
	if args.Get(0) != nil {
		records = args.Get(0).([]domain.VideoRecord)
	}
	return records, args.Error(1)
}

func (m *MockReconcilerService) VideoURL(ctx context.Context, key string, ttl time.Duration, id domain.Identity) (string, error) {
	args := m.Called(ctx, key, ttl, id)
	return args.String(0), args.Error(1)
}

func (m *MockReconcilerService) DetectionLog(ctx context.Context, key string, id domain.Identity) ([]domain.FrameDetection, error) {
	args := m.Called(ctx, key, id)
	var frames []domain.FrameDetection
	if args.Get(0) != nil {
		frames = args.Get(0).([]domain.FrameDetection)
	}
	return frames, args.Error(1)
}

func (m *MockReconcilerService) Rename(ctx context.Context, key, newName string, id domain.Identity) (string, error) {
	args := m.Called(ctx, key, newName, id)
	return args.String(0), args.Error(1)
}

func (m *MockReconcilerService) Delete(ctx context.Context, key string, id domain.Identity) (domain.DeleteOutcome, error) {
	args := m.Called(ctx, key, id)
	return args.Get(0).(domain.DeleteOutcome), args.Error(1)
}

func (m *MockReconcilerService) BackfillUser(ctx context.Context, username string) (int, error) {
	args := m.Called(ctx, username)
	return args.Int(0), args.Error(1)
}

func (m *MockReconcilerService) BackfillObject(ctx context.Context, bucket, key string) error {
	args := m.Called(ctx, bucket, key)
	return args.Error(0)
}
