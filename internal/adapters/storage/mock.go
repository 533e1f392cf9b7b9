package storage

import (
	"context"
	"time"

	"hazard-watch/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type MockObjectStore struct {
	mock.Mock
}

func NewMockObjectStore() *MockObjectStore {
	return &MockObjectStore{}
}

func (m *MockObjectStore) PutArtifact(ctx context.Context, localPath, objectKey string, metadata map[string]string) error {
	args := m.Called(ctx, localPath, objectKey, metadata)
	return args.Error(0)
}

func (m *MockObjectStore) PutLog(ctx context.Context, objectKey string, frames []domain.FrameDetection, metadata map[string]string) error {
	args := m.Called(ctx, objectKey, frames, metadata)
	return args.Error(0)
}

func (m *MockObjectStore) GetLog(ctx context.Context, objectKey string) ([]domain.FrameDetection, error) {
	args := m.Called(ctx, objectKey)
	var frames []domain.FrameDetection
	if args.Get(0) != nil {
		frames = args.Get(0).([]domain.FrameDetection)
	}
	return frames, args.Error(1)
}

func (m *MockObjectStore) StatExists(ctx context.Context, bucket, objectKey string) (bool, error) {
	args := m.Called(ctx, bucket, objectKey)
	return args.Bool(0), args.Error(1)
}

func (m *MockObjectStore) CopyThenDelete(ctx context.Context, bucket, sourceKey, targetKey string) error {
	args := m.Called(ctx, bucket, sourceKey, targetKey)
	return args.Error(0)
}

func (m *MockObjectStore) RemoveObjects(ctx context.Context, videoKey, logKey string) error {
	args := m.Called(ctx, videoKey, logKey)
	return args.Error(0)
}

func (m *MockObjectStore) PresignedURL(ctx context.Context, objectKey string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, objectKey, ttl)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStore) ListByPrefix(ctx context.Context, bucket, prefix string) <-chan domain.ObjectStat {
	args := m.Called(ctx, bucket, prefix)
	return args.Get(0).(<-chan domain.ObjectStat)
}

func (m *MockObjectStore) VideoBucket() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockObjectStore) LogBucket() string {
	args := m.Called()
	return args.String(0)
}
