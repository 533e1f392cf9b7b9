package metadata

import (
	"context"

	"hazard-watch/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockMetadataStore is a mock implementation of port.MetadataStore
type MockMetadataStore struct {
	mock.Mock
}

// NewMockMetadataStore creates a new MockMetadataStore
func NewMockMetadataStore() *MockMetadataStore {
	return &MockMetadataStore{}
}

func (m *MockMetadataStore) CreateUser(ctx context.Context, username, passwordHash string, role domain.Role) (uuid.UUID, error) {
	args := m.Called(ctx, username, passwordHash, role)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockMetadataStore) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockMetadataStore) ListUsernames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	var usernames []string
	if args.Get(0) != nil {
		usernames = args.Get(0).([]string)
	}
	return usernames, args.Error(1)
}

func (m *MockMetadataStore) SaveVideoMetadata(ctx context.Context, userID uuid.UUID, s3Key, bucket string, metadata map[string]string, status domain.VideoStatus) (uuid.UUID, error) {
	args := m.Called(ctx, userID, s3Key, bucket, metadata, status)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockMetadataStore) RenameVideo(ctx context.Context, videoID, userID uuid.UUID, newS3Key string) error {
	args := m.Called(ctx, videoID, userID, newS3Key)
	return args.Error(0)
}

func (m *MockMetadataStore) DeleteVideo(ctx context.Context, videoID, userID uuid.UUID) (*domain.VideoRecord, error) {
	args := m.Called(ctx, videoID, userID)
	var record *domain.VideoRecord
	if args.Get(0) != nil {
		record = args.Get(0).(*domain.VideoRecord)
	}
	return record, args.Error(1)
}

func (m *MockMetadataStore) SaveDetectionResult(ctx context.Context, videoID uuid.UUID, logKey string, hazardDetected bool, summary domain.DetectionSummary) error {
	args := m.Called(ctx, videoID, logKey, hazardDetected, summary)
	return args.Error(0)
}

func (m *MockMetadataStore) GetUserVideos(ctx context.Context, userID uuid.UUID) ([]domain.VideoRecord, error) {
	args := m.Called(ctx, userID)
	var records []domain.VideoRecord
	if args.Get(0) != nil {
		records = args.Get(0).([]domain.VideoRecord)
	}
	return records, args.Error(1)
}

func (m *MockMetadataStore) GetVideoByKey(ctx context.Context, s3Key string) (*domain.VideoRecord, error) {
	args := m.Called(ctx, s3Key)
	var record *domain.VideoRecord
	if args.Get(0) != nil {
		record = args.Get(0).(*domain.VideoRecord)
	}
	return record, args.Error(1)
}

func (m *MockMetadataStore) GetUserLogs(ctx context.Context, userID uuid.UUID, limit int) ([]domain.ActionLogEntry, error) {
	args := m.Called(ctx, userID, limit)
	var entries []domain.ActionLogEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.ActionLogEntry)
	}
	return entries, args.Error(1)
}

func (m *MockMetadataStore) AppendActionLog(ctx context.Context, userID uuid.UUID, action domain.ActionKind, videoID *uuid.UUID, details map[string]string) {
	m.Called(ctx, userID, action, videoID, details)
}
