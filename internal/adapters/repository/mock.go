package repository

import (
	"context"

	"hazard-watch/internal/core/domain"
	"hazard-watch/internal/core/port"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, id uuid.UUID, username, passwordHash string, role domain.Role) error {
	args := m.Called(ctx, id, username, passwordHash, role)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

type MockVideoRepository struct {
	mock.Mock
}

func (m *MockVideoRepository) Create(ctx context.Context, id, userID uuid.UUID, s3Key, bucket string, metadata map[string]string, status domain.VideoStatus) error {
	args := m.Called(ctx, id, userID, s3Key, bucket, metadata, status)
	return args.Error(0)
}

func (m *MockVideoRepository) FindByKey(ctx context.Context, s3Key string) (*domain.VideoRecord, error) {
	args := m.Called(ctx, s3Key)
	return args.Get(0).(*domain.VideoRecord), args.Error(1)
}

func (m *MockVideoRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.VideoRecord, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.VideoRecord), args.Error(1)
}

func (m *MockVideoRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*domain.VideoRecord, error) {
	args := m.Called(ctx, id, userID)
	return args.Get(0).(*domain.VideoRecord), args.Error(1)
}

func (m *MockVideoRepository) UpdateKey(ctx context.Context, id uuid.UUID, newS3Key string) error {
	args := m.Called(ctx, id, newS3Key)
	return args.Error(0)
}

func (m *MockVideoRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.VideoStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockVideoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVideoRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.VideoRecord, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.VideoRecord), args.Error(1)
}

type MockDetectionRepository struct {
	mock.Mock
}

func (m *MockDetectionRepository) Create(ctx context.Context, result domain.DetectionResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockDetectionRepository) UpdateKey(ctx context.Context, videoID uuid.UUID, newS3Key string) error {
	args := m.Called(ctx, videoID, newS3Key)
	return args.Error(0)
}

func (m *MockDetectionRepository) FindByVideoID(ctx context.Context, videoID uuid.UUID) (*domain.DetectionResult, error) {
	args := m.Called(ctx, videoID)
	return args.Get(0).(*domain.DetectionResult), args.Error(1)
}

type MockActionLogRepository struct {
	mock.Mock
}

func (m *MockActionLogRepository) Append(ctx context.Context, userID uuid.UUID, action domain.ActionKind, videoID *uuid.UUID, details map[string]string) error {
	args := m.Called(ctx, userID, action, videoID, details)
	return args.Error(0)
}

func (m *MockActionLogRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.ActionLogEntry, error) {
	args := m.Called(ctx, userID, limit)
	return args.Get(0).([]domain.ActionLogEntry), args.Error(1)
}

type MockUnitOfWork struct {
	mock.Mock
	userRepo      *MockUserRepository
	videoRepo     *MockVideoRepository
	detectionRepo *MockDetectionRepository
	actionLogRepo *MockActionLogRepository
}

func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		userRepo:      &MockUserRepository{},
		videoRepo:     &MockVideoRepository{},
		detectionRepo: &MockDetectionRepository{},
		actionLogRepo: &MockActionLogRepository{},
	}
}

func (m *MockUnitOfWork) UserRepo() port.UserRepository {
	return m.userRepo
}

func (m *MockUnitOfWork) VideoRepo() port.VideoRepository {
	return m.videoRepo
}

func (m *MockUnitOfWork) DetectionRepo() port.DetectionRepository {
	return m.detectionRepo
}

func (m *MockUnitOfWork) ActionLogRepo() port.ActionLogRepository {
	return m.actionLogRepo
}

func (m *MockUnitOfWork) Execute(ctx context.Context, fn func(uow port.UnitOfWork) error) error {
	args := m.Called(ctx, fn)

	if err := fn(m); err != nil {
		return err
	}

	return args.Error(0)
}

func (m *MockUnitOfWork) GetUserRepoMock() *MockUserRepository {
	return m.userRepo
}

func (m *MockUnitOfWork) GetVideoRepoMock() *MockVideoRepository {
	return m.videoRepo
}

func (m *MockUnitOfWork) GetDetectionRepoMock() *MockDetectionRepository {
	return m.detectionRepo
}

func (m *MockUnitOfWork) GetActionLogRepoMock() *MockActionLogRepository {
	return m.actionLogRepo
}
