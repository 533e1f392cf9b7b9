package metadata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"hazard-watch/internal/core/domain"
	"hazard-watch/internal/core/port"

	"github.com/google/uuid"
)

type metadataService struct {
	uow       port.UnitOfWork
	logBucket string
	logger    *slog.Logger
}

// NewMetadataService creates the transactional metadata store backed by a unit
// of work. Detection result rows record logBucket as their object namespace.
func NewMetadataService(uow port.UnitOfWork, logBucket string, logger *slog.Logger) port.MetadataStore {
	return &metadataService{uow: uow, logBucket: logBucket, logger: logger}
}

// domainSentinels are errors the caller is expected to branch on; everything
// else coming out of the store is a connection or transaction failure.
var domainSentinels = []error{
	domain.ErrUserNotFound,
	domain.ErrVideoNotFound,
	domain.ErrDetectionLogNotFound,
	domain.ErrDuplicateUsername,
	domain.ErrDuplicateKey,
	domain.ErrUnauthorized,
}

func wrapUnavailable(err error) error {
	if err == nil {
		return nil
	}
	for _, sentinel := range domainSentinels {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrMetadataUnavailable, err)
}

// CreateUser inserts a new user row
func (m *metadataService) CreateUser(ctx context.Context, username, passwordHash string, role domain.Role) (uuid.UUID, error) {
	userID := uuid.New()
	if err := m.uow.UserRepo().Create(ctx, userID, username, passwordHash, role); err != nil {
		return uuid.Nil, wrapUnavailable(err)
	}
	m.logger.Info("user created", "username", username, "user_id", userID)
	return userID, nil
}

// GetUserByUsername finds a user by its unique username
func (m *metadataService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := m.uow.UserRepo().FindByUsername(ctx, username)
	if err != nil {
		return nil, wrapUnavailable(err)
	}
	return user, nil
}

// ListUsernames returns every registered username, for the reconciliation sweep
func (m *metadataService) ListUsernames(ctx context.Context) ([]string, error) {
	users, err := m.uow.UserRepo().List(ctx)
	if err != nil {
		return nil, wrapUnavailable(err)
	}
	usernames := make([]string, 0, len(users))
	for _, user := range users {
		usernames = append(usernames, user.Username)
	}
	return usernames, nil
}

// SaveVideoMetadata inserts a video record mapping a logical video to its
// object store location
func (m *metadataService) SaveVideoMetadata(ctx context.Context, userID uuid.UUID, s3Key, bucket string, metadata map[string]string, status domain.VideoStatus) (uuid.UUID, error) {
	videoID := uuid.New()
	if err := m.uow.VideoRepo().Create(ctx, videoID, userID, s3Key, bucket, metadata, status); err != nil {
		return uuid.Nil, wrapUnavailable(err)
	}
	m.logger.Info("video metadata saved", "s3_key", s3Key, "video_id", videoID)
	return videoID, nil
}

// GetUserVideos returns a user's records with the hazard flag, newest first
func (m *metadataService) GetUserVideos(ctx context.Context, userID uuid.UUID) ([]domain.VideoRecord, error) {
	records, err := m.uow.VideoRepo().ListByUser(ctx, userID)
	if err != nil {
		return nil, wrapUnavailable(err)
	}
	return records, nil
}

// GetVideoByKey finds a record by its unique object store key
func (m *metadataService) GetVideoByKey(ctx context.Context, s3Key string) (*domain.VideoRecord, error) {
	record, err := m.uow.VideoRepo().FindByKey(ctx, s3Key)
	if err != nil {
		return nil, wrapUnavailable(err)
	}
	return record, nil
}

// GetUserLogs returns a user's audit trail
func (m *metadataService) GetUserLogs(ctx context.Context, userID uuid.UUID, limit int) ([]domain.ActionLogEntry, error) {
	entries, err := m.uow.ActionLogRepo().ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, wrapUnavailable(err)
	}
	return entries, nil
}

// AppendActionLog is fire-and-forget: a failed audit write is logged but never
// aborts the caller's primary operation
func (m *metadataService) AppendActionLog(ctx context.Context, userID uuid.UUID, action domain.ActionKind, videoID *uuid.UUID, details map[string]string) {
	if err := m.uow.ActionLogRepo().Append(ctx, userID, action, videoID, details); err != nil {
		m.logger.Error("failed to append action log", "action", action, "user_id", userID, "error", err)
	}
}
