package port

import (
	"context"
	"hazard-watch/internal/core/domain"

	"github.com/google/uuid"
)

// UserRepository is an interface to define user row interactions
type UserRepository interface {
	Create(ctx context.Context, id uuid.UUID, username, passwordHash string, role domain.Role) error
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

// VideoRepository is an interface to define video row interactions
type VideoRepository interface {
	Create(ctx context.Context, id, userID uuid.UUID, s3Key, bucket string, metadata map[string]string, status domain.VideoStatus) error
	FindByKey(ctx context.Context, s3Key string) (*domain.VideoRecord, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.VideoRecord, error)
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*domain.VideoRecord, error)
	UpdateKey(ctx context.Context, id uuid.UUID, newS3Key string) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.VideoStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.VideoRecord, error)
}

// DetectionRepository is an interface to define detection result row interactions
type DetectionRepository interface {
	Create(ctx context.Context, result domain.DetectionResult) error
	FindByVideoID(ctx context.Context, videoID uuid.UUID) (*domain.DetectionResult, error)
	UpdateKey(ctx context.Context, videoID uuid.UUID, newS3Key string) error
}

// ActionLogRepository is an interface to define audit log interactions.
// Entries are append-only.
type ActionLogRepository interface {
	Append(ctx context.Context, userID uuid.UUID, action domain.ActionKind, videoID *uuid.UUID, details map[string]string) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.ActionLogEntry, error)
}

// UnitOfWork is a pattern that allows to run transactions across different repositories
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(uow UnitOfWork) error) error
	UserRepo() UserRepository
	VideoRepo() VideoRepository
	DetectionRepo() DetectionRepository
	ActionLogRepo() ActionLogRepository
}
