package port

import (
	"context"
	"hazard-watch/internal/core/domain"

	"github.com/google/uuid"
)

// MetadataStore is an interface to define transactional bookkeeping of video,
// detection, user and audit rows. Multi-statement operations are all-or-nothing.
type MetadataStore interface {
	CreateUser(ctx context.Context, username, passwordHash string, role domain.Role) (uuid.UUID, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	ListUsernames(ctx context.Context) ([]string, error)
	SaveVideoMetadata(ctx context.Context, userID uuid.UUID, s3Key, bucket string, metadata map[string]string, status domain.VideoStatus) (uuid.UUID, error)
	RenameVideo(ctx context.Context, videoID, userID uuid.UUID, newS3Key string) error
	DeleteVideo(ctx context.Context, videoID, userID uuid.UUID) (*domain.VideoRecord, error)
	SaveDetectionResult(ctx context.Context, videoID uuid.UUID, logKey string, hazardDetected bool, summary domain.DetectionSummary) error
	GetUserVideos(ctx context.Context, userID uuid.UUID) ([]domain.VideoRecord, error)
	GetVideoByKey(ctx context.Context, s3Key string) (*domain.VideoRecord, error)
	GetUserLogs(ctx context.Context, userID uuid.UUID, limit int) ([]domain.ActionLogEntry, error)
	// AppendActionLog is fire-and-forget: failures are logged, never surfaced.
	AppendActionLog(ctx context.Context, userID uuid.UUID, action domain.ActionKind, videoID *uuid.UUID, details map[string]string)
}
