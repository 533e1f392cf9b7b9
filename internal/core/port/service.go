package port

import (
	"context"
	"hazard-watch/internal/core/domain"
	"time"

	"github.com/google/uuid"
)

// Detector is the external object-detection collaborator
type Detector interface {
	Detect(ctx context.Context, localPath string, confidence float64) (*domain.DetectionReport, error)
}

// ProcessingService runs one video through detection and persists the outcome
// across both backends
type ProcessingService interface {
	ProcessAndStore(ctx context.Context, localPath, originalName string, id domain.Identity) (*domain.ProcessResult, error)
}

// ReconcilerService implements the cross-backend operations that are not
// natively atomic, plus lookups that fall back to the object store
type ReconcilerService interface {
	Lookup(ctx context.Context, key string) (*domain.VideoRecord, error)
	ListVideos(ctx context.Context, userID uuid.UUID) ([]domain.VideoRecord, error)
	VideoURL(ctx context.Context, key string, ttl time.Duration, id domain.Identity) (string, error)
	DetectionLog(ctx context.Context, key string, id domain.Identity) ([]domain.FrameDetection, error)
	Rename(ctx context.Context, key, newName string, id domain.Identity) (string, error)
	Delete(ctx context.Context, key string, id domain.Identity) (domain.DeleteOutcome, error)
	BackfillUser(ctx context.Context, username string) (int, error)
	BackfillObject(ctx context.Context, bucket, key string) error
}

// AuthService issues and validates credentials
type AuthService interface {
	Register(ctx context.Context, username, password string) (string, error)
	Authenticate(ctx context.Context, username, password string) (string, error)
	ValidateToken(token string) (*domain.Identity, error)
}

// EventConsumer is an interface to define an event consumer (nats, kafka, ...)
type EventConsumer interface {
	Subscribe(ctx context.Context, handler MessageService) error
	Close() error
}

// MessageService is an interface to define message handling
type MessageService interface {
	HandleMessage(ctx context.Context, data []byte) error
}
