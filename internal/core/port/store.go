package port

import (
	"context"
	"hazard-watch/internal/core/domain"
	"time"
)

// ObjectStore is an interface to define object store interactions. Artifacts
// live in the video bucket, serialized detection logs in the log bucket.
type ObjectStore interface {
	PutArtifact(ctx context.Context, localPath, objectKey string, metadata map[string]string) error
	PutLog(ctx context.Context, objectKey string, frames []domain.FrameDetection, metadata map[string]string) error
	GetLog(ctx context.Context, objectKey string) ([]domain.FrameDetection, error)
	StatExists(ctx context.Context, bucket, objectKey string) (bool, error)
	CopyThenDelete(ctx context.Context, bucket, sourceKey, targetKey string) error
	RemoveObjects(ctx context.Context, videoKey, logKey string) error
	PresignedURL(ctx context.Context, objectKey string, ttl time.Duration) (string, error)
	ListByPrefix(ctx context.Context, bucket, prefix string) <-chan domain.ObjectStat
	VideoBucket() string
	LogBucket() string
}
