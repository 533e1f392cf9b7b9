package reconcile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"hazard-watch/internal/core/domain"
	"hazard-watch/internal/core/port"
)

type messageService struct {
	reconciler port.ReconcilerService
	logger     *slog.Logger
}

// NewMessageService creates the broker-facing handler that feeds bucket
// notifications into the reconciler
func NewMessageService(reconciler port.ReconcilerService, logger *slog.Logger) port.MessageService {
	return &messageService{
		reconciler: reconciler,
		logger:     logger,
	}
}

// HandleMessage parses one bucket notification and adopts any created object.
// Non-create events are acknowledged and dropped.
func (s *messageService) HandleMessage(ctx context.Context, data []byte) error {
	var event domain.BucketEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("unmarshal bucket event: %w", err)
	}

	for _, record := range event.Records {
		if !strings.HasPrefix(record.EventName, "s3:ObjectCreated") {
			continue
		}

		// MinIO URL-encodes object keys in notifications
		key, err := url.QueryUnescape(record.S3.Object.Key)
		if err != nil {
			s.logger.Warn("undecodable object key in event", "key", record.S3.Object.Key, "error", err)
			continue
		}

		s.logger.Info("bucket event received", "event", record.EventName, "bucket", record.S3.Bucket.Name, "key", key)

		if err := s.reconciler.BackfillObject(ctx, record.S3.Bucket.Name, key); err != nil {
			return fmt.Errorf("backfill %s/%s: %w", record.S3.Bucket.Name, key, err)
		}
	}

	return nil
}
