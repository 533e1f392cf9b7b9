package metadata

import (
	"context"

	"hazard-watch/internal/core/domain"
	"hazard-watch/internal/core/port"

	"github.com/google/uuid"
)

// SaveDetectionResult inserts the detection row and flips the parent video to
// completed in one transaction, so a result row never exists for a video that
// is still pending
func (m *metadataService) SaveDetectionResult(ctx context.Context, videoID uuid.UUID, logKey string, hazardDetected bool, summary domain.DetectionSummary) error {
	txErr := m.uow.Execute(ctx, func(uow port.UnitOfWork) error {
		record, err := uow.VideoRepo().FindByID(ctx, videoID)
		if err != nil {
			return err
		}

		result := domain.DetectionResult{
			ID:             uuid.New(),
			VideoID:        videoID,
			UserID:         record.UserID,
			S3Key:          logKey,
			Bucket:         m.logBucket,
			Status:         domain.VideoStatusCompleted,
			HazardDetected: hazardDetected,
			Summary:        summary,
		}
		if err := uow.DetectionRepo().Create(ctx, result); err != nil {
			return err
		}

		return uow.VideoRepo().UpdateStatus(ctx, videoID, domain.VideoStatusCompleted)
	})
	if txErr != nil {
		return wrapUnavailable(txErr)
	}

	m.logger.Info("detection result saved", "video_id", videoID, "log_key", logKey, "hazard_detected", hazardDetected)
	return nil
}
