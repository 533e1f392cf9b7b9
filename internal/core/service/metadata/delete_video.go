package metadata

import (
	"context"

	"hazard-watch/internal/core/domain"
	"hazard-watch/internal/core/port"

	"github.com/google/uuid"
)

// DeleteVideo removes a record in one transaction: ownership check, audit log
// entry carrying the doomed object's key and bucket, then the row delete. The
// audit entry is written before the delete so the trail survives even if the
// caller's subsequent object store removal fails. The deleted record is
// returned so the caller can remove the blobs.
func (m *metadataService) DeleteVideo(ctx context.Context, videoID, userID uuid.UUID) (*domain.VideoRecord, error) {
	var record *domain.VideoRecord

	txErr := m.uow.Execute(ctx, func(uow port.UnitOfWork) error {
		var err error
		record, err = uow.VideoRepo().FindByIDForUser(ctx, videoID, userID)
		if err != nil {
			return err
		}

		details := map[string]string{
			domain.DetailKey:    record.S3Key,
			domain.DetailBucket: record.Bucket,
		}
		if err := uow.ActionLogRepo().Append(ctx, userID, domain.ActionDelete, &videoID, details); err != nil {
			return err
		}

		return uow.VideoRepo().Delete(ctx, videoID)
	})
	if txErr != nil {
		return nil, wrapUnavailable(txErr)
	}

	m.logger.Info("video metadata deleted", "video_id", videoID, "s3_key", record.S3Key)
	return record, nil
}
