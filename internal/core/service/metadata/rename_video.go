package metadata

import (
	"context"

	"hazard-watch/internal/core/domain"
	"hazard-watch/internal/core/port"

	"github.com/google/uuid"
)

// RenameVideo updates a record's object key in one transaction: ownership
// check, audit log entry with the old and new key, then the key update.
// Any step failing rolls back the whole sequence.
func (m *metadataService) RenameVideo(ctx context.Context, videoID, userID uuid.UUID, newS3Key string) error {
	txErr := m.uow.Execute(ctx, func(uow port.UnitOfWork) error {
		record, err := uow.VideoRepo().FindByIDForUser(ctx, videoID, userID)
		if err != nil {
			return err
		}

		details := map[string]string{
			domain.DetailOldKey: record.S3Key,
			domain.DetailNewKey: newS3Key,
		}
		if err := uow.ActionLogRepo().Append(ctx, userID, domain.ActionRename, &videoID, details); err != nil {
			return err
		}

		if err := uow.VideoRepo().UpdateKey(ctx, videoID, newS3Key); err != nil {
			return err
		}

		// The paired detection result tracks the log object, which moves with
		// the artifact.
		return uow.DetectionRepo().UpdateKey(ctx, videoID, domain.LogKeyFor(newS3Key))
	})
	if txErr != nil {
		return wrapUnavailable(txErr)
	}

	m.logger.Info("video renamed", "video_id", videoID, "new_s3_key", newS3Key)
	return nil
}
