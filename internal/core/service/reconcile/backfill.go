package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hazard-watch/internal/core/domain"

	"github.com/google/uuid"
)

// BackfillUser walks a user's key prefix in the video bucket and creates
// metadata rows for every object that has none. It returns how many rows were
// created. Used by the periodic sweep.
func (r *reconcilerService) BackfillUser(ctx context.Context, username string) (int, error) {
	user, err := r.metadata.GetUserByUsername(ctx, username)
	if err != nil {
		return 0, err
	}

	backfilled := 0
	for stat := range r.store.ListByPrefix(ctx, r.store.VideoBucket(), domain.KeyPrefix(username)) {
		if stat.Err != nil {
			return backfilled, fmt.Errorf("list prefix %s: %w", domain.KeyPrefix(username), stat.Err)
		}
		created, err := r.adoptObject(ctx, user.ID, username, stat.Key)
		if err != nil {
			r.logger.Error("backfill skipped object", "key", stat.Key, "error", err)
			continue
		}
		if created {
			backfilled++
		}
	}

	if backfilled > 0 {
		r.logger.Info("backfill completed", "username", username, "created", backfilled)
	}
	return backfilled, nil
}

// BackfillObject adopts one untracked object, typically in response to a
// bucket notification. Events for other buckets and for detection logs are
// ignored.
func (r *reconcilerService) BackfillObject(ctx context.Context, bucket, key string) error {
	if bucket != r.store.VideoBucket() {
		return nil
	}

	owner, err := domain.KeyOwner(key)
	if err != nil {
		r.logger.Warn("ignoring object with unrecognized key shape", "bucket", bucket, "key", key)
		return nil
	}

	user, err := r.metadata.GetUserByUsername(ctx, owner)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			r.logger.Warn("ignoring object owned by unknown user", "key", key, "owner", owner)
			return nil
		}
		return err
	}

	created, err := r.adoptObject(ctx, user.ID, owner, key)
	if err != nil {
		return err
	}
	if created {
		r.logger.Info("adopted untracked object", "key", key, "owner", owner)
	}
	return nil
}

// adoptObject creates the missing metadata row for one artifact, attaching a
// detection result when the paired log object exists. Returns false when the
// row was already present.
func (r *reconcilerService) adoptObject(ctx context.Context, userID uuid.UUID, username, key string) (bool, error) {
	if !strings.HasSuffix(key, ".mp4") {
		return false, nil
	}

	_, err := r.metadata.GetVideoByKey(ctx, key)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrVideoNotFound) {
		return false, err
	}

	originalName, err := domain.KeyOriginalName(key)
	if err != nil {
		return false, err
	}

	metadata := map[string]string{
		domain.MetaUsername:         username,
		domain.MetaOriginalFilename: originalName,
	}
	videoID, err := r.metadata.SaveVideoMetadata(ctx, userID, key, r.store.VideoBucket(), metadata, domain.VideoStatusPending)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return false, nil
		}
		return false, fmt.Errorf("save metadata for %s: %w", key, err)
	}

	logKey := domain.LogKeyFor(key)
	frames, err := r.store.GetLog(ctx, logKey)
	if err != nil {
		if errors.Is(err, domain.ErrDetectionLogNotFound) {
			return true, nil
		}
		return true, fmt.Errorf("read detection log %s: %w", logKey, err)
	}

	summary, hazardDetected := domain.Summarize(frames)
	if err := r.metadata.SaveDetectionResult(ctx, videoID, logKey, hazardDetected, summary); err != nil {
		return true, fmt.Errorf("save detection result for %s: %w", key, err)
	}
	return true, nil
}
