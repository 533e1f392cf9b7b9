package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"hazard-watch/internal/core/domain"
	"hazard-watch/internal/core/port"

	"github.com/google/uuid"
)

type reconcilerService struct {
	store    port.ObjectStore
	metadata port.MetadataStore
	logger   *slog.Logger
}

// NewReconcilerService creates the service that keeps the object store and the
// metadata store telling the same story
func NewReconcilerService(store port.ObjectStore, meta port.MetadataStore, logger *slog.Logger) port.ReconcilerService {
	return &reconcilerService{
		store:    store,
		metadata: meta,
		logger:   logger,
	}
}

// Lookup resolves a key through the metadata store, falling back to a direct
// object-store listing when the row is missing. The fallback synthesizes a
// record from the object itself so untracked uploads stay reachable.
func (r *reconcilerService) Lookup(ctx context.Context, key string) (*domain.VideoRecord, error) {
	record, err := r.metadata.GetVideoByKey(ctx, key)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, domain.ErrVideoNotFound) {
		return nil, err
	}

	r.logger.Warn("metadata row missing, consulting the object store", "key", key)

	// Cancel the listing on early return so the producer is released.
	listCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	for stat := range r.store.ListByPrefix(listCtx, r.store.VideoBucket(), key) {
		if stat.Err != nil {
			return nil, fmt.Errorf("list %s: %w", key, stat.Err)
		}
		if stat.Key != key {
			continue
		}
		owner, err := domain.KeyOwner(key)
		if err != nil {
			return nil, err
		}
		return &domain.VideoRecord{
			S3Key:      key,
			Bucket:     r.store.VideoBucket(),
			Status:     domain.VideoStatusPending,
			Metadata:   map[string]string{domain.MetaUsername: owner},
			UploadTime: stat.LastModified,
		}, nil
	}

	return nil, fmt.Errorf("lookup %s: %w", key, domain.ErrVideoNotFound)
}

// ListVideos returns the metadata rows for one user
func (r *reconcilerService) ListVideos(ctx context.Context, userID uuid.UUID) ([]domain.VideoRecord, error) {
	return r.metadata.GetUserVideos(ctx, userID)
}

// VideoURL issues a presigned URL for a key the caller owns
func (r *reconcilerService) VideoURL(ctx context.Context, key string, ttl time.Duration, id domain.Identity) (string, error) {
	if err := r.authorize(ctx, key, id); err != nil {
		return "", err
	}
	return r.store.PresignedURL(ctx, key, ttl)
}

// DetectionLog fetches the stored per-frame detections for a key the caller owns
func (r *reconcilerService) DetectionLog(ctx context.Context, key string, id domain.Identity) ([]domain.FrameDetection, error) {
	if err := r.authorize(ctx, key, id); err != nil {
		return nil, err
	}
	return r.store.GetLog(ctx, domain.LogKeyFor(key))
}

// Rename gives a video a new display name under the same owner and timestamp.
// The metadata row moves first inside a transaction; only once it commits are
// the artifact and its log copied and the old objects removed. A rejected
// metadata update therefore leaves the object store untouched.
func (r *reconcilerService) Rename(ctx context.Context, key, newName string, id domain.Identity) (string, error) {
	record, err := r.metadata.GetVideoByKey(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrVideoNotFound) {
			return "", domain.ErrUnauthorized
		}
		return "", err
	}
	if record.UserID != id.UserID {
		return "", domain.ErrUnauthorized
	}

	newKey, err := domain.RenameKey(key, newName)
	if err != nil {
		return "", err
	}
	if newKey == key {
		return key, nil
	}

	if err := r.metadata.RenameVideo(ctx, record.ID, id.UserID, newKey); err != nil {
		return "", fmt.Errorf("rename metadata %s: %w", key, err)
	}

	if err := r.store.CopyThenDelete(ctx, r.store.VideoBucket(), key, newKey); err != nil {
		r.logger.Error("metadata renamed but artifact move failed", "old_key", key, "new_key", newKey, "error", err)
		return newKey, fmt.Errorf("move artifact %s: %w: %v", key, domain.ErrPartialFailure, err)
	}

	oldLogKey, newLogKey := domain.LogKeyFor(key), domain.LogKeyFor(newKey)
	if err := r.store.CopyThenDelete(ctx, r.store.LogBucket(), oldLogKey, newLogKey); err != nil {
		r.logger.Error("artifact moved but detection log move failed", "old_key", oldLogKey, "new_key", newLogKey, "error", err)
		return newKey, fmt.Errorf("move detection log %s: %w: %v", oldLogKey, domain.ErrPartialFailure, err)
	}

	r.logger.Info("video renamed", "old_key", key, "new_key", newKey, "user", id.Username)
	return newKey, nil
}

// Delete removes a video from both backends, metadata first. Each backend is
// attempted even when the other fails; the outcome reports which halves
// succeeded so a caller can tell a clean delete from one needing cleanup.
func (r *reconcilerService) Delete(ctx context.Context, key string, id domain.Identity) (domain.DeleteOutcome, error) {
	var outcome domain.DeleteOutcome
	var metaErr error

	record, err := r.metadata.GetVideoByKey(ctx, key)
	switch {
	case err == nil:
		if record.UserID != id.UserID {
			return outcome, domain.ErrUnauthorized
		}
		if _, metaErr = r.metadata.DeleteVideo(ctx, record.ID, id.UserID); metaErr == nil {
			outcome.MetadataRemoved = true
		} else {
			r.logger.Error("metadata delete failed", "key", key, "error", metaErr)
		}
	case errors.Is(err, domain.ErrVideoNotFound):
		// Orphan object without a row. Ownership falls back to the key prefix
		// and the metadata half is already in the desired state.
		owner, ownerErr := domain.KeyOwner(key)
		if ownerErr != nil || owner != id.Username {
			return outcome, domain.ErrUnauthorized
		}
		outcome.MetadataRemoved = true
	default:
		// Ownership cannot be confirmed without the metadata store, so the
		// object store stays untouched too.
		r.logger.Error("metadata lookup failed before delete", "key", key, "error", err)
		return outcome, fmt.Errorf("delete %s: %w", key, err)
	}

	storeErr := r.store.RemoveObjects(ctx, key, domain.LogKeyFor(key))
	if storeErr == nil {
		outcome.ObjectsRemoved = true
	} else {
		r.logger.Error("object delete failed", "key", key, "error", storeErr)
	}

	switch {
	case outcome.MetadataRemoved && outcome.ObjectsRemoved:
		r.logger.Info("video deleted", "key", key, "user", id.Username)
		return outcome, nil
	case outcome.Partial():
		return outcome, fmt.Errorf("delete %s: %w", key, domain.ErrPartialFailure)
	case storeErr != nil:
		return outcome, fmt.Errorf("delete %s: %w", key, storeErr)
	default:
		return outcome, fmt.Errorf("delete %s: %w", key, metaErr)
	}
}

// authorize checks that the caller owns the key, preferring the metadata row
// and falling back to the key prefix for untracked objects
func (r *reconcilerService) authorize(ctx context.Context, key string, id domain.Identity) error {
	record, err := r.metadata.GetVideoByKey(ctx, key)
	if err == nil {
		if record.UserID != id.UserID {
			return domain.ErrUnauthorized
		}
		return nil
	}
	if !errors.Is(err, domain.ErrVideoNotFound) {
		return err
	}

	owner, err := domain.KeyOwner(key)
	if err != nil {
		return err
	}
	if owner != id.Username {
		return domain.ErrUnauthorized
	}
	return nil
}
