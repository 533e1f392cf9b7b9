package minio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"hazard-watch/internal/config"
	"hazard-watch/internal/core/domain"
	"hazard-watch/internal/core/port"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Adapter is an adapter for minio. One adapter instance is shared process-wide;
// reconnection is mutually exclusive so concurrent requests cannot race bucket
// creation.
type Adapter struct {
	mu     sync.Mutex
	client *minio.Client
	cfg    config.MinioConfig
	logger *slog.Logger
	retry  retryPolicy
}

// NewAdapter connects to minio and ensures both buckets exist
func NewAdapter(ctx context.Context, cfg config.MinioConfig, logger *slog.Logger) (*Adapter, error) {
	a := &Adapter{
		cfg:    cfg,
		logger: logger,
		retry: retryPolicy{
			maxAttempts:  cfg.RetryAttempts,
			baseDelay:    cfg.RetryBaseDelay,
			nonRetryable: isNonRetryable,
		},
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.connect(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

// connect must be called with a.mu held
func (a *Adapter) connect(ctx context.Context) error {
	client, err := minio.New(a.cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(a.cfg.AccessKey, a.cfg.SecretKey, ""),
		Secure: a.cfg.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to create minio client: %w", err)
	}

	if err := ensureBuckets(ctx, client, a.cfg.VideoBucket, a.cfg.LogBucket); err != nil {
		return err
	}

	a.client = client
	a.logger.Info("minio connection established", "endpoint", a.cfg.Endpoint)
	return nil
}

func ensureBuckets(ctx context.Context, client *minio.Client, buckets ...string) error {
	for _, bucket := range buckets {
		exists, err := client.BucketExists(ctx, bucket)
		if err != nil {
			return fmt.Errorf("failed to check if bucket %s exists: %w", bucket, err)
		}
		if !exists {
			if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
	}
	return nil
}

// ensureConnection probes the connection with a bucket listing and reconnects
// if the probe fails. It returns the handle to use for the next call.
func (a *Adapter) ensureConnection(ctx context.Context) (*minio.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.client != nil {
		probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		_, err := a.client.ListBuckets(probeCtx)
		cancel()
		if err == nil {
			return a.client, nil
		}
		a.logger.Warn("minio liveness probe failed, reconnecting", "error", err)
	}

	if err := a.connect(ctx); err != nil {
		return nil, err
	}
	return a.client, nil
}

// VideoBucket returns the bucket holding processed artifacts
func (a *Adapter) VideoBucket() string { return a.cfg.VideoBucket }

// LogBucket returns the bucket holding serialized detection logs
func (a *Adapter) LogBucket() string { return a.cfg.LogBucket }

// PutArtifact streams a local file into the video bucket with the attached
// metadata map
func (a *Adapter) PutArtifact(ctx context.Context, localPath, objectKey string, metadata map[string]string) error {
	if _, err := os.Stat(localPath); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrSourceMissing, localPath)
	}

	err := a.retry.do(ctx, "put artifact", a.logger, func() error {
		client, err := a.ensureConnection(ctx)
		if err != nil {
			return err
		}
		_, err = client.FPutObject(ctx, a.cfg.VideoBucket, objectKey, localPath, minio.PutObjectOptions{
			ContentType:  "video/mp4",
			UserMetadata: metadata,
		})
		return err
	})
	if err != nil {
		return err
	}

	a.logger.Info("artifact stored", "key", objectKey, "bucket", a.cfg.VideoBucket)
	return nil
}

// PutLog serializes the frame sequence to JSON and writes it to the log bucket
func (a *Adapter) PutLog(ctx context.Context, objectKey string, frames []domain.FrameDetection, metadata map[string]string) error {
	data, err := json.Marshal(frames)
	if err != nil {
		return fmt.Errorf("failed to marshal detection log: %w", err)
	}

	err = a.retry.do(ctx, "put log", a.logger, func() error {
		client, err := a.ensureConnection(ctx)
		if err != nil {
			return err
		}
		_, err = client.PutObject(ctx, a.cfg.LogBucket, objectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
			ContentType:  "application/json",
			UserMetadata: metadata,
		})
		return err
	})
	if err != nil {
		return err
	}

	a.logger.Info("detection log stored", "key", objectKey, "bucket", a.cfg.LogBucket, "size", len(data))
	return nil
}

// GetLog reads and deserializes a detection log from the log bucket
func (a *Adapter) GetLog(ctx context.Context, objectKey string) ([]domain.FrameDetection, error) {
	var frames []domain.FrameDetection

	err := a.retry.do(ctx, "get log", a.logger, func() error {
		client, err := a.ensureConnection(ctx)
		if err != nil {
			return err
		}
		object, err := client.GetObject(ctx, a.cfg.LogBucket, objectKey, minio.GetObjectOptions{})
		if err != nil {
			return err
		}
		defer object.Close()

		data, err := io.ReadAll(object)
		if err != nil {
			return err
		}
		return json.Unmarshal(data, &frames)
	})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, fmt.Errorf("%w: %s", domain.ErrDetectionLogNotFound, objectKey)
		}
		return nil, err
	}

	return frames, nil
}

// StatExists probes object existence without transferring the body
func (a *Adapter) StatExists(ctx context.Context, bucket, objectKey string) (bool, error) {
	var exists bool

	err := a.retry.do(ctx, "stat object", a.logger, func() error {
		client, err := a.ensureConnection(ctx)
		if err != nil {
			return err
		}
		_, err = client.StatObject(ctx, bucket, objectKey, minio.StatObjectOptions{})
		if err != nil {
			if minio.ToErrorResponse(err).Code == "NoSuchKey" {
				exists = false
				return nil
			}
			return err
		}
		exists = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return exists, nil
}

// CopyThenDelete is the only supported rename primitive: a server-side copy
// followed by deletion of the source. The two calls are not atomic.
func (a *Adapter) CopyThenDelete(ctx context.Context, bucket, sourceKey, targetKey string) error {
	err := a.retry.do(ctx, "copy object", a.logger, func() error {
		client, err := a.ensureConnection(ctx)
		if err != nil {
			return err
		}
		_, err = client.CopyObject(ctx,
			minio.CopyDestOptions{Bucket: bucket, Object: targetKey},
			minio.CopySrcOptions{Bucket: bucket, Object: sourceKey},
		)
		return err
	})
	if err != nil {
		return err
	}

	err = a.retry.do(ctx, "remove source object", a.logger, func() error {
		client, err := a.ensureConnection(ctx)
		if err != nil {
			return err
		}
		return client.RemoveObject(ctx, bucket, sourceKey, minio.RemoveObjectOptions{})
	})
	if err != nil {
		return err
	}

	a.logger.Info("object renamed", "bucket", bucket, "source", sourceKey, "target", targetKey)
	return nil
}

// RemoveObjects deletes the artifact and, when logKey is not empty, its
// detection log
func (a *Adapter) RemoveObjects(ctx context.Context, videoKey, logKey string) error {
	err := a.retry.do(ctx, "remove artifact", a.logger, func() error {
		client, err := a.ensureConnection(ctx)
		if err != nil {
			return err
		}
		return client.RemoveObject(ctx, a.cfg.VideoBucket, videoKey, minio.RemoveObjectOptions{})
	})
	if err != nil {
		return err
	}

	if logKey != "" {
		err = a.retry.do(ctx, "remove log", a.logger, func() error {
			client, err := a.ensureConnection(ctx)
			if err != nil {
				return err
			}
			return client.RemoveObject(ctx, a.cfg.LogBucket, logKey, minio.RemoveObjectOptions{})
		})
		if err != nil {
			return err
		}
	}

	a.logger.Info("objects removed", "video_key", videoKey, "log_key", logKey)
	return nil
}

// PresignedURL verifies existence first so callers get NotFound instead of a
// link that will break, then issues a time-boxed read URL
func (a *Adapter) PresignedURL(ctx context.Context, objectKey string, ttl time.Duration) (string, error) {
	exists, err := a.StatExists(ctx, a.cfg.VideoBucket, objectKey)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", fmt.Errorf("%w: %s", domain.ErrVideoNotFound, objectKey)
	}

	var presigned string
	err = a.retry.do(ctx, "presign url", a.logger, func() error {
		client, err := a.ensureConnection(ctx)
		if err != nil {
			return err
		}
		u, err := client.PresignedGetObject(ctx, a.cfg.VideoBucket, objectKey, ttl, nil)
		if err != nil {
			return err
		}
		presigned = u.String()
		return nil
	})
	if err != nil {
		return "", err
	}
	return presigned, nil
}

// ListByPrefix lazily streams objects under a prefix. The stream is finite and
// not restartable; a consumer that stops early must cancel ctx so the producer
// does not block on an undelivered send.
func (a *Adapter) ListByPrefix(ctx context.Context, bucket, prefix string) <-chan domain.ObjectStat {
	out := make(chan domain.ObjectStat)

	send := func(stat domain.ObjectStat) bool {
		select {
		case out <- stat:
			return true
		case <-ctx.Done():
			return false
		}
	}

	go func() {
		defer close(out)

		client, err := a.ensureConnection(ctx)
		if err != nil {
			send(domain.ObjectStat{Err: err})
			return
		}

		for object := range client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: prefix}) {
			if object.Err != nil {
				send(domain.ObjectStat{Err: object.Err})
				return
			}
			if !send(domain.ObjectStat{
				Key:          object.Key,
				Size:         object.Size,
				LastModified: object.LastModified,
			}) {
				return
			}
		}
	}()

	return out
}

var _ port.ObjectStore = (*Adapter)(nil)
