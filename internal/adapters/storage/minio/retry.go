package minio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"hazard-watch/internal/core/domain"

	"github.com/minio/minio-go/v7"
)

// retryPolicy wraps a remote call in bounded exponential backoff. Errors the
// predicate classifies as non-retryable propagate immediately; anything else is
// retried until the budget is exhausted and then surfaced as StoreUnavailable.
type retryPolicy struct {
	maxAttempts  int
	baseDelay    time.Duration
	nonRetryable func(error) bool
}

func (p retryPolicy) do(ctx context.Context, op string, logger *slog.Logger, fn func() error) error {
	var err error
	for attempt := 0; attempt < p.maxAttempts; attempt++ {
		if attempt > 0 {
			delay := p.baseDelay * (1 << attempt)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		err = fn()
		if err == nil {
			return nil
		}
		if p.nonRetryable != nil && p.nonRetryable(err) {
			return err
		}

		logger.Warn("object store operation failed, retrying",
			"op", op,
			"attempt", attempt+1,
			"max_attempts", p.maxAttempts,
			"error", err,
		)
	}

	return fmt.Errorf("%s: %w: %v", op, domain.ErrStoreUnavailable, err)
}

// isNonRetryable classifies object store errors. Missing objects and denied
// access never resolve by waiting.
func isNonRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket", "AccessDenied":
		return true
	}
	return false
}
