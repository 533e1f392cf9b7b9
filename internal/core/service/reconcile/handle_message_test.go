package reconcile_test

import (
	"context"
	"log/slog"
	"testing"

	"hazard-watch/internal/core/service/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMessageService_HandleMessage_ObjectCreated(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockReconciler := &reconcile.MockReconcilerService{}
	service := reconcile.NewMessageService(mockReconciler, slog.Default())

	payload := []byte(`{
		"EventName": "s3:ObjectCreated:Put",
		"Records": [{
			"eventName": "s3:ObjectCreated:Put",
			"s3": {
				"bucket": {"name": "videos"},
				"object": {"key": "alice_20250115_093045_holiday.mp4", "size": 1024}
			}
		}]
	}`)

	mockReconciler.On("BackfillObject", ctx, "videos", "alice_20250115_093045_holiday.mp4").Return(nil)

	// Act
	err := service.HandleMessage(ctx, payload)

	// Assert
	require.NoError(t, err)
	mockReconciler.AssertExpectations(t)
}

func TestMessageService_HandleMessage_DecodesURLEncodedKeys(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockReconciler := &reconcile.MockReconcilerService{}
	service := reconcile.NewMessageService(mockReconciler, slog.Default())

	payload := []byte(`{
		"Records": [{
			"eventName": "s3:ObjectCreated:Put",
			"s3": {
				"bucket": {"name": "videos"},
				"object": {"key": "alice_20250115_093045_summer+trip.mp4"}
			}
		}]
	}`)

	mockReconciler.On("BackfillObject", ctx, "videos", "alice_20250115_093045_summer trip.mp4").Return(nil)

	// Act
	err := service.HandleMessage(ctx, payload)

	// Assert
	require.NoError(t, err)
	mockReconciler.AssertExpectations(t)
}

func TestMessageService_HandleMessage_DropsNonCreateEvents(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockReconciler := &reconcile.MockReconcilerService{}
	service := reconcile.NewMessageService(mockReconciler, slog.Default())

	payload := []byte(`{
		"Records": [{
			"eventName": "s3:ObjectRemoved:Delete",
			"s3": {
				"bucket": {"name": "videos"},
				"object": {"key": "alice_20250115_093045_holiday.mp4"}
			}
		}]
	}`)

	// Act
	err := service.HandleMessage(ctx, payload)

	// Assert
	require.NoError(t, err)
	mockReconciler.AssertNotCalled(t, "BackfillObject", mock.Anything, mock.Anything, mock.Anything)
}

func TestMessageService_HandleMessage_MalformedPayload(t *testing.T) {
	mockReconciler := &reconcile.MockReconcilerService{}
	service := reconcile.NewMessageService(mockReconciler, slog.Default())

	err := service.HandleMessage(context.Background(), []byte("not json"))
	assert.Error(t, err)
}

func TestMessageService_HandleMessage_BackfillFailurePropagates(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockReconciler := &reconcile.MockReconcilerService{}
	service := reconcile.NewMessageService(mockReconciler, slog.Default())

	payload := []byte(`{
		"Records": [{
			"eventName": "s3:ObjectCreated:CompleteMultipartUpload",
			"s3": {
				"bucket": {"name": "videos"},
				"object": {"key": "alice_20250115_093045_holiday.mp4"}
			}
		}]
	}`)

	mockReconciler.On("BackfillObject", ctx, "videos", "alice_20250115_093045_holiday.mp4").Return(assert.AnError)

	// Act
	err := service.HandleMessage(ctx, payload)

	// Assert
	assert.ErrorIs(t, err, assert.AnError)
}
