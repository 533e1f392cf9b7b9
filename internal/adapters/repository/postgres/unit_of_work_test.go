package postgres_test

import (
	"context"
	"errors"
	"testing"

	"hazard-watch/internal/adapters/repository/postgres"
	"hazard-watch/internal/core/domain"
	"hazard-watch/internal/core/port"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestUnitOfWork_Execute(t *testing.T) {
	dbConnection, cleanup, truncate := postgres.NewTestDB(t)
	defer cleanup()
	ctx := context.Background()

	unitOfWork := postgres.NewUnitOfWork(dbConnection)

	t.Run("commit on success", func(t *testing.T) {
		truncate()
		userID := uuid.New()
		videoID := uuid.New()

		err := unitOfWork.Execute(ctx, func(uow port.UnitOfWork) error {
			if err := uow.UserRepo().Create(ctx, userID, "alice", "hash", domain.RoleUser); err != nil {
				return err
			}
			return uow.VideoRepo().Create(ctx, videoID, userID, "alice_20250101_120000_clip.mp4", "videos", nil, domain.VideoStatusPending)
		})
		require.NoError(t, err)

		record, err := unitOfWork.VideoRepo().FindByID(ctx, videoID)
		require.NoError(t, err)
		require.Equal(t, userID, record.UserID)
	})

	t.Run("rollback on error", func(t *testing.T) {
		truncate()
		userID := uuid.New()
		failure := errors.New("boom")

		err := unitOfWork.Execute(ctx, func(uow port.UnitOfWork) error {
			if err := uow.UserRepo().Create(ctx, userID, "alice", "hash", domain.RoleUser); err != nil {
				return err
			}
			return failure
		})
		require.ErrorIs(t, err, failure)

		_, err = unitOfWork.UserRepo().FindByUsername(ctx, "alice")
		require.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("rollback leaves earlier commits intact", func(t *testing.T) {
		truncate()
		userID := uuid.New()
		require.NoError(t, unitOfWork.Execute(ctx, func(uow port.UnitOfWork) error {
			return uow.UserRepo().Create(ctx, userID, "alice", "hash", domain.RoleUser)
		}))

		err := unitOfWork.Execute(ctx, func(uow port.UnitOfWork) error {
			if err := uow.VideoRepo().Create(ctx, uuid.New(), userID, "alice_20250101_120000_clip.mp4", "videos", nil, domain.VideoStatusPending); err != nil {
				return err
			}
			return errors.New("abort")
		})
		require.Error(t, err)

		user, err := unitOfWork.UserRepo().FindByUsername(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, userID, user.ID)

		_, err = unitOfWork.VideoRepo().FindByKey(ctx, "alice_20250101_120000_clip.mp4")
		require.ErrorIs(t, err, domain.ErrVideoNotFound)
	})
}
