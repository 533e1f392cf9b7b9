package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"hazard-watch/internal/core/domain"
	"hazard-watch/internal/core/port"

	"github.com/google/uuid"
)

type sqlActionLogRepository struct {
	db SQLQuerier
}

// NewSqlActionLogRepository creates sqlActionLogRepository that implements port.ActionLogRepository
func NewSqlActionLogRepository(db SQLQuerier) port.ActionLogRepository {
	return &sqlActionLogRepository{
		db: db,
	}
}

// Append writes one audit entry. There is no update or delete.
func (s *sqlActionLogRepository) Append(ctx context.Context, userID uuid.UUID, action domain.ActionKind, videoID *uuid.UUID, details map[string]string) error {
	var detailsJSON any
	if details != nil {
		data, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("error marshaling log details: %w", err)
		}
		detailsJSON = data
	}

	query := `INSERT INTO logs (user_id, action, video_id, details) VALUES ($1, $2, $3, $4)`

	_, err := s.db.ExecContext(ctx, query, userID, action, videoID, detailsJSON)
	if err != nil {
		return fmt.Errorf("error inserting action log: %w", err)
	}
	return nil
}

// ListByUser returns a user's audit trail, newest first
func (s *sqlActionLogRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.ActionLogEntry, error) {
	query := `SELECT log_id, user_id, action, video_id, details, created_at
              FROM logs
              WHERE user_id = $1
              ORDER BY created_at DESC
              LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying action logs: %w", err)
	}
	defer rows.Close()

	var entries []domain.ActionLogEntry
	for rows.Next() {
		var (
			entry       domain.ActionLogEntry
			videoID     sql.Null[uuid.UUID]
			detailsJSON []byte
		)
		err := rows.Scan(&entry.ID, &entry.UserID, &entry.Action, &videoID, &detailsJSON, &entry.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning action log: %w", err)
		}

		if videoID.Valid {
			entry.VideoID = &videoID.V
		}
		if len(detailsJSON) > 0 {
			if err := json.Unmarshal(detailsJSON, &entry.Details); err != nil {
				return nil, fmt.Errorf("error unmarshaling log details: %w", err)
			}
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating action logs: %w", err)
	}
	return entries, nil
}
