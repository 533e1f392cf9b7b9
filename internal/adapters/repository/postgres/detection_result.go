package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"hazard-watch/internal/core/domain"
	"hazard-watch/internal/core/port"

	"github.com/google/uuid"
)

type sqlDetectionRepository struct {
	db SQLQuerier
}

// NewSqlDetectionRepository creates sqlDetectionRepository that implements port.DetectionRepository
func NewSqlDetectionRepository(db SQLQuerier) port.DetectionRepository {
	return &sqlDetectionRepository{
		db: db,
	}
}

// Create inserts a detection result row
func (s *sqlDetectionRepository) Create(ctx context.Context, result domain.DetectionResult) error {
	summaryJSON, err := json.Marshal(result.Summary)
	if err != nil {
		return fmt.Errorf("error marshaling detection summary: %w", err)
	}

	query := `INSERT INTO detection_results (result_id, video_id, user_id, s3_key, bucket_name, status, hazard_detected, summary)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = s.db.ExecContext(ctx, query,
		result.ID,
		result.VideoID,
		result.UserID,
		result.S3Key,
		result.Bucket,
		result.Status,
		result.HazardDetected,
		summaryJSON,
	)
	if err != nil {
		return fmt.Errorf("error inserting detection result: %w", err)
	}
	return nil
}

// UpdateKey points the result at a new log object key after a rename. Videos
// without a result yet update zero rows, which is fine.
func (s *sqlDetectionRepository) UpdateKey(ctx context.Context, videoID uuid.UUID, newS3Key string) error {
	query := `UPDATE detection_results SET s3_key = $1 WHERE video_id = $2`

	_, err := s.db.ExecContext(ctx, query, newS3Key, videoID)
	if err != nil {
		return fmt.Errorf("error updating detection result key: %w", err)
	}
	return nil
}

// FindByVideoID finds the result paired with a video
func (s *sqlDetectionRepository) FindByVideoID(ctx context.Context, videoID uuid.UUID) (*domain.DetectionResult, error) {
	query := `SELECT result_id, video_id, user_id, s3_key, bucket_name, status, hazard_detected, summary, created_at
              FROM detection_results
              WHERE video_id = $1`

	var (
		result      domain.DetectionResult
		summaryJSON []byte
	)
	err := s.db.QueryRowContext(ctx, query, videoID).Scan(
		&result.ID,
		&result.VideoID,
		&result.UserID,
		&result.S3Key,
		&result.Bucket,
		&result.Status,
		&result.HazardDetected,
		&summaryJSON,
		&result.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDetectionLogNotFound
		}
		return nil, err
	}

	if len(summaryJSON) > 0 {
		if err := json.Unmarshal(summaryJSON, &result.Summary); err != nil {
			return nil, fmt.Errorf("error unmarshaling detection summary: %w", err)
		}
	}
	return &result, nil
}
