package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hazard-watch/internal/core/domain"
	"hazard-watch/internal/core/port"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type sqlVideoRepository struct {
	db SQLQuerier
}

// NewSqlVideoRepository creates sqlVideoRepository that implements port.VideoRepository
func NewSqlVideoRepository(db SQLQuerier) port.VideoRepository {
	return &sqlVideoRepository{
		db: db,
	}
}

// Create creates a new video record
func (s *sqlVideoRepository) Create(ctx context.Context, id, userID uuid.UUID, s3Key, bucket string, metadata map[string]string, status domain.VideoStatus) error {
	if metadata == nil {
		metadata = map[string]string{}
	}
	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("error marshaling video metadata: %w", err)
	}

	query := `INSERT INTO videos (video_id, user_id, s3_key, bucket_name, status, metadata)
              VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = s.db.ExecContext(ctx, query, id, userID, s3Key, bucket, status, metadataJSON)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return fmt.Errorf("key %s: %w", s3Key, domain.ErrDuplicateKey)
		}
		return fmt.Errorf("error inserting video: %w", err)
	}
	return nil
}

// FindByKey finds a video by its unique object store key
func (s *sqlVideoRepository) FindByKey(ctx context.Context, s3Key string) (*domain.VideoRecord, error) {
	query := `SELECT v.video_id, v.user_id, v.s3_key, v.bucket_name, v.status, v.metadata, v.upload_time,
                     COALESCE(dr.hazard_detected, false)
              FROM videos v
              LEFT JOIN detection_results dr ON v.video_id = dr.video_id
              WHERE v.s3_key = $1`

	return s.scanOne(s.db.QueryRowContext(ctx, query, s3Key))
}

// FindByID finds a video by id
func (s *sqlVideoRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.VideoRecord, error) {
	query := `SELECT v.video_id, v.user_id, v.s3_key, v.bucket_name, v.status, v.metadata, v.upload_time,
                     COALESCE(dr.hazard_detected, false)
              FROM videos v
              LEFT JOIN detection_results dr ON v.video_id = dr.video_id
              WHERE v.video_id = $1`

	return s.scanOne(s.db.QueryRowContext(ctx, query, id))
}

// FindByIDForUser loads a row only when the caller owns it. An absent row and
// a foreign row are indistinguishable to the caller.
func (s *sqlVideoRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*domain.VideoRecord, error) {
	query := `SELECT v.video_id, v.user_id, v.s3_key, v.bucket_name, v.status, v.metadata, v.upload_time,
                     COALESCE(dr.hazard_detected, false)
              FROM videos v
              LEFT JOIN detection_results dr ON v.video_id = dr.video_id
              WHERE v.video_id = $1 AND v.user_id = $2`

	record, err := s.scanOne(s.db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, domain.ErrVideoNotFound) {
		return nil, domain.ErrUnauthorized
	}
	return record, err
}

// UpdateKey updates the object store key of a record
func (s *sqlVideoRepository) UpdateKey(ctx context.Context, id uuid.UUID, newS3Key string) error {
	query := `UPDATE videos SET s3_key = $1 WHERE video_id = $2`

	result, err := s.db.ExecContext(ctx, query, newS3Key, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return fmt.Errorf("key %s: %w", newS3Key, domain.ErrDuplicateKey)
		}
		return fmt.Errorf("error updating video key: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrVideoNotFound
	}
	return nil
}

// UpdateStatus updates the lifecycle status
func (s *sqlVideoRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.VideoStatus) error {
	query := `UPDATE videos SET status = $1 WHERE video_id = $2`

	result, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("error updating video status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrVideoNotFound
	}
	return nil
}

// Delete removes the row. Detection results cascade; audit log entries keep
// their payload with the video reference nulled.
func (s *sqlVideoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM videos WHERE video_id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error deleting video: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrVideoNotFound
	}
	return nil
}

// ListByUser returns a user's videos with the hazard flag joined in, newest first
func (s *sqlVideoRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.VideoRecord, error) {
	query := `SELECT v.video_id, v.user_id, v.s3_key, v.bucket_name, v.status, v.metadata, v.upload_time,
                     COALESCE(dr.hazard_detected, false)
              FROM videos v
              LEFT JOIN detection_results dr ON v.video_id = dr.video_id
              WHERE v.user_id = $1
              ORDER BY v.upload_time DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying videos: %w", err)
	}
	defer rows.Close()

	var records []domain.VideoRecord
	for rows.Next() {
		record, err := scanVideo(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating videos: %w", err)
	}
	return records, nil
}

func (s *sqlVideoRepository) scanOne(row *sql.Row) (*domain.VideoRecord, error) {
	record, err := scanVideo(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrVideoNotFound
		}
		return nil, err
	}
	return record, nil
}

func scanVideo(scan func(dest ...any) error) (*domain.VideoRecord, error) {
	var (
		record       domain.VideoRecord
		metadataJSON []byte
		uploadTime   time.Time
	)
	err := scan(
		&record.ID,
		&record.UserID,
		&record.S3Key,
		&record.Bucket,
		&record.Status,
		&metadataJSON,
		&uploadTime,
		&record.HazardDetected,
	)
	if err != nil {
		return nil, err
	}

	record.UploadTime = uploadTime
	if len(metadataJSON) > 0 {
		if err := json.Unmarshal(metadataJSON, &record.Metadata); err != nil {
			return nil, fmt.Errorf("error unmarshaling video metadata: %w", err)
		}
	}
	return &record, nil
}
