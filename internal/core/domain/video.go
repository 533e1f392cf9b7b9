package domain

import (
	"time"

	"github.com/google/uuid"
)

// VideoStatus represents the lifecycle status of a video record
type VideoStatus string

const (
	VideoStatusPending   VideoStatus = "pending"
	VideoStatusCompleted VideoStatus = "completed"
	VideoStatusFailed    VideoStatus = "failed"
)

// Recognized keys of the video metadata map
const (
	MetaUsername         = "username"
	MetaOriginalFilename = "original_filename"
	MetaFPS              = "fps"
	MetaWidth            = "width"
	MetaHeight           = "height"
	MetaProcessedAt      = "processed_at"
)

// VideoRecord is the single source of truth mapping a logical video to its
// object store location
type VideoRecord struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	S3Key          string
	Bucket         string
	Status         VideoStatus
	Metadata       map[string]string
	UploadTime     time.Time
	HazardDetected bool
}

// ObjectStat describes one object yielded by a prefix listing. A non-nil Err
// terminates the stream.
type ObjectStat struct {
	Key          string
	Size         int64
	LastModified time.Time
	Err          error
}

// DeleteOutcome reports which halves of a cross-backend delete succeeded
type DeleteOutcome struct {
	MetadataRemoved bool
	ObjectsRemoved  bool
}

// Partial reports whether exactly one backend succeeded
func (o DeleteOutcome) Partial() bool {
	return o.MetadataRemoved != o.ObjectsRemoved
}
