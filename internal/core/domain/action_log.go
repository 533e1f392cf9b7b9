package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActionKind is the kind of an audited user action
type ActionKind string

const (
	ActionUpload ActionKind = "upload"
	ActionDelete ActionKind = "delete"
	ActionRename ActionKind = "rename"
)

// Recognized keys of action log detail payloads
const (
	DetailOldKey = "old_s3_key"
	DetailNewKey = "new_s3_key"
	DetailKey    = "s3_key"
	DetailBucket = "bucket_name"
)

// ActionLogEntry is an append-only audit record. Entries are never mutated or
// deleted; they outlive the video rows they reference.
type ActionLogEntry struct {
	ID        int64
	UserID    uuid.UUID
	Action    ActionKind
	VideoID   *uuid.UUID
	Details   map[string]string
	CreatedAt time.Time
}
