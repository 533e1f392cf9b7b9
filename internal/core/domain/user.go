package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role represents a user role
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a registered account
type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Identity carries the authenticated caller through service calls.
// The username is needed for key-prefix ownership checks when a video
// predates metadata tracking.
type Identity struct {
	UserID   uuid.UUID
	Username string
}
