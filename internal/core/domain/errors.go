package domain

import "errors"

// ErrUserNotFound is an error thrown when a user is not found
var ErrUserNotFound = errors.New("user not found")

// ErrVideoNotFound is an error thrown when a video record or object is not found
var ErrVideoNotFound = errors.New("video not found")

// ErrDetectionLogNotFound is an error thrown when a detection log object is not found
var ErrDetectionLogNotFound = errors.New("detection log not found")

// ErrDuplicateUsername is an error thrown when a username is already registered
var ErrDuplicateUsername = errors.New("username already exists")

// ErrDuplicateKey is an error thrown when an object key is already taken
var ErrDuplicateKey = errors.New("object key already exists")

// ErrUnauthorized is an error thrown when a caller does not own the record
var ErrUnauthorized = errors.New("not found or unauthorized")

// ErrInvalidCredentials is an error thrown when authentication fails
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrStoreUnavailable is an error thrown when the object store cannot be
// reached after exhausting the retry budget
var ErrStoreUnavailable = errors.New("object store unavailable")

// ErrMetadataUnavailable is an error thrown when the metadata store connection
// or transaction fails
var ErrMetadataUnavailable = errors.New("metadata store unavailable")

// ErrInvalidMedia is an error thrown when the input video is unreadable or corrupt
var ErrInvalidMedia = errors.New("invalid media")

// ErrSourceMissing is an error thrown when the local staging file does not exist
var ErrSourceMissing = errors.New("source file missing")

// ErrPartialFailure is an error thrown when one backend of a dual-write
// operation succeeded and the other did not
var ErrPartialFailure = errors.New("partial failure")

// ErrInvalidKey is an error thrown when an object key does not follow the
// {username}_{timestamp}_{name} convention
var ErrInvalidKey = errors.New("invalid object key format")
