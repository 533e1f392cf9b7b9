package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// KeyTimestampLayout is the timestamp segment of an artifact key. It contains
// an underscore, so a full key always splits into at least four parts.
const KeyTimestampLayout = "20060102_150405"

// BuildArtifactKey computes the canonical object key for a processed video:
// {username}_{timestamp}_{baseName}.mp4
func BuildArtifactKey(username, originalName string, now time.Time) string {
	base := strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))
	return fmt.Sprintf("%s_%s_%s.mp4", username, now.Format(KeyTimestampLayout), base)
}

// LogKeyFor returns the key of the detection log object paired with an artifact
func LogKeyFor(artifactKey string) string {
	return artifactKey + ".json"
}

// KeyPrefix returns the listing prefix owning all of a user's objects
func KeyPrefix(username string) string {
	return username + "_"
}

// splitKey breaks a key into its owner, timestamp and name segments
func splitKey(key string) (owner, timestamp, name string, err error) {
	parts := strings.SplitN(key, "_", 4)
	if len(parts) < 4 {
		return "", "", "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return parts[0], parts[1] + "_" + parts[2], parts[3], nil
}

// KeyOwner extracts the username segment of a key
func KeyOwner(key string) (string, error) {
	owner, _, _, err := splitKey(key)
	return owner, err
}

// KeyOriginalName extracts the original file name segment of a key
func KeyOriginalName(key string) (string, error) {
	_, _, name, err := splitKey(key)
	return name, err
}

// RenameKey replaces the name segment of a key, keeping owner and timestamp.
// The .mp4 extension is preserved when the new name omits it.
func RenameKey(key, newName string) (string, error) {
	owner, timestamp, _, err := splitKey(key)
	if err != nil {
		return "", err
	}
	if filepath.Ext(newName) == "" {
		newName += ".mp4"
	}
	return fmt.Sprintf("%s_%s_%s", owner, timestamp, newName), nil
}
