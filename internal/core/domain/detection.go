package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// FrameDetection is one per-frame classification. It serializes as the tuple
// [frame, weapon, knife] so the stored log stays a plain JSON array.
type FrameDetection struct {
	Frame  int
	Weapon bool
	Knife  bool
}

// Hazard reports whether any hazard class is present in the frame
func (f FrameDetection) Hazard() bool {
	return f.Weapon || f.Knife
}

// MarshalJSON encodes the detection as [frame, weapon, knife]
func (f FrameDetection) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]any{f.Frame, f.Weapon, f.Knife})
}

// UnmarshalJSON decodes the [frame, weapon, knife] tuple
func (f *FrameDetection) UnmarshalJSON(data []byte) error {
	var tuple [3]json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return fmt.Errorf("frame detection must be a 3-element array: %w", err)
	}
	if err := json.Unmarshal(tuple[0], &f.Frame); err != nil {
		return err
	}
	if err := json.Unmarshal(tuple[1], &f.Weapon); err != nil {
		return err
	}
	return json.Unmarshal(tuple[2], &f.Knife)
}

// DetectionSummary aggregates a frame sequence
type DetectionSummary struct {
	TotalFrames  int `json:"total_frames"`
	HazardFrames int `json:"hazard_frames"`
}

// Summarize reduces a frame sequence to its summary and the aggregate hazard flag
func Summarize(frames []FrameDetection) (DetectionSummary, bool) {
	summary := DetectionSummary{TotalFrames: len(frames)}
	for _, frame := range frames {
		if frame.Hazard() {
			summary.HazardFrames++
		}
	}
	return summary, summary.HazardFrames > 0
}

// DetectionResult is the stored one-to-one companion of a completed VideoRecord
type DetectionResult struct {
	ID             uuid.UUID
	VideoID        uuid.UUID
	UserID         uuid.UUID
	S3Key          string
	Bucket         string
	Status         VideoStatus
	HazardDetected bool
	Summary        DetectionSummary
	CreatedAt      time.Time
}

// DetectionReport is what the external detection collaborator returns for one video
type DetectionReport struct {
	Frames []FrameDetection
	FPS    int
	Width  int
	Height int
}

// ProcessResult is the outcome of a full process-and-store run
type ProcessResult struct {
	VideoID        uuid.UUID
	ArtifactKey    string
	LogKey         string
	Frames         []FrameDetection
	FPS            int
	HazardDetected bool
}
