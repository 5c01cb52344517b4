package tracking

import (
	"time"

	"backend-storywalk/internal/shared/geo"
)

// Walk is one narrated walk owned by a device, from start until completion
// or force-end.
type Walk struct {
	ID        string    `json:"id"`
	DeviceID  string    `json:"device_id"`
	StoryID   string    `json:"story_id,omitempty"`
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at,omitempty"`
}

// Position is one live sample from the device's position stream.
type Position struct {
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	AccuracyM  float64   `json:"accuracy_m,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

func (p Position) Coordinate() geo.Coordinate {
	return geo.Coordinate{Lat: p.Lat, Lng: p.Lng}
}

// Progress is the live view of a walk returned after each accepted sample.
type Progress struct {
	WalkID               string  `json:"walk_id"`
	TraveledDistanceM    float64 `json:"traveled_distance_m"`
	CurrentChapter       int     `json:"current_chapter"`
	CheckpointsCompleted int     `json:"checkpoints_completed"`
	TotalCheckpoints     int     `json:"total_checkpoints"`
	Finished             bool    `json:"finished"`
}

// Summary is the immutable record persisted after a walk completes or is
// ended early.
type Summary struct {
	WalkID               string    `json:"walk_id"`
	DeviceID             string    `json:"device_id"`
	StartTime            time.Time `json:"start_time"`
	EndTime              time.Time `json:"end_time"`
	EstimatedDistanceM   float64   `json:"estimated_distance_m"`
	ActualDistanceM      float64   `json:"actual_distance_m"`
	EstimatedDurationSec float64   `json:"estimated_duration_sec"`
	ActualDurationSec    float64   `json:"actual_duration_sec"`
	CheckpointsCompleted int       `json:"checkpoints_completed"`
	TotalCheckpoints     int       `json:"total_checkpoints"`
	EstimatedCalories    float64   `json:"estimated_calories"`
}
