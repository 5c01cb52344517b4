package story

import (
	"time"

	"backend-storywalk/internal/shared/geo"
)

// Chapter is one narrated segment of the story, bound to the route segment
// ending at a checkpoint (the final chapter ends at the destination).
type Chapter struct {
	Number                  int    `json:"number"`
	Title                   string `json:"title"`
	Content                 string `json:"content"`
	EstimatedReadingSeconds int    `json:"estimated_reading_seconds"`
}

type Story struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Chapters  []Chapter `json:"chapters"`
	Source    string    `json:"source"` // "gemini", "fallback" or "cache"
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// GenerateRequest describes the walk the story should narrate. A complete
// story has len(CheckpointLabels)+1 chapters, one per route segment.
type GenerateRequest struct {
	OriginName            string         `json:"origin_name"`
	DestinationName       string         `json:"destination_name"`
	Origin                geo.Coordinate `json:"origin"`
	Destination           geo.Coordinate `json:"destination"`
	CheckpointLabels      []string       `json:"checkpoint_labels"`
	TargetDurationMinutes int            `json:"target_duration_minutes"`
}
