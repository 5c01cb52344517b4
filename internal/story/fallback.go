package story

import (
	"context"
	"fmt"
)

// Fallback is the deterministic local generator used when the remote
// generator fails or is not configured. It produces one simple chapter per
// route segment so the walk can always proceed.
type Fallback struct{}

func NewFallback() *Fallback {
	return &Fallback{}
}

func (f *Fallback) Generate(_ context.Context, req GenerateRequest) (Story, error) {
	segments := len(req.CheckpointLabels) + 1
	s := Story{
		Title:  fmt.Sprintf("A Walk from %s to %s", orPlace(req.OriginName, "here"), orPlace(req.DestinationName, "there")),
		Source: "fallback",
	}

	for i := 0; i < segments; i++ {
		var title, content string
		switch {
		case i == 0:
			title = "Setting Out"
			content = fmt.Sprintf(
				"The walk begins at %s. Take a moment to notice the street around you, the sounds and the light, as the path ahead unfolds toward %s.",
				orPlace(req.OriginName, "your starting point"), firstStop(req.CheckpointLabels))
		case i == segments-1:
			title = "The Last Stretch"
			content = fmt.Sprintf(
				"The final segment leads to %s. The pace can slow now; the destination is close, and the walk is almost complete.",
				orPlace(req.DestinationName, "your destination"))
		default:
			title = fmt.Sprintf("Segment %d", i+1)
			content = fmt.Sprintf(
				"Past %s the route continues. Keep an easy rhythm and watch for the next checkpoint ahead.",
				req.CheckpointLabels[i-1])
		}
		s.Chapters = append(s.Chapters, Chapter{
			Number:                  i + 1,
			Title:                   title,
			Content:                 content,
			EstimatedReadingSeconds: readingSeconds(content),
		})
	}
	return s, nil
}

func orPlace(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

func firstStop(labels []string) string {
	if len(labels) == 0 {
		return "the destination"
	}
	return labels[0]
}
