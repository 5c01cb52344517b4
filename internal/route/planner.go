package route

import (
	"fmt"
	"regexp"
	"strings"
)

// Checkpoint counts requested by the UI; enforced at the handler.
const (
	MinCheckpoints = 2
	MaxCheckpoints = 5
)

var markupTags = regexp.MustCompile(`<[^>]*>`)

// PlanCheckpoints places n checkpoints evenly spaced along the geometry's
// coordinate sequence. Spacing is by point index, not cumulative distance:
// providers emit denser points where the path turns, so index spacing biases
// checkpoints toward decision points without distance-weighted resampling.
//
// Routes with too few points yield fewer checkpoints, never an error.
// instructions optionally carries provider turn-by-turn text per checkpoint
// slot; when present it becomes the label with markup stripped.
func PlanCheckpoints(g Geometry, n int, instructions []string) []Checkpoint {
	totalPoints := len(g.Coordinates)
	if totalPoints == 0 || n <= 0 {
		return nil
	}

	interval := totalPoints / (n + 1)
	var checkpoints []Checkpoint
	for i := 1; i <= n; i++ {
		at := i * interval
		if at >= totalPoints {
			break
		}

		label := fmt.Sprintf("Checkpoint %d", i)
		if i-1 < len(instructions) && strings.TrimSpace(instructions[i-1]) != "" {
			label = stripMarkup(instructions[i-1])
		}

		checkpoints = append(checkpoints, Checkpoint{
			Position: g.Coordinates[at],
			Index:    i,
			Label:    label,
		})
	}
	return checkpoints
}

func stripMarkup(s string) string {
	return strings.TrimSpace(markupTags.ReplaceAllString(s, ""))
}
