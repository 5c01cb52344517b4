package story

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrGeneration wraps text-generation failures. Callers fall back to the
// deterministic local generator; a broken generation must never block a walk.
var ErrGeneration = errors.New("story generation failed")

// Generator produces a narrated story for a planned walk.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (Story, error)
}

// GeminiGenerator generates stories with the Gemini API.
type GeminiGenerator struct {
	apiKey string
	model  string
}

func NewGeminiGenerator(apiKey string) *GeminiGenerator {
	return &GeminiGenerator{apiKey: apiKey, model: "gemini-2.0-flash"}
}

func (g *GeminiGenerator) Generate(ctx context.Context, req GenerateRequest) (Story, error) {
	if g.apiKey == "" {
		return Story{}, fmt.Errorf("%w: api key not configured", ErrGeneration)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return Story{}, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.model)
	model.SetTemperature(0.8)
	model.SetMaxOutputTokens(2048)

	resp, err := model.GenerateContent(ctx, genai.Text(buildPrompt(req)))
	if err != nil {
		return Story{}, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return Story{}, fmt.Errorf("%w: empty response", ErrGeneration)
	}

	var raw strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			raw.WriteString(string(text))
		}
	}

	parsed, err := parseStory(raw.String())
	if err != nil {
		return Story{}, err
	}
	parsed.Source = "gemini"
	return parsed, nil
}

func buildPrompt(req GenerateRequest) string {
	var sb strings.Builder
	sb.WriteString("You are a storyteller for a guided walking app. Write a short fiction story narrated during a walk")
	fmt.Fprintf(&sb, " from %q to %q.\n\n", req.OriginName, req.DestinationName)
	fmt.Fprintf(&sb, "The story must have exactly %d chapters, one per route segment.\n", len(req.CheckpointLabels)+1)
	if len(req.CheckpointLabels) > 0 {
		sb.WriteString("Each chapter ends as the walker reaches the next checkpoint:\n")
		for i, label := range req.CheckpointLabels {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, label)
		}
	}
	fmt.Fprintf(&sb, "\nTarget total listening time: about %d minutes.\n\n", req.TargetDurationMinutes)
	sb.WriteString("Format strictly as:\n")
	sb.WriteString("TITLE: <story title>\n")
	sb.WriteString("CHAPTER 1: <chapter title>\n<chapter text>\n")
	sb.WriteString("CHAPTER 2: <chapter title>\n<chapter text>\n")
	sb.WriteString("... and so on. No other markup.")
	return sb.String()
}

// parseStory extracts the title and chapter sections from the model output.
func parseStory(raw string) (Story, error) {
	var s Story
	lines := strings.Split(raw, "\n")

	var current *Chapter
	var content strings.Builder
	flush := func() {
		if current != nil {
			current.Content = strings.TrimSpace(content.String())
			current.EstimatedReadingSeconds = readingSeconds(current.Content)
			s.Chapters = append(s.Chapters, *current)
			content.Reset()
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		upper := strings.ToUpper(trimmed)
		switch {
		case strings.HasPrefix(upper, "TITLE:"):
			s.Title = strings.TrimSpace(trimmed[len("TITLE:"):])
		case strings.HasPrefix(upper, "CHAPTER "):
			flush()
			number := len(s.Chapters) + 1
			title := ""
			if idx := strings.Index(trimmed, ":"); idx >= 0 {
				title = strings.TrimSpace(trimmed[idx+1:])
			}
			current = &Chapter{Number: number, Title: title}
		default:
			if current != nil && trimmed != "" {
				if content.Len() > 0 {
					content.WriteByte(' ')
				}
				content.WriteString(trimmed)
			}
		}
	}
	flush()

	if len(s.Chapters) == 0 {
		return Story{}, fmt.Errorf("%w: no chapters in output", ErrGeneration)
	}
	if s.Title == "" {
		s.Title = "An Unexpected Walk"
	}
	return s, nil
}

// readingSeconds estimates speech time at ~150 words per minute.
func readingSeconds(text string) int {
	words := len(strings.Fields(text))
	secs := words * 60 / 150
	if secs < 5 {
		secs = 5
	}
	return secs
}
