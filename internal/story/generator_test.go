package story

import (
	"errors"
	"testing"
)

func TestParseStory(t *testing.T) {
	raw := `TITLE: The Lantern Road
CHAPTER 1: Out the Door
The morning air was cool as Mai stepped onto the street.
She had no idea the city was about to change.

CHAPTER 2: The Corner Vendor
At the corner, an old vendor waved her over.`

	s, err := parseStory(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if s.Title != "The Lantern Road" {
		t.Fatalf("unexpected title %q", s.Title)
	}
	if len(s.Chapters) != 2 {
		t.Fatalf("expected 2 chapters, got %d", len(s.Chapters))
	}
	if s.Chapters[0].Title != "Out the Door" {
		t.Fatalf("unexpected chapter title %q", s.Chapters[0].Title)
	}
	if s.Chapters[0].Content != "The morning air was cool as Mai stepped onto the street. She had no idea the city was about to change." {
		t.Fatalf("unexpected chapter content %q", s.Chapters[0].Content)
	}
	if s.Chapters[1].Number != 2 {
		t.Fatalf("chapter numbering wrong")
	}
}

func TestParseStoryEmpty(t *testing.T) {
	_, err := parseStory("nothing useful here")
	if !errors.Is(err, ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}
}

func TestParseStoryMissingTitle(t *testing.T) {
	s, err := parseStory("CHAPTER 1: Start\nsome text")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if s.Title == "" {
		t.Fatalf("expected default title")
	}
}

func TestReadingSeconds(t *testing.T) {
	if secs := readingSeconds("one two three"); secs != 5 {
		t.Fatalf("expected floor of 5s, got %d", secs)
	}
	long := ""
	for i := 0; i < 300; i++ {
		long += "word "
	}
	if secs := readingSeconds(long); secs != 120 {
		t.Fatalf("expected 120s for 300 words, got %d", secs)
	}
}
