package narration

import "backend-storywalk/internal/story"

// Sequencer holds the chapter list for a walk and the currently active
// chapter index, advancing as checkpoints are reached.
//
// It is deliberately forgiving: a story with the wrong chapter count is never
// rejected, advancement past the last chapter is simply a no-op. A malformed
// story must not block the walk.
type Sequencer struct {
	chapters        []story.Chapter
	checkpointCount int
	current         int
	completed       map[int]struct{}
}

func NewSequencer() *Sequencer {
	return &Sequencer{completed: map[int]struct{}{}}
}

// Bind attaches the story chapters to the walk's checkpoints. A well-formed
// story has checkpointCount+1 chapters; mismatches are tolerated.
func (s *Sequencer) Bind(checkpointCount int, chapters []story.Chapter) {
	s.checkpointCount = checkpointCount
	s.chapters = chapters
	s.current = 0
	s.completed = map[int]struct{}{}
}

// OnCheckpointReached records checkpoint arrival (1-based index) and advances
// the active chapter. Indices outside the bound checkpoint range and repeated
// arrivals at the same checkpoint are no-ops. GPS jitter can report
// checkpoints out of order; the chapter index is clamped to only move forward
// so narration never jumps backward.
func (s *Sequencer) OnCheckpointReached(index int) bool {
	if index < 1 || index > s.checkpointCount {
		return false
	}
	if _, done := s.completed[index]; done {
		return false
	}
	s.completed[index] = struct{}{}

	next := index
	if next > s.current && next <= len(s.chapters)-1 {
		s.current = next
		return true
	}
	return false
}

// Current returns the active chapter index (0-based).
func (s *Sequencer) Current() int {
	return s.current
}

// CurrentChapter returns the active chapter, or false when no chapter is
// bound at the active index.
func (s *Sequencer) CurrentChapter() (story.Chapter, bool) {
	if s.current < 0 || s.current >= len(s.chapters) {
		return story.Chapter{}, false
	}
	return s.chapters[s.current], true
}

// CompletedCount returns how many distinct checkpoints have been reached.
func (s *Sequencer) CompletedCount() int {
	return len(s.completed)
}

// Completed reports whether the given checkpoint has been reached.
func (s *Sequencer) Completed(index int) bool {
	_, ok := s.completed[index]
	return ok
}
