package narration

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"backend-storywalk/internal/story"
)

// ErrSynthesis wraps speech-engine failures with a provider-specific code.
var ErrSynthesis = errors.New("speech synthesis failed")

// SynthesisError attaches the provider code to a synthesis failure.
func SynthesisError(code string) error {
	return fmt.Errorf("%w: %s", ErrSynthesis, code)
}

// Options are the voice parameters applied to an utterance.
type Options struct {
	Rate   float64 `json:"rate"`
	Pitch  float64 `json:"pitch"`
	Volume float64 `json:"volume"`
	Voice  string  `json:"voice"`
}

// Engine is the speech-synthesis collaborator. Implementations live on the
// host platform; the server only coordinates playback.
type Engine interface {
	Speak(ctx context.Context, text string, opts Options) error
	Pause()
	Resume()
	Stop()
}

// Narrator owns an Engine for the duration of one walk and enforces the
// stop-before-speak policy: a new chapter always cancels the previous
// utterance, utterances are never queued.
type Narrator struct {
	engine Engine
	opts   Options

	mu       sync.Mutex
	speaking bool
	closed   bool
}

func NewNarrator(engine Engine, opts Options) *Narrator {
	return &Narrator{engine: engine, opts: opts}
}

// PlayChapter speaks the chapter, stopping any utterance still in flight.
func (n *Narrator) PlayChapter(ctx context.Context, ch story.Chapter) error {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	if n.speaking {
		n.engine.Stop()
	}
	n.speaking = true
	n.mu.Unlock()

	text := ch.Title
	if text != "" && ch.Content != "" {
		text += ". "
	}
	text += ch.Content

	err := n.engine.Speak(ctx, text, n.opts)

	n.mu.Lock()
	n.speaking = false
	n.mu.Unlock()
	return err
}

func (n *Narrator) Pause() {
	n.engine.Pause()
}

func (n *Narrator) Resume() {
	n.engine.Resume()
}

// Shutdown stops playback and retires the narrator. Called at walk end;
// further PlayChapter calls are no-ops.
func (n *Narrator) Shutdown() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	n.closed = true
	n.engine.Stop()
}
