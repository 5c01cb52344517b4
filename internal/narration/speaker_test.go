package narration

import (
	"context"
	"sync"
	"testing"
	"time"

	"backend-storywalk/internal/story"
)

type fakeEngine struct {
	mu      sync.Mutex
	spoken  []string
	stops   int
	block   chan struct{}
	failure error
}

func (f *fakeEngine) Speak(_ context.Context, text string, _ Options) error {
	f.mu.Lock()
	f.spoken = append(f.spoken, text)
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	return f.failure
}

func (f *fakeEngine) Pause()  {}
func (f *fakeEngine) Resume() {}

func (f *fakeEngine) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
	if f.block != nil {
		close(f.block)
		f.block = nil
	}
}

func TestNarratorStopBeforeSpeak(t *testing.T) {
	engine := &fakeEngine{block: make(chan struct{})}
	n := NewNarrator(engine, Options{Rate: 1})

	done := make(chan struct{})
	go func() {
		_ = n.PlayChapter(context.Background(), story.Chapter{Title: "One", Content: "first"})
		close(done)
	}()

	// Wait until the first utterance is in flight.
	for {
		engine.mu.Lock()
		started := len(engine.spoken) == 1
		engine.mu.Unlock()
		if started {
			break
		}
		time.Sleep(time.Millisecond)
	}

	if err := n.PlayChapter(context.Background(), story.Chapter{Title: "Two", Content: "second"}); err != nil {
		t.Fatalf("play: %v", err)
	}
	<-done

	if engine.stops == 0 {
		t.Fatalf("previous utterance was not stopped before speaking")
	}
	if len(engine.spoken) != 2 {
		t.Fatalf("expected 2 utterances, got %d", len(engine.spoken))
	}
}

func TestNarratorShutdown(t *testing.T) {
	engine := &fakeEngine{}
	n := NewNarrator(engine, Options{})

	n.Shutdown()
	if engine.stops != 1 {
		t.Fatalf("shutdown should stop the engine")
	}

	if err := n.PlayChapter(context.Background(), story.Chapter{Content: "late"}); err != nil {
		t.Fatalf("play after shutdown: %v", err)
	}
	if len(engine.spoken) != 0 {
		t.Fatalf("narrator spoke after shutdown")
	}

	n.Shutdown()
	if engine.stops != 1 {
		t.Fatalf("double shutdown should be a no-op")
	}
}

func TestNarratorSynthesisError(t *testing.T) {
	engine := &fakeEngine{failure: SynthesisError("synthesis-unavailable")}
	n := NewNarrator(engine, Options{})

	err := n.PlayChapter(context.Background(), story.Chapter{Content: "text"})
	if err == nil {
		t.Fatalf("expected synthesis error")
	}
}
