package tts

import (
	"context"
	"errors"
	"testing"
)

type fakeStrategy struct {
	name   string
	err    error
	spoken []string
}

func (f *fakeStrategy) Name() string { return f.name }

func (f *fakeStrategy) Speak(_ context.Context, text string) error {
	f.spoken = append(f.spoken, text)
	return f.err
}

func TestPipelineFirstSuccessWins(t *testing.T) {
	first := &fakeStrategy{name: "network"}
	second := &fakeStrategy{name: "local"}
	p := NewPipeline(first, second)

	p.Speak(context.Background(), "hello")

	if len(first.spoken) != 1 {
		t.Fatalf("first strategy spoken = %v", first.spoken)
	}
	if len(second.spoken) != 0 {
		t.Fatalf("fallback ran despite success: %v", second.spoken)
	}
}

func TestPipelineFallsBackInOrder(t *testing.T) {
	first := &fakeStrategy{name: "network", err: errors.New("dial failed")}
	second := &fakeStrategy{name: "local"}
	p := NewPipeline(first, second)

	p.Speak(context.Background(), "hello")

	if len(first.spoken) != 1 || len(second.spoken) != 1 {
		t.Fatalf("spoken = %v / %v, want both attempted", first.spoken, second.spoken)
	}
	if second.spoken[0] != "hello" {
		t.Fatalf("fallback spoke %q", second.spoken[0])
	}
}

func TestPipelineAllFailIsNoOp(t *testing.T) {
	first := &fakeStrategy{name: "network", err: ErrNotConfigured}
	second := &fakeStrategy{name: "local", err: ErrUnavailable}
	p := NewPipeline(first, second)

	// Must absorb every failure without panicking or surfacing anything.
	p.Speak(context.Background(), "hello")

	if len(first.spoken) != 1 || len(second.spoken) != 1 {
		t.Fatalf("spoken = %v / %v", first.spoken, second.spoken)
	}
}

func TestPipelineSkipsEmptyText(t *testing.T) {
	first := &fakeStrategy{name: "network"}
	p := NewPipeline(first)

	p.Speak(context.Background(), "")

	if len(first.spoken) != 0 {
		t.Fatalf("empty text reached a strategy: %v", first.spoken)
	}
}

func TestPipelineWithNoStrategies(t *testing.T) {
	NewPipeline().Speak(context.Background(), "hello")
}
