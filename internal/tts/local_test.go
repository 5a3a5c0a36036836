package tts

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"
)

func TestLocalSynthUnavailable(t *testing.T) {
	l := &LocalSynth{}
	if l.Available() {
		t.Fatal("zero-value synth should be unavailable")
	}
	if err := l.Speak(context.Background(), "hi"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Speak = %v, want ErrUnavailable", err)
	}
}

// A newer utterance kills the current one; the superseded Speak reports nil
// because the cancellation was requested, not a failure.
func TestLocalSynthSupersede(t *testing.T) {
	bin, err := exec.LookPath("sleep")
	if err != nil {
		t.Skip("sleep not installed")
	}
	l := &LocalSynth{bin: bin}

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- l.Speak(context.Background(), "5")
	}()

	// Let the first utterance start before superseding it.
	time.Sleep(50 * time.Millisecond)
	if err := l.Speak(context.Background(), "0.01"); err != nil {
		t.Fatalf("second Speak: %v", err)
	}

	select {
	case err := <-firstDone:
		if err != nil {
			t.Fatalf("superseded Speak = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("superseded utterance did not return")
	}
}

func TestLocalSynthReportsRealFailures(t *testing.T) {
	l := &LocalSynth{bin: "/bin/false"}
	if err := l.Speak(context.Background(), "hi"); err == nil {
		t.Fatal("failing synth binary should surface an error")
	}
}
