package asr

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeRecognizer struct {
	available bool
	text      string
	err       error
	block     bool
}

func (f *fakeRecognizer) Available() bool { return f.available }

func (f *fakeRecognizer) RecognizeOnce(ctx context.Context) (string, error) {
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.text, f.err
}

func TestOneShotBackendUnavailable(t *testing.T) {
	b := NewOneShotBackend(&fakeRecognizer{available: false})
	err := b.Start(context.Background(), func(string) {}, func() {})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Start = %v, want ErrUnavailable", err)
	}

	b = NewOneShotBackend(nil)
	if err := b.Start(context.Background(), func(string) {}, func() {}); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("nil recognizer Start = %v, want ErrUnavailable", err)
	}
}

func TestOneShotBackendDeliversOneTranscript(t *testing.T) {
	b := NewOneShotBackend(&fakeRecognizer{available: true, text: "run faster"})

	texts := make(chan string, 2)
	done := make(chan struct{})
	err := b.Start(context.Background(),
		func(s string) { texts <- s },
		func() { close(done) },
	)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	select {
	case got := <-texts:
		if got != "run faster" {
			t.Fatalf("transcript = %q", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for transcript")
	}
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("one-shot backend did not finish")
	}
	if len(texts) != 0 {
		t.Fatal("one-shot backend delivered more than one transcript")
	}
}

func TestOneShotBackendEmptyAndFailedResults(t *testing.T) {
	for _, rec := range []*fakeRecognizer{
		{available: true, text: ""},
		{available: true, err: errors.New("no speech detected")},
	} {
		b := NewOneShotBackend(rec)
		texts := make(chan string, 1)
		done := make(chan struct{})
		if err := b.Start(context.Background(), func(s string) { texts <- s }, func() { close(done) }); err != nil {
			t.Fatalf("Start: %v", err)
		}
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("backend did not finish")
		}
		if len(texts) != 0 {
			t.Fatalf("no transcript expected, got %q", <-texts)
		}
	}
}

func TestOneShotBackendStopCancelsCapture(t *testing.T) {
	b := NewOneShotBackend(&fakeRecognizer{available: true, block: true})

	texts := make(chan string, 1)
	done := make(chan struct{})
	if err := b.Start(context.Background(), func(s string) { texts <- s }, func() { close(done) }); err != nil {
		t.Fatalf("Start: %v", err)
	}

	b.Stop()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not terminate the capture")
	}
	if len(texts) != 0 {
		t.Fatal("cancelled capture should not deliver a transcript")
	}

	// Stop after completion is harmless.
	b.Stop()
}

func TestExecRecognizerWithoutBinary(t *testing.T) {
	r := &ExecRecognizer{CaptureSeconds: 1}
	if r.Available() {
		t.Fatal("recognizer without a whisper binary should be unavailable")
	}
	if _, err := r.RecognizeOnce(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("RecognizeOnce = %v, want ErrUnavailable", err)
	}
}
