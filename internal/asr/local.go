package asr

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/bilalbaqar/fitness-coach/internal/audio"
)

// Recognizer is a local single-utterance recognition capability.
type Recognizer interface {
	Available() bool
	RecognizeOnce(ctx context.Context) (string, error)
}

// OneShotBackend wraps a local recognizer: it captures a single utterance, at
// most one callback fires with the transcript, then the backend stops itself.
type OneShotBackend struct {
	rec Recognizer

	mu     sync.Mutex
	cancel context.CancelFunc
}

func NewOneShotBackend(rec Recognizer) *OneShotBackend {
	return &OneShotBackend{rec: rec}
}

func (b *OneShotBackend) Name() string { return "local" }

func (b *OneShotBackend) Start(ctx context.Context, onText func(string), onDone func()) error {
	if b.rec == nil || !b.rec.Available() {
		return ErrUnavailable
	}

	ctx, cancel := context.WithCancel(ctx)
	b.mu.Lock()
	b.cancel = cancel
	b.mu.Unlock()

	go func() {
		defer func() {
			b.mu.Lock()
			b.cancel = nil
			b.mu.Unlock()
			cancel()
			onDone()
		}()
		text, err := b.rec.RecognizeOnce(ctx)
		if err != nil || ctx.Err() != nil {
			return
		}
		if text != "" {
			onText(text)
		}
	}()
	return nil
}

func (b *OneShotBackend) Stop() {
	b.mu.Lock()
	cancel := b.cancel
	b.cancel = nil
	b.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// ExecRecognizer records a short window of microphone audio and transcribes
// it with an installed whisper binary. Both the recorder and the transcriber
// are capability-gated; when either is missing the local backend never
// starts.
type ExecRecognizer struct {
	whisperBin string
	// CaptureSeconds bounds the single-utterance recording window.
	CaptureSeconds int
}

func NewExecRecognizer() *ExecRecognizer {
	r := &ExecRecognizer{CaptureSeconds: 6}
	for _, candidate := range []string{"whisper-cli", "whisper-cpp", "whisper"} {
		if p, err := exec.LookPath(candidate); err == nil {
			r.whisperBin = p
			break
		}
	}
	return r
}

func (r *ExecRecognizer) Available() bool {
	if r.whisperBin == "" {
		return false
	}
	if _, err := exec.LookPath("arecord"); err == nil {
		return true
	}
	_, err := exec.LookPath("rec")
	return err == nil
}

// recordCommand builds a single-utterance recording into path, bounded to the
// given number of seconds.
func recordCommand(ctx context.Context, seconds int, path string) (*exec.Cmd, error) {
	rate := strconv.Itoa(audio.SampleRate)
	if p, err := exec.LookPath("arecord"); err == nil {
		return exec.CommandContext(ctx, p, "-q", "-f", "S16_LE", "-r", rate, "-c", "1", "-d", strconv.Itoa(seconds), path), nil
	}
	if p, err := exec.LookPath("rec"); err == nil {
		return exec.CommandContext(ctx, p, "-q", "-r", rate, "-c", "1", "-b", "16", path, "trim", "0", strconv.Itoa(seconds)), nil
	}
	return nil, fmt.Errorf("asr: no capture binary found")
}

// RecognizeOnce records CaptureSeconds of audio to a temp wav and runs the
// whisper binary over it, returning trimmed stdout as the transcript.
func (r *ExecRecognizer) RecognizeOnce(ctx context.Context) (string, error) {
	if r.whisperBin == "" {
		return "", ErrUnavailable
	}

	f, err := os.CreateTemp("", "asr-*.wav")
	if err != nil {
		return "", err
	}
	wav := f.Name()
	f.Close()
	defer os.Remove(wav)

	cmd, err := recordCommand(ctx, r.CaptureSeconds, wav)
	if err != nil {
		return "", err
	}
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("asr: record: %w", err)
	}

	out, err := exec.CommandContext(ctx, r.whisperBin, "-nt", "-np", "-f", wav).Output()
	if err != nil {
		return "", fmt.Errorf("asr: transcribe: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
