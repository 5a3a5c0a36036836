package tts

import (
	"context"
	"os/exec"
	"sync"
)

// LocalSynth speaks through an installed system synthesizer (say or espeak).
// At most one local utterance is audible at a time: starting a new one cancels
// the previous. When no synthesizer is installed, Speak reports
// ErrUnavailable and the pipeline ends up a no-op.
type LocalSynth struct {
	bin string

	mu  sync.Mutex
	cmd *exec.Cmd
	gen uint64
}

func NewLocalSynth() *LocalSynth {
	for _, candidate := range []string{"say", "espeak-ng", "espeak"} {
		if p, err := exec.LookPath(candidate); err == nil {
			return &LocalSynth{bin: p}
		}
	}
	return &LocalSynth{}
}

func (l *LocalSynth) Name() string { return "local" }

// Available reports whether a system synthesizer was found.
func (l *LocalSynth) Available() bool { return l.bin != "" }

func (l *LocalSynth) Speak(ctx context.Context, text string) error {
	if l.bin == "" {
		return ErrUnavailable
	}

	l.mu.Lock()
	l.gen++
	gen := l.gen
	if l.cmd != nil && l.cmd.Process != nil {
		_ = l.cmd.Process.Kill()
	}
	cmd := exec.CommandContext(ctx, l.bin, text)
	if err := cmd.Start(); err != nil {
		l.mu.Unlock()
		return err
	}
	l.cmd = cmd
	l.mu.Unlock()

	err := cmd.Wait()

	l.mu.Lock()
	superseded := l.gen != gen
	if l.cmd == cmd {
		l.cmd = nil
	}
	l.mu.Unlock()
	if superseded {
		// Killed by a newer utterance; expected cancellation, not failure.
		return nil
	}
	return err
}
