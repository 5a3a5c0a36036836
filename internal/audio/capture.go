package audio

import (
	"context"
	"fmt"
	"io"
	"log"
	"os/exec"
	"strconv"
	"sync"
)

// MicSource captures microphone audio through a system recorder binary
// (arecord, rec or sox) emitting raw s16le mono at SampleRate on stdout.
// Capability-gated: when no recorder is installed, Start fails and callers
// fall through to their next backend.
type MicSource struct {
	mu     sync.Mutex
	cmd    *exec.Cmd
	cancel context.CancelFunc
	closed bool
}

func NewMicSource() *MicSource { return &MicSource{} }

// recorderCommand finds an installed recorder and returns the binary plus the
// args producing raw s16le mono 16 kHz on stdout.
func recorderCommand() (string, []string, error) {
	rate := strconv.Itoa(SampleRate)
	if p, err := exec.LookPath("arecord"); err == nil {
		return p, []string{"-q", "-f", "S16_LE", "-r", rate, "-c", "1", "-t", "raw"}, nil
	}
	if p, err := exec.LookPath("rec"); err == nil {
		return p, []string{"-q", "-t", "raw", "-b", "16", "-e", "signed-integer", "-r", rate, "-c", "1", "-"}, nil
	}
	if p, err := exec.LookPath("sox"); err == nil {
		return p, []string{"-q", "-d", "-t", "raw", "-b", "16", "-e", "signed-integer", "-r", rate, "-c", "1", "-"}, nil
	}
	return "", nil, fmt.Errorf("audio: no capture binary found (arecord/rec/sox)")
}

// Start launches the recorder and streams ~128ms float frames on a bounded
// channel. Frames are dropped when the consumer lags, matching the drop
// policy of the send loop downstream.
func (m *MicSource) Start(ctx context.Context) (<-chan []float32, error) {
	bin, args, err := recorderCommand()
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cmd != nil {
		return nil, fmt.Errorf("audio: capture already active")
	}

	ctx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(ctx, bin, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("audio: start %s: %w", bin, err)
	}
	m.cmd = cmd
	m.cancel = cancel
	m.closed = false

	frames := make(chan []float32, 32)
	go func() {
		defer close(frames)
		defer func() { _ = cmd.Wait() }()
		buf := make([]byte, 4096)
		for {
			n, rerr := io.ReadFull(stdout, buf)
			if n > 0 {
				frame := PCM16LEToFloat32(buf[:n])
				select {
				case frames <- frame:
				default:
					log.Println("audio: frame buffer full, dropping frame")
				}
			}
			if rerr != nil {
				return
			}
		}
	}()
	return frames, nil
}

// Stop kills the recorder and releases the device. Safe to call repeatedly or
// with no capture active.
func (m *MicSource) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || m.cmd == nil {
		m.closed = true
		return
	}
	m.cancel()
	m.cmd = nil
	m.cancel = nil
	m.closed = true
}
