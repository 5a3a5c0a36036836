package asr

import (
	"context"
	"log"
	"sync"
)

// Pipeline selects a recognition backend by fixed precedence: backends are
// attempted in order and the first successful Start wins. When every attempt
// fails (no endpoint configured, microphone denied, no local recognizer) the
// pipeline stays idle and the callback never fires; that silent failure is by
// design.
type Pipeline struct {
	backends []Backend

	mu        sync.Mutex
	active    Backend
	listening bool
}

func NewPipeline(backends ...Backend) *Pipeline {
	return &Pipeline{backends: backends}
}

// Listen starts the first backend that initializes successfully. Calling
// Listen while already listening is a no-op.
func (p *Pipeline) Listen(ctx context.Context, onText func(string)) {
	p.mu.Lock()
	if p.listening {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	for _, b := range p.backends {
		backend := b
		// Mark active before Start so a terminal event racing the return of
		// Start still resolves against the right backend.
		p.mu.Lock()
		p.active = backend
		p.listening = true
		p.mu.Unlock()
		err := backend.Start(ctx, onText, func() { p.finished(backend) })
		if err == nil {
			return
		}
		p.finished(backend)
		log.Printf("asr: %s: %v", backend.Name(), err)
	}
}

// Stop halts the active backend, if any, and always leaves the pipeline idle.
func (p *Pipeline) Stop() {
	p.mu.Lock()
	active := p.active
	p.active = nil
	p.listening = false
	p.mu.Unlock()
	if active != nil {
		active.Stop()
	}
}

// Listening reports whether a capture session is active.
func (p *Pipeline) Listening() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.listening
}

// Engine returns the name of the active backend, or "" when idle.
func (p *Pipeline) Engine() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active == nil {
		return ""
	}
	return p.active.Name()
}

// finished is the backend's terminal notification (socket close, one-shot
// result, Stop). A stale notification from a previously active backend is
// ignored.
func (p *Pipeline) finished(b Backend) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active == b {
		p.active = nil
		p.listening = false
	}
}
