package asr

import (
	"context"
	"errors"
)

var (
	// ErrNotConfigured means the backend has no endpoint to reach; the
	// pipeline moves on to the next backend.
	ErrNotConfigured = errors.New("asr: backend not configured")
	ErrUnavailable   = errors.New("asr: backend unavailable")
)

// Backend is one speech-recognition strategy. Start returns once the backend
// is initialized; a Start error counts as a failed attempt and the pipeline
// tries the next backend. After a successful Start, a mid-session failure
// terminates the backend (onDone) without retrying into another one.
type Backend interface {
	Name() string
	// Start begins recognition. onText may fire multiple times per session
	// (interim and final transcripts). onDone fires exactly once when the
	// backend returns to idle, whether by Stop or by a terminal event.
	Start(ctx context.Context, onText func(string), onDone func()) error
	// Stop halts recognition and releases audio resources. Idempotent.
	Stop()
}
