package audio

import "context"

// SampleRate is the capture rate expected by the transcription backends.
const SampleRate = 16000

// Source yields captured audio as discrete float mono frames on a bounded
// channel, decoupling device callback timing from downstream socket
// backpressure. The channel closes when capture ends.
type Source interface {
	// Start begins capture. It returns an error when the capture device cannot
	// be acquired (treated as a failed backend attempt by callers).
	Start(ctx context.Context) (<-chan []float32, error)
	// Stop halts capture and releases the device. It is idempotent.
	Stop()
}
