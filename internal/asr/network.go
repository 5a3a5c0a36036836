package asr

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/bilalbaqar/fitness-coach/internal/audio"
)

// transcriptEvent is the relay's message shape. Any decodable message carrying
// a text field is a transcript; everything else is ignored.
type transcriptEvent struct {
	Text string `json:"text"`
}

// StreamingBackend streams microphone audio to a transcription relay over a
// websocket: binary PCM16LE 16kHz mono frames out, JSON transcript events in.
// A terminal socket event releases the capture graph and returns the backend
// to idle; it does not retry into another backend.
type StreamingBackend struct {
	url    string
	source audio.Source

	mu       sync.Mutex
	conn     *websocket.Conn
	stopCh   chan struct{}
	teardown sync.Once
	active   bool
}

func NewStreamingBackend(url string, source audio.Source) *StreamingBackend {
	return &StreamingBackend{url: url, source: source}
}

func (b *StreamingBackend) Name() string { return "network" }

// Start dials the relay and acquires the capture device. Either failure is an
// init failure: everything acquired so far is released and the error returned
// so the pipeline can fall back.
func (b *StreamingBackend) Start(ctx context.Context, onText func(string), onDone func()) error {
	if b.url == "" {
		return ErrNotConfigured
	}

	b.mu.Lock()
	if b.active {
		b.mu.Unlock()
		return ErrUnavailable
	}
	b.mu.Unlock()

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, b.url, nil)
	if err != nil {
		return err
	}

	frames, err := b.source.Start(ctx)
	if err != nil {
		_ = conn.Close()
		return err
	}

	b.mu.Lock()
	b.conn = conn
	b.stopCh = make(chan struct{})
	b.teardown = sync.Once{}
	b.active = true
	stopCh := b.stopCh
	b.mu.Unlock()

	go b.sendFrames(conn, frames, stopCh, onDone)
	go b.readEvents(conn, onText, onDone)
	return nil
}

// sendFrames converts captured float samples to PCM16LE and streams them as
// binary messages while the socket is open.
func (b *StreamingBackend) sendFrames(conn *websocket.Conn, frames <-chan []float32, stopCh chan struct{}, onDone func()) {
	for {
		select {
		case <-stopCh:
			return
		case frame, ok := <-frames:
			if !ok {
				// Capture ended; the session is over.
				b.release(onDone)
				return
			}
			pcm := audio.Float32ToPCM16LE(frame)
			if err := conn.WriteMessage(websocket.BinaryMessage, pcm); err != nil {
				log.Printf("asr: send audio: %v", err)
				b.release(onDone)
				return
			}
		}
	}
}

// readEvents parses incoming socket messages as transcript events. Malformed
// messages are ignored; a read error is terminal.
func (b *StreamingBackend) readEvents(conn *websocket.Conn, onText func(string), onDone func()) {
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			b.release(onDone)
			return
		}
		var ev transcriptEvent
		if err := json.Unmarshal(message, &ev); err != nil {
			continue
		}
		if ev.Text != "" {
			onText(ev.Text)
		}
	}
}

// Stop closes the socket and releases capture resources. Idempotent.
func (b *StreamingBackend) Stop() { b.release(nil) }

// release tears the session down exactly once: stop capture, close the
// socket, signal the send loop, notify the pipeline.
func (b *StreamingBackend) release(onDone func()) {
	b.mu.Lock()
	conn := b.conn
	stopCh := b.stopCh
	once := &b.teardown
	b.mu.Unlock()

	once.Do(func() {
		b.source.Stop()
		if conn != nil {
			_ = conn.Close()
		}
		if stopCh != nil {
			close(stopCh)
		}
		b.mu.Lock()
		b.conn = nil
		b.stopCh = nil
		b.active = false
		b.mu.Unlock()
		if onDone != nil {
			onDone()
		}
	})
}
