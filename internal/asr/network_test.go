package asr

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/bilalbaqar/fitness-coach/internal/audio"
)

type fakeSource struct {
	frames   chan []float32
	startErr error

	mu    sync.Mutex
	stops int
}

func newFakeSource() *fakeSource {
	return &fakeSource{frames: make(chan []float32, 4)}
}

func (f *fakeSource) Start(context.Context) (<-chan []float32, error) {
	if f.startErr != nil {
		return nil, f.startErr
	}
	return f.frames, nil
}

func (f *fakeSource) Stop() {
	f.mu.Lock()
	f.stops++
	f.mu.Unlock()
}

func (f *fakeSource) stopCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stops
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestStreamingBackendNotConfigured(t *testing.T) {
	b := NewStreamingBackend("", newFakeSource())
	err := b.Start(context.Background(), func(string) {}, func() {})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("Start = %v, want ErrNotConfigured", err)
	}
}

func TestStreamingBackendDialFailure(t *testing.T) {
	source := newFakeSource()
	b := NewStreamingBackend("ws://127.0.0.1:1/asr", source)
	if err := b.Start(context.Background(), func(string) {}, func() {}); err == nil {
		t.Fatal("expected dial error")
	}
	if source.stopCount() != 0 {
		t.Fatal("capture must not start when the dial fails")
	}
}

func TestStreamingBackendMicFailureClosesSocket(t *testing.T) {
	var upgrader websocket.Upgrader
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer c.Close()
		c.ReadMessage()
	}))
	defer srv.Close()

	source := newFakeSource()
	source.startErr = errors.New("mic busy")
	b := NewStreamingBackend(wsURL(srv), source)

	if err := b.Start(context.Background(), func(string) {}, func() {}); err == nil {
		t.Fatal("expected capture error to surface as an init failure")
	}
}

func TestStreamingBackendSession(t *testing.T) {
	wantPCM := audio.Float32ToPCM16LE([]float32{0.5, -0.5})

	var upgrader websocket.Upgrader
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer c.Close()

		mt, data, err := c.ReadMessage()
		if err != nil {
			return
		}
		if mt != websocket.BinaryMessage || string(data) != string(wantPCM) {
			t.Errorf("server got frame mt=%d data=%v", mt, data)
		}

		// Malformed and empty events must be ignored; texts delivered in order.
		c.WriteMessage(websocket.TextMessage, []byte("not json"))
		c.WriteMessage(websocket.TextMessage, []byte(`{"event":"meta"}`))
		c.WriteMessage(websocket.TextMessage, []byte(`{"text":"hello"}`))
		c.WriteMessage(websocket.TextMessage, []byte(`{"text":"world"}`))
	}))
	defer srv.Close()

	source := newFakeSource()
	b := NewStreamingBackend(wsURL(srv), source)

	texts := make(chan string, 4)
	done := make(chan struct{})
	err := b.Start(context.Background(),
		func(s string) { texts <- s },
		func() { close(done) },
	)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	source.frames <- []float32{0.5, -0.5}

	for _, want := range []string{"hello", "world"} {
		select {
		case got := <-texts:
			if got != want {
				t.Fatalf("transcript = %q, want %q", got, want)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %q", want)
		}
	}

	// Server closing the socket is terminal: exactly one onDone and the
	// capture graph is released.
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for terminal onDone")
	}
	if source.stopCount() != 1 {
		t.Fatalf("capture stopped %d times, want 1", source.stopCount())
	}
}

func TestStreamingBackendStopIdempotent(t *testing.T) {
	var upgrader websocket.Upgrader
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer c.Close()
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	source := newFakeSource()
	b := NewStreamingBackend(wsURL(srv), source)

	if err := b.Start(context.Background(), func(string) {}, func() {}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	b.Stop()
	b.Stop()
	if source.stopCount() != 1 {
		t.Fatalf("capture stopped %d times, want 1", source.stopCount())
	}
}
