package tts

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakePlayer struct {
	format string
	data   []byte
	err    error
}

func (f *fakePlayer) Play(_ context.Context, r io.Reader, format string) error {
	f.format = format
	f.data, _ = io.ReadAll(r)
	return f.err
}

func TestElevenLabsNotConfigured(t *testing.T) {
	e := NewElevenLabs("", "", "", nil)
	if _, err := e.Stream(context.Background(), "hi", "pcm_48000"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("Stream = %v, want ErrNotConfigured", err)
	}
}

func TestElevenLabsStream(t *testing.T) {
	audio := []byte{0x01, 0x02, 0x03, 0x04}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/text-to-speech/voice123/stream" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.Header.Get("xi-api-key") != "key" {
			t.Errorf("missing api key header")
		}
		q := r.URL.Query()
		if q.Get("output_format") != "pcm_48000" || q.Get("model_id") != "eleven_flash_v2_5" {
			t.Errorf("query = %v", q)
		}
		w.Write(audio)
	}))
	defer srv.Close()

	e := NewElevenLabs("key", "voice123", "", nil)
	e.BaseURL = srv.URL

	body, err := e.Stream(context.Background(), "hello", "pcm_48000")
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	defer body.Close()
	got, _ := io.ReadAll(body)
	if !bytes.Equal(got, audio) {
		t.Fatalf("audio = %v, want %v", got, audio)
	}
}

func TestElevenLabsStreamErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusUnauthorized)
	}))
	defer srv.Close()

	e := NewElevenLabs("key", "voice123", "", nil)
	e.BaseURL = srv.URL

	if _, err := e.Stream(context.Background(), "hello", "pcm_48000"); err == nil {
		t.Fatal("expected error for non-2xx status")
	}
}

func TestElevenLabsSpeakPlaysPCM(t *testing.T) {
	audio := []byte{0xAA, 0xBB}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(audio)
	}))
	defer srv.Close()

	player := &fakePlayer{}
	e := NewElevenLabs("key", "voice123", "", player)
	e.BaseURL = srv.URL

	if err := e.Speak(context.Background(), "hello"); err != nil {
		t.Fatalf("Speak: %v", err)
	}
	if player.format != FormatPCM48K {
		t.Fatalf("format = %q, want %q", player.format, FormatPCM48K)
	}
	if !bytes.Equal(player.data, audio) {
		t.Fatalf("played %v, want %v", player.data, audio)
	}
}

func TestElevenLabsSpeakSurfacesPlayerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte{0x00})
	}))
	defer srv.Close()

	player := &fakePlayer{err: ErrNoPlayer}
	e := NewElevenLabs("key", "voice123", "", player)
	e.BaseURL = srv.URL

	if err := e.Speak(context.Background(), "hello"); err == nil {
		t.Fatal("player failure should surface so the pipeline can fall back")
	}
}
