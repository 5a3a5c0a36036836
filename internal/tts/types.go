package tts

import (
	"context"
	"errors"
	"io"
)

// Audio formats handed to a Player.
const (
	FormatMP3    = "mp3"
	FormatPCM48K = "pcm48k" // s16le mono 48kHz
)

var (
	// ErrNotConfigured means a strategy is missing the credentials or endpoint
	// it needs; the pipeline treats it like any other failure and falls back.
	ErrNotConfigured = errors.New("tts: strategy not configured")
	ErrNoPlayer      = errors.New("tts: no audio player available")
	ErrUnavailable   = errors.New("tts: local synthesis unavailable")
)

// Strategy is one way of turning text into audible speech. The pipeline tries
// strategies in order; the first success wins.
type Strategy interface {
	Name() string
	Speak(ctx context.Context, text string) error
}

// Player renders an audio byte stream on the system output device.
type Player interface {
	Play(ctx context.Context, audio io.Reader, format string) error
}
