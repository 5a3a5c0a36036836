package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// ElevenLabs synthesizes speech through the ElevenLabs HTTP streaming endpoint
// and plays the returned PCM as it arrives. The raw Stream method also backs
// the /api/voice/tts relay.
type ElevenLabs struct {
	APIKey  string
	VoiceID string
	Model   string
	BaseURL string // overridable for tests; default https://api.elevenlabs.io
	player  Player
}

func NewElevenLabs(apiKey, voiceID, model string, player Player) *ElevenLabs {
	if model == "" {
		model = "eleven_flash_v2_5"
	}
	return &ElevenLabs{APIKey: apiKey, VoiceID: voiceID, Model: model, BaseURL: "https://api.elevenlabs.io", player: player}
}

func (e *ElevenLabs) Name() string { return "elevenlabs" }

// Stream requests synthesis of text in the given output format ("pcm_48000"
// or "mp3_44100_128") and returns the audio byte stream. The caller closes
// the reader.
func (e *ElevenLabs) Stream(ctx context.Context, text, outputFormat string) (io.ReadCloser, error) {
	if e.APIKey == "" || e.VoiceID == "" {
		return nil, ErrNotConfigured
	}

	q := url.Values{}
	q.Set("model_id", e.Model)
	q.Set("output_format", outputFormat)
	q.Set("optimize_streaming_latency", "2")
	endpoint := e.BaseURL + "/v1/text-to-speech/" + e.VoiceID + "/stream?" + q.Encode()

	body := map[string]any{
		"model_id": e.Model,
		"text":     text,
		"voice_settings": map[string]any{
			"stability":        0.4,
			"similarity_boost": 0.7,
		},
	}
	buf, _ := json.Marshal(body)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	req.Header.Set("xi-api-key", e.APIKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 0}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: stream request: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("elevenlabs: status=%d body=%s", resp.StatusCode, string(b))
	}
	return resp.Body, nil
}

// Speak pipes the streamed PCM straight to the player. Any HTTP or playback
// failure is returned so the pipeline can fall back.
func (e *ElevenLabs) Speak(ctx context.Context, text string) error {
	audio, err := e.Stream(ctx, text, "pcm_48000")
	if err != nil {
		return err
	}
	defer audio.Close()
	if err := e.player.Play(ctx, audio, FormatPCM48K); err != nil {
		return fmt.Errorf("elevenlabs: play: %w", err)
	}
	return nil
}
