package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/bilalbaqar/fitness-coach/internal/tts"
)

// ttsRelay streams ElevenLabs synthesis back to the client as audio/mpeg.
// Browsers hit this endpoint so the API key never leaves the server.
func (s *Server) ttsRelay(c echo.Context) error {
	var text string
	if err := json.NewDecoder(c.Request().Body).Decode(&text); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "expected a JSON string body")
	}
	if s.cfg.ElevenLabsKey == "" {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "ElevenLabs not configured")
	}

	el := tts.NewElevenLabs(s.cfg.ElevenLabsKey, s.cfg.ElevenLabsVoiceID, s.cfg.ElevenLabsModel, nil)
	audio, err := el.Stream(c.Request().Context(), text, "mp3_44100_128")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	defer audio.Close()

	c.Response().Header().Set(echo.HeaderContentType, "audio/mpeg")
	c.Response().WriteHeader(http.StatusOK)
	_, err = io.Copy(c.Response(), audio)
	return err
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// The relay is same-service as the frontend in demos; no origin policy.
	CheckOrigin: func(*http.Request) bool { return true },
}

// asrRelay bridges a client websocket to the upstream transcription service:
// client binary PCM frames are forwarded upstream, upstream transcript events
// come back as {"text": ...}. Malformed upstream messages are dropped.
func (s *Server) asrRelay(c echo.Context) error {
	client, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer client.Close()

	if s.cfg.ASRUpstreamURL == "" {
		_ = client.WriteJSON(map[string]string{"error": "ASR upstream not configured"})
		return nil
	}

	header := http.Header{}
	if s.cfg.ASRUpstreamKey != "" {
		header.Set("xi-api-key", s.cfg.ASRUpstreamKey)
	}
	upstream, _, err := websocket.DefaultDialer.DialContext(c.Request().Context(), s.cfg.ASRUpstreamURL, header)
	if err != nil {
		log.Printf("asr relay: dial upstream: %v", err)
		_ = client.WriteJSON(map[string]string{"error": "ASR relay error"})
		return nil
	}
	defer upstream.Close()

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	// client -> upstream: raw audio frames
	go func() {
		defer cancel()
		for {
			mt, data, err := client.ReadMessage()
			if err != nil {
				_ = upstream.Close()
				return
			}
			if mt != websocket.BinaryMessage {
				continue
			}
			if err := upstream.WriteMessage(websocket.BinaryMessage, data); err != nil {
				return
			}
		}
	}()

	// upstream -> client: transcript events
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		_, data, err := upstream.ReadMessage()
		if err != nil {
			return nil
		}
		var payload struct {
			Transcript string `json:"transcript"`
			Text       string `json:"text"`
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			continue
		}
		text := payload.Transcript
		if text == "" {
			text = payload.Text
		}
		if text == "" {
			continue
		}
		if err := client.WriteJSON(map[string]string{"text": text}); err != nil {
			return nil
		}
	}
}
