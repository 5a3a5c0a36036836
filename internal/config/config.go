package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration. Absence of a voice endpoint or key
// is the signal to use the corresponding local fallback, not an error.
type Config struct {
	HTTPAddress string

	// Speech synthesis (network path; local synth is the fallback).
	TTSProvider       string // "elevenlabs" (default) or "deepgram"
	ElevenLabsKey     string
	ElevenLabsVoiceID string
	ElevenLabsModel   string
	DeepgramKey       string
	DeepgramModel     string

	// ASRRelayURL is the websocket relay the voice-input pipeline dials.
	ASRRelayURL string
	// ASRUpstreamURL/Key are what the relay endpoint itself dials.
	ASRUpstreamURL string
	ASRUpstreamKey string
}

// Load reads environment variables and returns Config with sane defaults.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file")
	}

	addr := os.Getenv("HTTP_ADDRESS")
	if addr == "" {
		addr = ":8080"
	}

	provider := os.Getenv("TTS_PROVIDER")
	if provider == "" {
		provider = "elevenlabs"
	}

	elevenKey := os.Getenv("ELEVENLABS_API_KEY")
	if elevenKey == "" {
		log.Println("Warning: ELEVENLABS_API_KEY not set - network TTS will fall back to local synthesis")
	}
	voiceID := os.Getenv("ELEVENLABS_VOICE_ID")
	if voiceID == "" {
		voiceID = "21m00Tcm4TlvDq8ikWAM"
	}
	elevenModel := os.Getenv("ELEVENLABS_MODEL")

	deepgramKey := os.Getenv("DEEPGRAM_API_KEY")
	deepgramModel := os.Getenv("DEEPGRAM_MODEL")

	relayURL := os.Getenv("ASR_RELAY_URL")
	if relayURL == "" {
		log.Println("Warning: ASR_RELAY_URL not set - voice input will use the local recognizer if present")
	}
	upstreamURL := os.Getenv("ASR_UPSTREAM_URL")
	upstreamKey := os.Getenv("ASR_UPSTREAM_KEY")
	if upstreamURL == "" {
		log.Println("Warning: ASR_UPSTREAM_URL not set - the /api/voice/asr relay is disabled")
	}

	log.Printf("config: HTTP_ADDRESS=%s", addr)
	return Config{
		HTTPAddress:       addr,
		TTSProvider:       provider,
		ElevenLabsKey:     elevenKey,
		ElevenLabsVoiceID: voiceID,
		ElevenLabsModel:   elevenModel,
		DeepgramKey:       deepgramKey,
		DeepgramModel:     deepgramModel,
		ASRRelayURL:       relayURL,
		ASRUpstreamURL:    upstreamURL,
		ASRUpstreamKey:    upstreamKey,
	}
}
