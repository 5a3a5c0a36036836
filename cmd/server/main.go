package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bilalbaqar/fitness-coach/internal/athlete"
	"github.com/bilalbaqar/fitness-coach/internal/chat"
	"github.com/bilalbaqar/fitness-coach/internal/coach"
	"github.com/bilalbaqar/fitness-coach/internal/config"
	"github.com/bilalbaqar/fitness-coach/internal/httpserver"
	"github.com/bilalbaqar/fitness-coach/internal/tts"
)

// buildSpeaker assembles the ordered synthesis chain: the configured network
// provider first, local synthesis as the fallback.
func buildSpeaker(cfg config.Config) *tts.Pipeline {
	player := tts.ExecPlayer{}
	var network tts.Strategy
	if cfg.TTSProvider == "deepgram" {
		network = tts.NewDeepgram(cfg.DeepgramKey, cfg.DeepgramModel, player)
	} else {
		network = tts.NewElevenLabs(cfg.ElevenLabsKey, cfg.ElevenLabsVoiceID, cfg.ElevenLabsModel, player)
	}
	return tts.NewPipeline(network, tts.NewLocalSynth())
}

func main() {
	// Include sub-second precision in all log timestamps
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)

	cfg := config.Load()

	roster := athlete.SeedRoster()
	engine := coach.NewEngine(nil)
	svc := coach.NewService(engine, roster)

	store := chat.NewStore()
	sender := chat.NewSender(store, svc, buildSpeaker(cfg))

	srv := httpserver.New(cfg, store, sender, svc)

	server := &http.Server{
		Addr:              cfg.HTTPAddress,
		Handler:           srv.Echo,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in background
	serverErrors := make(chan error, 1)
	go func() {
		log.Printf("server listening on %s", cfg.HTTPAddress)
		serverErrors <- server.ListenAndServe()
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	case sig := <-sigChan:
		log.Printf("shutdown signal received: %v", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
		_ = server.Close()
	}
}
