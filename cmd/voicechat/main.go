package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/bilalbaqar/fitness-coach/internal/asr"
	"github.com/bilalbaqar/fitness-coach/internal/athlete"
	"github.com/bilalbaqar/fitness-coach/internal/audio"
	"github.com/bilalbaqar/fitness-coach/internal/chat"
	"github.com/bilalbaqar/fitness-coach/internal/coach"
	"github.com/bilalbaqar/fitness-coach/internal/config"
	"github.com/bilalbaqar/fitness-coach/internal/tts"
)

// voicechat is a terminal client for the coaching assistant: type a question
// or press enter on "v" to dictate one. Voice input prefers the streaming
// relay and falls back to the local one-shot recognizer; spoken answers use
// the network synthesizer with local synthesis as the fallback.

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
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)

	cfg := config.Load()

	roster := athlete.SeedRoster()
	svc := coach.NewService(coach.NewEngine(nil), roster)

	store := chat.NewStore()
	sender := chat.NewSender(store, svc, buildSpeaker(cfg))
	sess := store.NewSession()

	listener := asr.NewPipeline(
		asr.NewStreamingBackend(cfg.ASRRelayURL, audio.NewMicSource()),
		asr.NewOneShotBackend(asr.NewExecRecognizer()),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	transcripts := make(chan string, 8)

	ask := func(text string) {
		answer, err := sender.Send(ctx, sess.ID, "", text)
		if err != nil {
			log.Printf("send: %v", err)
			return
		}
		fmt.Printf("\ncoach: %s\n", answer)
	}

	fmt.Println("Ask your coach a question. \"v\" to dictate, \"s\" to toggle speech, \"q\" to quit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "q":
			listener.Stop()
			return
		case "s":
			speaking, err := store.ToggleSpeaking(sess.ID)
			if err != nil {
				log.Printf("toggle speaking: %v", err)
				continue
			}
			fmt.Printf("speech %v\n", map[bool]string{true: "on", false: "off"}[speaking])
		case "v":
			listener.Listen(ctx, func(text string) {
				select {
				case transcripts <- text:
				default:
				}
			})
			if !listener.Listening() {
				fmt.Println("no recognizer available; type your question instead")
				continue
			}
			fmt.Printf("listening (%s)... press enter to stop\n", listener.Engine())
			if scanner.Scan() {
				listener.Stop()
			}
			// Ask with whatever transcripts arrived while listening.
			var parts []string
			for {
				select {
				case t := <-transcripts:
					parts = append(parts, t)
					continue
				default:
				}
				break
			}
			if q := strings.TrimSpace(strings.Join(parts, " ")); q != "" {
				fmt.Printf("you: %s\n", q)
				ask(q)
			} else {
				fmt.Println("heard nothing")
			}
		default:
			ask(line)
		}
	}
}
