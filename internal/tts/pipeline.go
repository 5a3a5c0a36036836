package tts

import (
	"context"
	"log"
)

// Pipeline tries an ordered list of synthesis strategies until one succeeds.
// Speak is best-effort: every failure is absorbed as a silent capability
// downgrade and never surfaces to the caller. With no strategies, or when all
// fail, Speak is a no-op.
type Pipeline struct {
	strategies []Strategy
}

func NewPipeline(strategies ...Strategy) *Pipeline {
	return &Pipeline{strategies: strategies}
}

// Speak voices the text using the first strategy that succeeds.
func (p *Pipeline) Speak(ctx context.Context, text string) {
	if text == "" {
		return
	}
	for _, s := range p.strategies {
		err := s.Speak(ctx, text)
		if err == nil {
			return
		}
		log.Printf("tts: %s: %v", s.Name(), err)
	}
}
