package chat

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Reveal pacing: fixed-size character chunks at a fixed interval, mirroring
// perceived live generation. Chunks are never skipped or reordered.
const (
	revealChunk    = 4
	revealInterval = 8 * time.Millisecond
)

var ErrEmptyMessage = errors.New("chat: empty message")

// Sender runs the send state machine for a session: append user message,
// compose the answer, reserve the assistant slot, reveal the answer in growing
// prefixes, finalize, then hand the text to the speaker when the session has
// speech enabled. Sends on the same session are serialized; a second send
// while one is revealing returns ErrSendInFlight.
type Sender struct {
	store    *Store
	composer Composer
	speaker  Speaker

	// Interval overrides the reveal pacing; tests shrink it.
	Interval time.Duration
}

func NewSender(store *Store, composer Composer, speaker Speaker) *Sender {
	return &Sender{store: store, composer: composer, speaker: speaker, Interval: revealInterval}
}

// Send processes one user question for the given session and returns the
// finalized answer. The athleteID binds the question to a roster athlete; an
// empty id selects the default.
func (s *Sender) Send(ctx context.Context, sessionID, athleteID, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyMessage
	}

	sess, personas, speaking, err := s.store.beginSend(sessionID, text)
	if err != nil {
		return "", err
	}
	defer s.store.endSend(sess)

	answer, err := s.composer.Compose(text, athleteID, personas)
	if err != nil {
		return "", err
	}

	s.store.reserveAssistant(sess)
	s.reveal(ctx, sess, answer)

	if speaking && s.speaker != nil {
		s.speaker.Speak(ctx, answer)
	}
	return answer, nil
}

// reveal writes monotonically growing prefixes of the answer into the
// session's last message, then commits the full string. Prefixes advance by
// whole runes so a multi-byte character is never split mid-reveal. The loop
// always finishes with the final commit, even when the context is cancelled.
func (s *Sender) reveal(ctx context.Context, sess *Session, answer string) {
	runes := []rune(answer)
	for i := 0; i < len(runes); i += revealChunk {
		select {
		case <-ctx.Done():
			s.store.setLastText(sess, answer)
			return
		case <-time.After(s.Interval):
		}
		s.store.setLastText(sess, string(runes[:i]))
	}
	s.store.setLastText(sess, answer)
}
