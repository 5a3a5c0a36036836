package chat

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Personas selectable per session; new sessions start with the first.
var Personas = []string{"Calm mentor", "Tough coach", "Data analyst"}

var (
	ErrNoSession    = errors.New("chat: no such session")
	ErrEmptyPersona = errors.New("chat: persona set must not be empty")
	// ErrSendInFlight is returned when a send is attempted on a session whose
	// previous reveal has not finalized; sends are serialized per session.
	ErrSendInFlight = errors.New("chat: send already in flight for session")
)

// Message is one chat turn. Text is mutable only while the reveal of the last
// assistant message is in progress; it is immutable once finalized.
type Message struct {
	Role string    `json:"role"` // "user" | "assistant"
	Text string    `json:"text"`
	TS   time.Time `json:"ts"`
}

// Session owns its message history, persona selection and speech toggle.
type Session struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Personas []string `json:"persona"`
	Speaking bool     `json:"speaking"`

	messages []Message
	sending  bool
}

// Store holds all chat sessions. Every mutation goes through a named operation
// under one mutex so reveal writes and API calls cannot interleave on a
// session's message list.
type Store struct {
	mu       sync.Mutex
	sessions []*Session
	activeID string
}

func NewStore() *Store { return &Store{} }

// NewSession creates a session with a fresh unique id, the default persona,
// speech on and empty history, and makes it the active session.
func (s *Store) NewSession() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := &Session{
		ID:       uuid.NewString(),
		Title:    fmt.Sprintf("Session %d", len(s.sessions)+1),
		Personas: []string{Personas[0]},
		Speaking: true,
	}
	s.sessions = append(s.sessions, sess)
	s.activeID = sess.ID
	return sess
}

// Select makes the given session active.
func (s *Store) Select(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.find(id) == nil {
		return ErrNoSession
	}
	s.activeID = id
	return nil
}

// ActiveID returns the id of the active session, or "" when none exists.
func (s *Store) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// Sessions returns a snapshot of all sessions without their histories.
func (s *Store) Sessions() []Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, Session{ID: sess.ID, Title: sess.Title, Personas: append([]string(nil), sess.Personas...), Speaking: sess.Speaking})
	}
	return out
}

// Messages returns a snapshot of the session's message history.
func (s *Store) Messages(id string) ([]Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.find(id)
	if sess == nil {
		return nil, ErrNoSession
	}
	return append([]Message(nil), sess.messages...), nil
}

// ToggleSpeaking flips the session's speech-output toggle and returns the new
// value.
func (s *Store) ToggleSpeaking(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.find(id)
	if sess == nil {
		return false, ErrNoSession
	}
	sess.Speaking = !sess.Speaking
	return sess.Speaking, nil
}

// SetPersonas replaces the session's persona selection. An empty selection is
// rejected and leaves the prior set unchanged.
func (s *Store) SetPersonas(id string, personas []string) error {
	if len(personas) == 0 {
		return ErrEmptyPersona
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.find(id)
	if sess == nil {
		return ErrNoSession
	}
	sess.Personas = append([]string(nil), personas...)
	return nil
}

// find must be called with s.mu held.
func (s *Store) find(id string) *Session {
	for _, sess := range s.sessions {
		if sess.ID == id {
			return sess
		}
	}
	return nil
}

// beginSend gates one send per session, appends the user message and returns
// the session's personas and speaking flag. The gate stays held until endSend.
func (s *Store) beginSend(id, userText string) (*Session, []string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.find(id)
	if sess == nil {
		return nil, nil, false, ErrNoSession
	}
	if sess.sending {
		return nil, nil, false, ErrSendInFlight
	}
	sess.sending = true
	sess.messages = append(sess.messages, Message{Role: "user", Text: userText, TS: time.Now()})
	return sess, append([]string(nil), sess.Personas...), sess.Speaking, nil
}

// endSend releases the per-session send gate.
func (s *Store) endSend(sess *Session) {
	s.mu.Lock()
	sess.sending = false
	s.mu.Unlock()
}

// reserveAssistant appends the empty assistant slot the reveal will grow into.
func (s *Store) reserveAssistant(sess *Session) {
	s.mu.Lock()
	sess.messages = append(sess.messages, Message{Role: "assistant", TS: time.Now()})
	s.mu.Unlock()
}

// setLastText overwrites the text of the session's last message. The reveal
// loop addresses the session by identity, so switching the active session
// mid-reveal cannot redirect writes to another session.
func (s *Store) setLastText(sess *Session, text string) {
	s.mu.Lock()
	if n := len(sess.messages); n > 0 {
		sess.messages[n-1].Text = text
	}
	s.mu.Unlock()
}
