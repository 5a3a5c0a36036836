package chat

import "context"

// Composer produces the final assistant answer for a user question. It must be
// deterministic and side-effect free; failures mean the question could not be
// bound to an athlete, not a computation error.
type Composer interface {
	Compose(question, athleteID string, personas []string) (string, error)
}

// Speaker voices a finalized answer. Implementations are best-effort and must
// never fail the caller.
type Speaker interface {
	Speak(ctx context.Context, text string)
}
