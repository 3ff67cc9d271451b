package domain

import "context"

// Chat message roles understood by the completion capability.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// ChatMessage is one role-tagged message in a completion request.
type ChatMessage struct {
	Role    string
	Content string
}

// Completer produces a single completion for a list of role-tagged
// messages. Implementations wrap a concrete LLM client; callers must not
// depend on any particular provider.
type Completer interface {
	Complete(ctx context.Context, messages []ChatMessage, temperature float32) (string, error)
}
