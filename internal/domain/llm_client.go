package domain

import "context"

// Roles for chat messages.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one role-tagged entry in a chat exchange.
type Message struct {
	Role    string
	Content string
}

// ChatClient defines the capability to send role-tagged messages to an LLM
// and receive the generated text.
type ChatClient interface {
	Chat(ctx context.Context, messages []Message, temperature float64) (string, error)
	Version() string
}
