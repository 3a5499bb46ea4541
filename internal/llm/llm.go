// Package llm abstracts the chat-completion service behind a minimal interface.
// It intentionally hides concrete providers so the generation logic can be
// tested with a fake and so OpenAI-compatible endpoints are interchangeable.
package llm

import "context"

// Message roles understood by chat-completion APIs.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one entry of a chat-completion prompt.
type Message struct {
	Role    string
	Content string
}

// Completer issues a single request/response call to a completion service.
// One call, no retries, no streaming; errors carry the completion_failed kind.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}
