// Package llm is the boundary to the language-model backend. The rest of
// the portal only sees Completer.
package llm

import (
	"context"
	"errors"
)

var (
	ErrUnconfigured = errors.New("llm: backend is not configured")
	// ErrNoChoices is returned when the backend answers without a reply.
	ErrNoChoices = errors.New("llm: response contained no choices")
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string
	Content string
}

type CompletionRequest struct {
	// Model overrides the backend default when set.
	Model       string
	Messages    []Message
	Temperature float32 // 0 uses the backend default
}

// Usage is the token accounting reported by the backend. Backends that do
// not report usage leave it zero.
type Usage struct {
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
}

type Completion struct {
	Text  string
	Model string
	Usage Usage
}

// Completer produces one assistant reply for a conversation.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (Completion, error)
	// Configured reports whether Complete can succeed at all, e.g. an API key
	// is present.
	Configured() bool
}
