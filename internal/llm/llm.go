package llm

import (
	"context"
	"errors"
)

// Completer sends a single prompt to a model and returns its raw text reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderClient is used when no provider is configured.
type PlaceholderClient struct{}

// Complete returns ErrNotImplemented.
func (PlaceholderClient) Complete(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrNotImplemented
}

// IsConfigured reports whether c can reach a real provider.
func IsConfigured(c Completer) bool {
	if c == nil {
		return false
	}
	_, placeholder := c.(PlaceholderClient)
	return !placeholder
}
