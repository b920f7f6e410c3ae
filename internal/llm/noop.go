package llm

import (
	"context"
	"errors"
)

// Noop is the engine used when no provider is configured. Every call reports
// the missing configuration.
type Noop struct{}

func NewNoop() *Noop { return &Noop{} }

func (n *Noop) Configured() bool { return false }

func (n *Noop) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	return "", errors.New("no AI engine configured")
}

func (n *Noop) TestConnection(ctx context.Context) (string, error) {
	return "", errors.New("no AI engine configured")
}
