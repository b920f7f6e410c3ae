package interfaces

import "context"

// Engine sends one prompt to a completion API and returns the raw text reply.
type Engine interface {
	// Complete blocks until the remote service responds or ctx is done.
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
	// TestConnection sends a short probe and returns the reply text.
	TestConnection(ctx context.Context) (string, error)
	// Configured reports whether the engine has a usable credential.
	Configured() bool
}
