// Package llm is the gateway to the Gemini generative-language API.
package llm

import "context"

// Completer is the contract of the generative-AI gateway.
type Completer interface {
	// Complete sends a free-text prompt and returns the first candidate's
	// first text part.
	Complete(ctx context.Context, prompt string) (string, error)
	// CompleteStructured asks for a JSON response, optionally constrained by
	// schema, and decodes it into out.
	CompleteStructured(ctx context.Context, prompt string, schema any, out any) error
	// Name returns the name of this provider.
	Name() string
}
