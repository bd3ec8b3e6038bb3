package llm

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Every error returned by the gateway matches exactly
// one of them with errors.Is. Messages are safe to show to visitors.
var (
	ErrNotConfigured   = errors.New("The AI assistant is not configured.")
	ErrUnavailable     = errors.New("The AI assistant is currently unavailable.")
	ErrInvalidResponse = errors.New("Invalid response format from the AI assistant.")
	ErrInvalidJSON     = errors.New("The AI assistant returned invalid JSON.")
)

// Error carries the kind plus the visitor-safe detail of a failure. The
// underlying cause is logged, not kept.
type Error struct {
	Kind   error
	Status int    // HTTP status for ErrUnavailable, 0 for transport failures
	Reason string // parse failure reason for ErrInvalidJSON
}

func (e *Error) Error() string {
	switch {
	case e.Kind == ErrUnavailable && e.Status != 0:
		return fmt.Sprintf("The AI assistant is currently unavailable due to an API error (status: %d).", e.Status)
	case e.Kind == ErrInvalidJSON && e.Reason != "":
		return fmt.Sprintf("The AI assistant returned invalid JSON. (Reason: %s)", e.Reason)
	default:
		return e.Kind.Error()
	}
}

func (e *Error) Unwrap() error {
	return e.Kind
}
