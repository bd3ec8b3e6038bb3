package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimitedProvider wraps a Completer with a token bucket rate limiter.
type RateLimitedProvider struct {
	provider Completer
	limiter  *rate.Limiter
}

// NewRateLimitedProvider wraps the given provider with a rate limiter
// that allows at most rpm requests per minute, with a burst of rpm.
// A non-positive rpm disables limiting.
func NewRateLimitedProvider(provider Completer, rpm int) Completer {
	if rpm <= 0 {
		return provider
	}
	return &RateLimitedProvider{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(float64(rpm)/60.0), rpm),
	}
}

func (r *RateLimitedProvider) Name() string {
	return r.provider.Name()
}

func (r *RateLimitedProvider) Complete(ctx context.Context, prompt string) (string, error) {
	if err := r.wait(ctx); err != nil {
		return "", err
	}
	return r.provider.Complete(ctx, prompt)
}

func (r *RateLimitedProvider) CompleteStructured(ctx context.Context, prompt string, schema any, out any) error {
	if err := r.wait(ctx); err != nil {
		return err
	}
	return r.provider.CompleteStructured(ctx, prompt, schema, out)
}

func (r *RateLimitedProvider) wait(ctx context.Context) error {
	if err := r.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("waiting for rate limiter: %w", ctxErr)
		}
		// Wait fails early when the next token lies past the deadline.
		return fmt.Errorf("waiting for rate limiter: %w: %v", context.DeadlineExceeded, err)
	}
	return nil
}
