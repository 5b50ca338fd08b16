package fetch

import (
	"context"
	"time"
)

// RetryConfig holds retry timing configuration.
type RetryConfig struct {
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// DefaultRetryConfig returns sensible defaults for retry timing.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		InitialDelay:  1 * time.Second,
		MaxDelay:      15 * time.Second,
		BackoffFactor: 2.0,
	}
}

// Fallback executes fn once per configuration variant, in order, until one
// succeeds. Between attempts it waits with exponential backoff. The number of
// variants is the number of attempts; the last error is returned once the
// list is exhausted. Extraction, stream download, and the relay all run
// through this one combinator with their own variant types.
func Fallback[C, T any](ctx context.Context, cfg RetryConfig, variants []C, fn func(context.Context, C) (T, error)) (T, error) {
	var lastErr error
	var zero T

	delay := cfg.InitialDelay

	for i, variant := range variants {
		result, err := fn(ctx, variant)
		if err == nil {
			return result, nil
		}
		lastErr = err

		// Don't wait after the last attempt
		if i == len(variants)-1 {
			break
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}

		delay = time.Duration(float64(delay) * cfg.BackoffFactor)
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}

	return zero, lastErr
}
