package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// policy bounds a retried operation.
type policy struct {
	maxRetries   int
	initialDelay time.Duration
	maxDelay     time.Duration
	multiplier   float64
}

func defaultPolicy() policy {
	return policy{
		maxRetries:   5,
		initialDelay: 1 * time.Second,
		maxDelay:     30 * time.Second,
		multiplier:   2.0,
	}
}

// Option adjusts the retry policy.
type Option func(*policy)

// WithMaxRetries sets the maximum number of retries after the first attempt.
func WithMaxRetries(n int) Option {
	return func(p *policy) { p.maxRetries = n }
}

// WithInitialDelay sets the delay before the first retry.
func WithInitialDelay(d time.Duration) Option {
	return func(p *policy) { p.initialDelay = d }
}

// WithMaxDelay caps the delay between retries.
func WithMaxDelay(d time.Duration) Option {
	return func(p *policy) { p.maxDelay = d }
}

// WithMultiplier sets the backoff growth factor.
func WithMultiplier(m float64) Option {
	return func(p *policy) { p.multiplier = m }
}

// WithExponentialBackoff runs the operation until it succeeds, the retry
// budget is exhausted, or the context is cancelled. The delay between
// attempts starts at the initial delay and grows by the multiplier up to the
// cap. Errors marked with Fatal stop the loop immediately.
func WithExponentialBackoff(ctx context.Context, operation func() error, opts ...Option) error {
	p := defaultPolicy()
	for _, opt := range opts {
		opt(&p)
	}

	var lastErr error
	delay := p.initialDelay

	for attempt := 0; ; attempt++ {
		lastErr = operation()
		if lastErr == nil {
			return nil
		}
		if IsFatal(lastErr) {
			return fmt.Errorf("fatal error (not retrying): %w", lastErr)
		}
		if attempt >= p.maxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled after %d attempts: %w", attempt+1, ctx.Err())
		case <-time.After(delay):
		}

		delay = time.Duration(float64(delay) * p.multiplier)
		if delay > p.maxDelay {
			delay = p.maxDelay
		}
	}

	return fmt.Errorf("operation failed after %d retries: %w", p.maxRetries+1, lastErr)
}

// FatalError marks an error as non-retryable.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string { return e.Err.Error() }

func (e *FatalError) Unwrap() error { return e.Err }

// Fatal wraps an error so WithExponentialBackoff gives up on it immediately.
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return &FatalError{Err: err}
}

// IsFatal reports whether the error chain contains a FatalError.
func IsFatal(err error) bool {
	var fatalErr *FatalError
	return errors.As(err, &fatalErr)
}
