package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// settings holds retry behaviour; adjusted through Options.
type settings struct {
	maxAttempts  int
	initialDelay time.Duration
	maxDelay     time.Duration
	multiplier   float64
}

// Option adjusts retry behaviour.
type Option func(*settings)

// WithMaxAttempts sets the total number of attempts, including the first.
func WithMaxAttempts(n int) Option {
	return func(s *settings) { s.maxAttempts = n }
}

// WithInitialDelay sets the delay before the second attempt.
func WithInitialDelay(d time.Duration) Option {
	return func(s *settings) { s.initialDelay = d }
}

// WithMaxDelay caps the backoff delay.
func WithMaxDelay(d time.Duration) Option {
	return func(s *settings) { s.maxDelay = d }
}

// WithMultiplier sets the backoff growth factor.
func WithMultiplier(m float64) Option {
	return func(s *settings) { s.multiplier = m }
}

// Do runs op until it succeeds, returns a permanent error, the attempt
// budget is spent, or ctx is cancelled. Delays grow exponentially between
// attempts. Errors wrapped with Permanent are returned immediately.
func Do(ctx context.Context, op func() error, opts ...Option) error {
	s := settings{
		maxAttempts:  4,
		initialDelay: time.Second,
		maxDelay:     30 * time.Second,
		multiplier:   2.0,
	}
	for _, opt := range opts {
		opt(&s)
	}

	delay := s.initialDelay
	var lastErr error

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		err := op()
		if err == nil {
			return nil
		}
		lastErr = err

		if IsPermanent(err) {
			return err
		}
		if attempt == s.maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("giving up after %d attempts: %w", attempt, ctx.Err())
		case <-time.After(delay):
		}
		delay = time.Duration(float64(delay) * s.multiplier)
		if delay > s.maxDelay {
			delay = s.maxDelay
		}
	}

	return fmt.Errorf("failed after %d attempts: %w", s.maxAttempts, lastErr)
}

// PermanentError marks an error that must not be retried.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }

func (e *PermanentError) Unwrap() error { return e.Err }

// Permanent wraps err so Do stops retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &PermanentError{Err: err}
}

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	var pe *PermanentError
	return errors.As(err, &pe)
}
