package openstack

import (
	"context"
	"fmt"
	"time"
)

// TimeoutError reports that a bounded wait expired before the watched
// condition converged.
type TimeoutError struct {
	Op    string
	After time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out after %s waiting for %s", e.After, e.Op)
}

// waitFor polls cond every interval until it reports true. The condition is
// checked once immediately, then on every tick. Expiry of bound yields a
// TimeoutError; a condition error aborts the wait as-is.
func waitFor(ctx context.Context, op string, bound, interval time.Duration, cond func() (bool, error)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	deadline := time.After(bound)

	for {
		done, err := cond()
		if err != nil {
			return err
		}
		if done {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline:
			return &TimeoutError{Op: op, After: bound}
		case <-ticker.C:
		}
	}
}

// sleep pauses for d unless ctx is cancelled first.
func sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
