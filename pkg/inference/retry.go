package inference

import (
	"context"
	"fmt"
	"time"

	"github.com/codeGROOVE-dev/retry"
)

// Policy is a bounded retry loop with a fixed delay between attempts.
type Policy struct {
	Attempts uint
	Delay    time.Duration
}

// DefaultPolicy tries three times, two seconds apart.
func DefaultPolicy() Policy {
	return Policy{Attempts: 3, Delay: 2 * time.Second}
}

// Do runs fn until it succeeds, returns an error wrapped with retry.Unrecoverable,
// or the attempts are exhausted.
func (p Policy) Do(ctx context.Context, logger Logger, op string, fn func(attempt uint) error) error {
	attempts := p.Attempts
	if attempts == 0 {
		attempts = 1
	}

	var attempt uint
	err := retry.Do(
		func() error {
			attempt++
			logger.Debug("making inference request", "op", op, "attempt", attempt)
			return fn(attempt)
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(p.Delay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logger.Warn("inference request failed", "op", op, "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return fmt.Errorf("%s: giving up after %d attempt(s): %w", op, attempt, err)
	}
	return nil
}
