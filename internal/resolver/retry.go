package resolver

import (
	"context"
	"fmt"
	"time"
)

// Policy bounds the upstream call: total attempts, the pause between them,
// and the deadline of each attempt.
type Policy struct {
	Attempts int
	Delay    time.Duration
	Timeout  time.Duration
}

// DefaultPolicy is three attempts, two seconds apart, fifteen seconds each.
func DefaultPolicy() Policy {
	return Policy{
		Attempts: 3,
		Delay:    2 * time.Second,
		Timeout:  15 * time.Second,
	}
}

// Sleeper pauses for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepContext is the default Sleeper.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Retry calls fn until it succeeds or p.Attempts calls have failed, sleeping
// p.Delay between calls but not after the last one. Each call gets its own
// deadline of p.Timeout when positive. It returns the number of calls made
// and the last error.
func Retry(ctx context.Context, p Policy, sleep Sleeper, fn func(ctx context.Context, attempt int) error) (int, error) {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	if sleep == nil {
		sleep = SleepContext
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = callWithTimeout(ctx, p.Timeout, attempt, fn)
		if lastErr == nil {
			return attempt, nil
		}
		if attempt == attempts {
			break
		}
		if err := sleep(ctx, p.Delay); err != nil {
			return attempt, fmt.Errorf("retry interrupted after attempt %d: %w", attempt, err)
		}
	}
	return attempts, lastErr
}

func callWithTimeout(ctx context.Context, timeout time.Duration, attempt int, fn func(ctx context.Context, attempt int) error) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return fn(ctx, attempt)
}
