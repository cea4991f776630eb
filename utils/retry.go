package utils

import (
	"context"
	"time"
)

// DelayFunc maps a 1-based attempt number to the delay before the next attempt
type DelayFunc func(attempt int) time.Duration

// LinearDelay grows the delay by base on every failed attempt
func LinearDelay(base time.Duration) DelayFunc {
	return func(attempt int) time.Duration {
		return time.Duration(attempt) * base
	}
}

// Retry runs fn up to maxAttempts times, sleeping delay(attempt) between
// failures. It returns nil on the first success, the last error once the
// attempts are exhausted, and the context error if ctx is done first.
func Retry(ctx context.Context, maxAttempts int, delay DelayFunc, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if lastErr = fn(); lastErr == nil {
			return nil
		}
		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay(attempt)):
		}
	}
	return lastErr
}
