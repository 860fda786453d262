// Package retry is the single retry wrapper used by every fetcher. Retry
// policy lives here instead of being re-rolled per source.
package retry

import (
	"context"
	"log/slog"
	"time"
)

// Config bounds a retryable operation.
type Config struct {
	// Attempts is the total number of tries, including the first.
	Attempts int
	// Delay is the base backoff; the wait grows linearly (delay, 2*delay, ...).
	Delay time.Duration
}

// DefaultConfig mirrors the scraper defaults: 3 attempts, 1s base delay.
func DefaultConfig() Config {
	return Config{Attempts: 3, Delay: time.Second}
}

// Do runs op until it succeeds, the attempt budget is exhausted, the error is
// ruled non-transient by retryable, or ctx is cancelled. The last error is
// returned. A nil retryable predicate retries every error.
func Do(ctx context.Context, cfg Config, retryable func(error) bool, op func(ctx context.Context) error) error {
	if cfg.Attempts <= 0 {
		cfg.Attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= cfg.Attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if retryable != nil && !retryable(lastErr) {
			return lastErr
		}
		if attempt == cfg.Attempts {
			break
		}

		wait := cfg.Delay * time.Duration(attempt)
		slog.Warn("operation failed, retrying",
			"attempt", attempt, "max_attempts", cfg.Attempts, "wait", wait, "error", lastErr)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return lastErr
}
