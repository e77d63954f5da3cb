// Package retry provides exponential backoff retry logic for provider calls.
// The HTTP server never retries (a single attempt per user request), so this
// is used only by callers that own the retry decision, such as the intake CLI.
package retry

import (
	"context"
	"math/rand"
	"time"

	cerrors "github.com/ideaforge/collaborator/internal/errors"
)

// Config holds retry configuration.
type Config struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Jitter      bool
}

// DefaultConfig returns sensible retry defaults.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 3,
		BaseDelay:   500 * time.Millisecond,
		MaxDelay:    10 * time.Second,
		Jitter:      true,
	}
}

// backoff computes the sleep before attempt n (1-based): BaseDelay doubled
// per prior attempt, clamped to MaxDelay, with optional jitter in [0.5, 1.0).
func (c Config) backoff(attempt int) time.Duration {
	delay := c.BaseDelay << (attempt - 1)
	if delay > c.MaxDelay || delay <= 0 {
		delay = c.MaxDelay
	}
	if c.Jitter {
		delay = time.Duration(float64(delay) * (0.5 + rand.Float64()*0.5))
	}
	return delay
}

// Do executes fn up to cfg.MaxAttempts times. Non-retryable errors return
// immediately; retryable ones sleep the backoff and try again unless the
// context is done first.
func Do(ctx context.Context, cfg Config, fn func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 1; ; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if !cerrors.IsRetryable(lastErr) || attempt >= cfg.MaxAttempts {
			return lastErr
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(cfg.backoff(attempt)):
		}
	}
}
