// Package llm implements the AI review pipeline: prompt construction, the
// retry policy around remote completion calls, and parsing of model output
// into a structured review result.
package llm

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"
)

// RetryConfig configures the retry behavior for remote completion calls.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts, including the first one.
	MaxAttempts int
	// BaseBackoff is the delay before the second attempt; it doubles on each
	// further retryable failure.
	BaseBackoff time.Duration
	// MaxBackoff caps the per-attempt delay.
	MaxBackoff time.Duration
	// MaxJitter is the maximum random jitter added to each delay to avoid
	// thundering herds. Zero disables jitter.
	MaxJitter time.Duration
	// Sleep waits between attempts. Nil selects a context-aware timed wait.
	// Tests inject a recording fake here.
	Sleep func(ctx context.Context, d time.Duration) error
}

// retryDefaults fills in the fixed caps for a config derived from run params.
func retryDefaults(maxAttempts int, baseBackoff time.Duration) RetryConfig {
	return RetryConfig{
		MaxAttempts: maxAttempts,
		BaseBackoff: baseBackoff,
		MaxBackoff:  60 * time.Second,
		MaxJitter:   500 * time.Millisecond,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// WithBackoff executes fn with exponential backoff retry. Only errors
// classified as retryable by isRetryable are retried; anything else is
// returned immediately. Attempts are strictly sequential and independent.
func WithBackoff[T any](ctx context.Context, cfg RetryConfig, operation string, logger *slog.Logger, isRetryable func(error) bool, fn func() (T, error)) (T, error) {
	var result T
	var lastErr error

	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	sleep := cfg.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		result, lastErr = fn()
		if lastErr == nil {
			return result, nil
		}

		if !isRetryable(lastErr) {
			return result, lastErr
		}

		if attempt == cfg.MaxAttempts-1 {
			break
		}

		// BaseBackoff * 2^attempt, capped at MaxBackoff.
		backoff := min(cfg.BaseBackoff<<attempt, cfg.MaxBackoff)

		var jitter time.Duration
		if cfg.MaxJitter > 0 {
			n, err := rand.Int(rand.Reader, big.NewInt(int64(cfg.MaxJitter)))
			if err == nil {
				jitter = time.Duration(n.Int64())
			}
		}

		logger.Warn("retryable completion failure, backing off",
			"operation", operation,
			"attempt", attempt+1,
			"max_attempts", cfg.MaxAttempts,
			"backoff", backoff+jitter,
			"error", lastErr,
		)

		if err := sleep(ctx, backoff+jitter); err != nil {
			return result, err
		}
	}

	return result, fmt.Errorf("%s failed after %d attempts: %w", operation, cfg.MaxAttempts, lastErr)
}
