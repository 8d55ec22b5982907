package retry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/wikimigrate/internal/logfields"
)

// Do runs fn until it succeeds, retryable reports false for its error, or the policy is exhausted.
// Waits between attempts honour ctx cancellation. Retries are logged on logger (slog.Default when nil).
func Do(ctx context.Context, logger *slog.Logger, p Policy, op string, retryable func(error) bool, fn func() error) error {
	if logger == nil {
		logger = slog.Default()
	}
	var lastErr error
	for attempt := 0; attempt <= p.MaxRetries; attempt++ {
		if attempt > 0 {
			logger.Warn("retrying operation", logfields.Operation(op), logfields.Attempt(attempt), logfields.Error(lastErr))
		}
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !retryable(lastErr) || attempt == p.MaxRetries {
			break
		}
		if err := sleep(ctx, p.Delay(attempt+1)); err != nil {
			return err
		}
	}
	if p.MaxRetries > 0 && retryable(lastErr) {
		return fmt.Errorf("%s failed after %d retries: %w", op, p.MaxRetries, lastErr)
	}
	return lastErr
}

func sleep(ctx context.Context, d time.Duration) error {
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
