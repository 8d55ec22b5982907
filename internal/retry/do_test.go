package retry

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/wikimigrate/internal/config"
)

var errTransient = errors.New("connection reset")

func always(error) bool { return true }

func TestDo_SucceedsAfterTransientFailures(t *testing.T) {
	p := NewPolicy(config.RetryBackoffFixed, time.Millisecond, time.Millisecond, 3)
	calls := 0
	err := Do(context.Background(), nil, p, "clone", always, func() error {
		calls++
		if calls < 3 {
			return errTransient
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, calls)
}

func TestDo_StopsOnPermanentError(t *testing.T) {
	p := NewPolicy(config.RetryBackoffFixed, time.Millisecond, time.Millisecond, 5)
	permanent := errors.New("authentication required")
	calls := 0
	err := Do(context.Background(), nil, p, "push", func(err error) bool { return !errors.Is(err, permanent) }, func() error {
		calls++
		return permanent
	})
	require.ErrorIs(t, err, permanent)
	require.Equal(t, 1, calls)
}

func TestDo_Exhausted(t *testing.T) {
	p := NewPolicy(config.RetryBackoffFixed, time.Millisecond, time.Millisecond, 2)
	calls := 0
	err := Do(context.Background(), nil, p, "clone", always, func() error {
		calls++
		return errTransient
	})
	require.ErrorIs(t, err, errTransient)
	require.Contains(t, err.Error(), "clone failed after 2 retries")
	require.Equal(t, 3, calls)
}

func TestDo_ContextCancelledDuringBackoff(t *testing.T) {
	p := NewPolicy(config.RetryBackoffFixed, time.Hour, time.Hour, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Do(ctx, nil, p, "push", always, func() error { return errTransient })
	require.ErrorIs(t, err, context.Canceled)
}

func TestDo_LogsRetriesOnGivenLogger(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil)).With(slog.String("run_id", "r-1"))
	p := NewPolicy(config.RetryBackoffFixed, time.Millisecond, time.Millisecond, 1)

	err := Do(context.Background(), logger, p, "push", always, func() error { return errTransient })
	require.Error(t, err)
	require.Contains(t, logs.String(), "retrying operation")
	require.Contains(t, logs.String(), "run_id=r-1")
	require.Contains(t, logs.String(), "attempt=1")
}
