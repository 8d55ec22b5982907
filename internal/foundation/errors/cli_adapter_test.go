package errors

import (
	"bytes"
	stderrors "errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: 0},
		{name: "validation", err: ValidationError("missing source").Build(), expected: 2},
		{name: "auth", err: AuthError("unauthorized").Build(), expected: 5},
		{name: "config", err: ConfigError("bad yaml").Build(), expected: 7},
		{name: "git", err: GitError("push rejected").Build(), expected: 8},
		{name: "filesystem", err: FileSystemError("permission denied").Build(), expected: 11},
		{name: "internal", err: InternalError("bug").Build(), expected: 10},
		{name: "unclassified", err: stderrors.New("unknown"), expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var logs, out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	code := -1
	adapter := NewCLIErrorAdapter(false, logger).
		WithOutput(&out).
		WithExit(func(c int) { code = c })

	adapter.HandleError(FileSystemError("failed to write document").
		WithCause(stderrors.New("disk full")).
		WithContext("path", "Home.md").
		Build())

	require.Equal(t, 11, code)
	require.Contains(t, out.String(), "failed to write document: disk full")
	require.Contains(t, logs.String(), "category=filesystem")
	require.Contains(t, logs.String(), "path=Home.md")
	require.Contains(t, logs.String(), "fatal=true")
}

func TestCLIErrorAdapter_FormatVerbose(t *testing.T) {
	adapter := NewCLIErrorAdapter(true, slog.Default())
	err := GitError("push rejected").Build()
	require.Equal(t, "Error: [git:error] push rejected", adapter.FormatError(err))
	require.Empty(t, adapter.FormatError(nil))
}

func TestCLIErrorAdapter_LogsRetryStrategy(t *testing.T) {
	var logs bytes.Buffer
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&logs, nil))).
		WithOutput(&bytes.Buffer{}).
		WithExit(func(int) {})

	adapter.HandleError(AuthError("push denied").Build())
	require.Contains(t, logs.String(), "retry=user")
	require.Equal(t, "Error: push denied", adapter.FormatError(AuthError("push denied").Build()))
}
