package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
)

// EnvLogLevel overrides the log level (debug|info|warn|error) when --verbose is not given.
const EnvLogLevel = "WIKIMIGRATE_LOG_LEVEL"

// Global carries process-wide state into command Run methods.
type Global struct {
	Context context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Optional YAML configuration file" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Migrate MigrateCmd `cmd:"" default:"withargs" help:"Copy a wiki to a new remote, flattening relative links (default command)"`
	Rewrite RewriteCmd `cmd:"" help:"Flatten relative wiki links in a local directory"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply(g *Global) error {
	logger := slog.New(slog.NewTextHandler(g.Stderr, &slog.HandlerOptions{Level: parseLogLevel(c.Verbose)}))
	slog.SetDefault(logger)
	g.Logger = logger
	return nil
}

func parseLogLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv(EnvLogLevel))) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
