package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/alecthomas/kong"

	ferrors "git.home.luguber.info/inful/wikimigrate/internal/foundation/errors"
	"git.home.luguber.info/inful/wikimigrate/internal/version"
)

type exitCode int

// Execute parses args, runs the selected command and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) (code int) {
	cli := &CLI{}
	global := &Global{Context: ctx, Stdout: stdout, Stderr: stderr, Logger: slog.Default()}

	defer func() {
		if r := recover(); r != nil {
			c, ok := r.(exitCode)
			if !ok {
				panic(r)
			}
			code = int(c)
		}
	}()

	parser, err := kong.New(cli,
		kong.Name("wikimigrate"),
		kong.Description("Copy a GitLab wiki to GitHub, flattening relative page links."),
		kong.Vars{"version": version.String()},
		kong.Writers(stdout, stderr),
		kong.Exit(func(c int) { panic(exitCode(c)) }),
		kong.Bind(global),
	)
	if err != nil {
		return handleError(global, false, ferrors.InternalError("invalid command model").WithCause(err).Build())
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		var perr *kong.ParseError
		if errors.As(err, &perr) {
			_ = perr.Context.PrintUsage(false)
		}
		_, _ = fmt.Fprintf(stderr, "wikimigrate: error: %v\n", err)
		return 1
	}

	if err := kctx.Run(cli); err != nil {
		if errors.Is(err, ErrUsage) {
			_, _ = fmt.Fprintf(stderr, "wikimigrate: error: %v\n", err)
			return 1
		}
		return handleError(global, cli.Verbose, err)
	}
	return 0
}

func handleError(g *Global, verbose bool, err error) (code int) {
	ferrors.NewCLIErrorAdapter(verbose, g.Logger).
		WithOutput(g.Stderr).
		WithExit(func(c int) { code = c }).
		HandleError(err)
	return code
}
