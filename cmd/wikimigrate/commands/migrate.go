package commands

import (
	"errors"
	"fmt"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/wikimigrate/internal/config"
	"git.home.luguber.info/inful/wikimigrate/internal/metrics"
	"git.home.luguber.info/inful/wikimigrate/internal/migrate"
)

// ErrUsage marks a command line that is missing required input. Usage has already been printed.
var ErrUsage = errors.New("source and destination repositories are required")

// MigrateCmd implements the default 'migrate' command.
type MigrateCmd struct {
	Source      string `arg:"" optional:"" help:"Source wiki repository URL (e.g. https://gitlab.com/group/project.wiki.git)"`
	Destination string `arg:"" optional:"" help:"Destination wiki repository URL (e.g. https://github.com/owner/repo.wiki.git)"`
	Token       string `arg:"" optional:"" help:"Access token used for both remotes"`

	Branch        string `help:"Branch pushed to the destination (default master)"`
	Message       string `help:"Commit message for the link rewrite"`
	AuthorName    string `name:"author-name" help:"Commit author name"`
	AuthorEmail   string `name:"author-email" help:"Commit author email"`
	WorkspaceDir  string `name:"workspace-dir" help:"Directory for the temporary working copy" type:"path"`
	KeepWorkspace bool   `name:"keep-workspace" help:"Keep the working copy after the run"`
	DryRun        bool   `name:"dry-run" help:"Rewrite and commit locally, skip the push"`
	MetricsFile   string `name:"metrics-file" help:"Write Prometheus metrics to this file after the run" type:"path"`
}

func (m *MigrateCmd) Run(g *Global, root *CLI, kctx *kong.Context) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	m.apply(cfg)
	if cfg.Source == "" || cfg.Destination == "" {
		_ = kctx.PrintUsage(false)
		return ErrUsage
	}

	var rec metrics.Recorder = metrics.NoopRecorder{}
	if cfg.MetricsFile != "" {
		rec = metrics.NewPrometheusRecorder(nil)
	}

	migrator, err := migrate.New(cfg, migrate.WithRecorder(rec), migrate.WithLogger(g.Logger))
	if err != nil {
		return err
	}
	res, err := migrator.Run(g.Context)
	if err != nil {
		return err
	}

	switch {
	case res.SourceMissing:
		_, _ = fmt.Fprintln(g.Stdout, "Source wiki not found, nothing to migrate.")
	case !res.Pushed:
		_, _ = fmt.Fprintf(g.Stdout, "Dry run complete: %d file(s) updated, %d total replacements.\n",
			res.Report.FilesChanged, res.Report.Replacements)
	default:
		_, _ = fmt.Fprintf(g.Stdout, "Wiki copied to %s (%d file(s) updated, %d total replacements).\n",
			cfg.Destination, res.Report.FilesChanged, res.Report.Replacements)
	}
	return nil
}

// apply layers command line values over the loaded configuration.
func (m *MigrateCmd) apply(cfg *config.Config) {
	if m.Source != "" {
		cfg.Source = m.Source
	}
	if m.Destination != "" {
		cfg.Destination = m.Destination
	}
	cfg.SetToken(m.Token)
	if m.Branch != "" {
		cfg.Branch = m.Branch
	}
	if m.Message != "" {
		cfg.CommitMessage = m.Message
	}
	if m.AuthorName != "" {
		cfg.Author.Name = m.AuthorName
	}
	if m.AuthorEmail != "" {
		cfg.Author.Email = m.AuthorEmail
	}
	if m.WorkspaceDir != "" {
		cfg.Workspace.BaseDir = m.WorkspaceDir
	}
	if m.KeepWorkspace {
		cfg.Workspace.Keep = true
	}
	if m.DryRun {
		cfg.DryRun = true
	}
	if m.MetricsFile != "" {
		cfg.MetricsFile = m.MetricsFile
	}
}
