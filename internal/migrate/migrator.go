package migrate

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/wikimigrate/internal/auth"
	"git.home.luguber.info/inful/wikimigrate/internal/config"
	"git.home.luguber.info/inful/wikimigrate/internal/foundation/errors"
	"git.home.luguber.info/inful/wikimigrate/internal/linkrewrite"
	"git.home.luguber.info/inful/wikimigrate/internal/logfields"
	"git.home.luguber.info/inful/wikimigrate/internal/metrics"
	"git.home.luguber.info/inful/wikimigrate/internal/retry"
	"git.home.luguber.info/inful/wikimigrate/internal/wikigit"
	"git.home.luguber.info/inful/wikimigrate/internal/workspace"
)

// Transport is the subset of wikigit.Client used by a migration.
type Transport interface {
	Clone(ctx context.Context, url, dir string) (*wikigit.Repo, error)
	Push(ctx context.Context, repo *wikigit.Repo, remote, branch string, force bool) error
}

type textfileWriter interface {
	WriteTextfile(path string) error
}

// Migrator runs a single wiki migration described by a Config.
type Migrator struct {
	cfg       *config.Config
	transport Transport
	auth      transport.AuthMethod
	recorder  metrics.Recorder
	logger    *slog.Logger
}

// Option configures a Migrator.
type Option func(*Migrator)

// WithTransport replaces the go-git client otherwise built for each run.
func WithTransport(t Transport) Option {
	return func(m *Migrator) { m.transport = t }
}

// WithRecorder attaches a metrics recorder. A recorder that can write a Prometheus
// textfile is flushed to cfg.MetricsFile after the run.
func WithRecorder(rec metrics.Recorder) Option {
	return func(m *Migrator) {
		if rec != nil {
			m.recorder = rec
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Migrator) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New validates cfg and prepares a Migrator.
func New(cfg *config.Config, opts ...Option) (*Migrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m := &Migrator{
		cfg:      cfg,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.transport == nil {
		authMethod, err := auth.CreateAuth(cfg.Auth)
		if err != nil {
			return nil, err
		}
		m.auth = authMethod
	}
	return m, nil
}

// client returns the configured transport, or a go-git client logging on logger.
func (m *Migrator) client(logger *slog.Logger) Transport {
	if m.transport != nil {
		return m.transport
	}
	return wikigit.NewClient(
		wikigit.WithAuth(m.auth),
		wikigit.WithRetryPolicy(retry.FromConfig(m.cfg.Retry)),
		wikigit.WithRecorder(m.recorder),
		wikigit.WithAuthor(m.cfg.Author.Name, m.cfg.Author.Email),
		wikigit.WithLogger(logger),
	)
}

// Run performs the migration. A missing source wiki is not an error: the result has
// SourceMissing set and nothing else happens.
func (m *Migrator) Run(ctx context.Context) (res Result, err error) {
	res.RunID = uuid.NewString()
	res.Branch = m.cfg.Branch
	logger := m.logger.With(logfields.RunID(res.RunID))
	start := time.Now()
	defer func() { m.finish(logger, &res, err, start) }()
	tr := m.client(logger)

	ws := workspace.NewManager(m.cfg.Workspace.BaseDir).WithKeep(m.cfg.Workspace.Keep)
	if err = ws.Create(); err != nil {
		return res, err
	}
	defer func() {
		if cerr := ws.Cleanup(); cerr != nil {
			logger.Warn("Failed to clean up workspace", logfields.Error(cerr))
		}
	}()
	logger.Debug("Workspace created", logfields.Path(ws.GetPath()), slog.Bool("keep", m.cfg.Workspace.Keep))
	dir, err := ws.Subdir("wiki")
	if err != nil {
		return res, err
	}
	if m.cfg.Workspace.Keep {
		res.WorkDir = dir
	}

	logger.Info("Cloning wiki from source", logfields.URL(m.cfg.Source))
	repo, err := tr.Clone(ctx, m.cfg.Source, dir)
	if err != nil {
		if wikigit.IsNotFound(err) {
			logger.Warn("Source wiki not found", logfields.URL(m.cfg.Source), logfields.Error(err))
			res.SourceMissing = true
			return res, nil
		}
		return res, err
	}

	if res.SourceBranch, err = repo.CurrentBranch(); err != nil {
		return res, err
	}
	logger.Info("Setting remote to destination wiki", logfields.Remote(m.cfg.Remote), logfields.URL(m.cfg.Destination))
	if err = repo.SetRemoteURL(m.cfg.Remote, m.cfg.Destination); err != nil {
		return res, err
	}

	if res.Report, err = m.rewrite(logger, repo.Path()); err != nil {
		return res, err
	}

	if res.Committed, err = m.commit(logger, repo); err != nil {
		return res, err
	}

	if err = repo.EnsureBranch(m.cfg.Branch); err != nil {
		return res, err
	}

	if m.cfg.DryRun {
		logger.Info("Dry run, skipping push", logfields.Branch(m.cfg.Branch))
		return res, nil
	}
	err = m.push(ctx, logger, tr, repo, &res)
	return res, err
}

func (m *Migrator) rewrite(logger *slog.Logger, dir string) (linkrewrite.Report, error) {
	start := time.Now()
	rw := linkrewrite.New(
		linkrewrite.WithExtensions(m.cfg.Rewrite.Extensions...),
		linkrewrite.WithRecorder(m.recorder),
		linkrewrite.WithLogger(logger),
	)
	report, err := rw.RewriteDir(dir)
	m.recorder.ObserveStageDuration("rewrite", time.Since(start))
	return report, err
}

func (m *Migrator) commit(logger *slog.Logger, repo *wikigit.Repo) (bool, error) {
	changed, err := repo.HasChanges()
	if err != nil {
		return false, err
	}
	if !changed {
		logger.Info("No changes detected after link rewrite")
		return false, nil
	}
	logger.Info("Changes detected, staging and committing")
	return repo.CommitAll(m.cfg.CommitMessage)
}

func (m *Migrator) push(ctx context.Context, logger *slog.Logger, tr Transport, repo *wikigit.Repo, res *Result) error {
	err := tr.Push(ctx, repo, m.cfg.Remote, m.cfg.Branch, true)
	if err == nil {
		res.Pushed = true
		return nil
	}
	if wikigit.IsAuth(err) || ctx.Err() != nil {
		return err
	}

	logger.Warn("Destination wiki not initialized, creating it", logfields.URL(m.cfg.Destination), logfields.Error(err))
	res.Initialized = true
	if err := m.initialize(repo); err != nil {
		return err
	}
	if err := tr.Push(ctx, repo, m.cfg.Remote, m.cfg.Branch, true); err != nil {
		return err
	}
	res.Pushed = true
	return repo.SetUpstream(m.cfg.Remote, m.cfg.Branch)
}

func (m *Migrator) finish(logger *slog.Logger, res *Result, err error, start time.Time) {
	outcome := res.Outcome(m.cfg.DryRun, err)
	m.recorder.IncOutcome(outcome)
	m.recorder.ObserveStageDuration("total", time.Since(start))

	if m.cfg.MetricsFile != "" {
		if w, ok := m.recorder.(textfileWriter); ok {
			if werr := w.WriteTextfile(m.cfg.MetricsFile); werr != nil {
				logger.Warn("Failed to write metrics textfile", logfields.Path(m.cfg.MetricsFile), logfields.Error(werr))
			}
		}
	}

	if err != nil {
		logger.Info("Wiki migration failed",
			slog.String("category", string(errors.GetCategory(err))),
			logfields.DurationMS(float64(time.Since(start).Milliseconds())))
		return
	}
	logger.Info("Wiki migration finished",
		slog.String("outcome", string(outcome)),
		logfields.FilesChanged(res.Report.FilesChanged),
		logfields.Replacements(res.Report.Replacements),
		slog.Bool("committed", res.Committed),
		slog.Bool("pushed", res.Pushed),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
}
