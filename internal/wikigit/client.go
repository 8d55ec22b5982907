package wikigit

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-git/go-git/v5"
	ggitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"

	"git.home.luguber.info/inful/wikimigrate/internal/foundation/errors"
	"git.home.luguber.info/inful/wikimigrate/internal/logfields"
	"git.home.luguber.info/inful/wikimigrate/internal/metrics"
	"git.home.luguber.info/inful/wikimigrate/internal/retry"
)

// Client handles Git operations against the source and destination wikis.
type Client struct {
	auth     transport.AuthMethod
	policy   retry.Policy
	recorder metrics.Recorder
	author   object.Signature
	logger   *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithAuth sets the credentials used for clone and push. nil means anonymous.
func WithAuth(auth transport.AuthMethod) Option {
	return func(c *Client) { c.auth = auth }
}

// WithRetryPolicy sets how transient transport failures are retried.
func WithRetryPolicy(p retry.Policy) Option {
	return func(c *Client) { c.policy = p }
}

// WithRecorder attaches a metrics recorder for retry counts.
func WithRecorder(rec metrics.Recorder) Option {
	return func(c *Client) {
		if rec != nil {
			c.recorder = rec
		}
	}
}

// WithAuthor sets the signature for commits created through Repo.
func WithAuthor(name, email string) Option {
	return func(c *Client) {
		c.author.Name = name
		c.author.Email = email
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a Client. Without options it is anonymous and never retries.
func NewClient(opts ...Option) *Client {
	c := &Client{
		policy:   retry.Policy{},
		recorder: metrics.NoopRecorder{},
		author:   object.Signature{Name: "wikimigrate", Email: "wikimigrate@localhost"},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Clone clones url into dir, replacing anything already there. A repository that does
// not exist or has no commits yields an error for which IsNotFound is true.
func (c *Client) Clone(ctx context.Context, url, dir string) (*Repo, error) {
	c.logger.Info("Cloning wiki", logfields.URL(url), logfields.Path(dir))

	var repository *git.Repository
	err := c.withRetry(ctx, "clone", func() error {
		if err := os.RemoveAll(dir); err != nil {
			return errors.FileSystemError("failed to clear clone directory").
				WithCause(err).
				WithContext("path", dir).
				Build()
		}
		r, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{URL: url, Auth: c.auth})
		if err != nil {
			return ClassifyGitError(err, "clone", url)
		}
		repository = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	repo := &Repo{repo: repository, path: dir, author: c.author, logger: c.logger}
	if ref, herr := repository.Head(); herr == nil {
		c.logger.Info("Wiki cloned", logfields.URL(url), logfields.Commit(ref.Hash().String()[:8]))
	}
	return repo, nil
}

// Push pushes refs/heads/<branch> to the same branch on remote. Force overwrites the
// destination history. A remote that is already up to date is not an error.
func (c *Client) Push(ctx context.Context, repo *Repo, remote, branch string, force bool) error {
	spec := fmt.Sprintf("refs/heads/%s:refs/heads/%s", branch, branch)
	if force {
		spec = "+" + spec
	}
	url := repo.RemoteURL(remote)
	c.logger.Info("Pushing wiki", logfields.Remote(remote), logfields.URL(url), logfields.Branch(branch), slog.Bool("force", force))

	opts := &git.PushOptions{
		RemoteName: remote,
		RefSpecs:   []ggitcfg.RefSpec{ggitcfg.RefSpec(spec)},
		Auth:       c.auth,
		Force:      force,
	}
	return c.withRetry(ctx, "push", func() error {
		err := repo.repo.PushContext(ctx, opts)
		if err == nil || stderrors.Is(err, git.NoErrAlreadyUpToDate) {
			return nil
		}
		return ClassifyGitError(err, "push", url)
	})
}

func (c *Client) withRetry(ctx context.Context, op string, fn func() error) error {
	start := time.Now()
	attempt := 0
	err := retry.Do(ctx, c.logger, c.policy, op, errors.IsRetryable, func() error {
		if attempt > 0 {
			c.recorder.IncTransportRetry(op)
		}
		attempt++
		return fn()
	})
	c.recorder.ObserveStageDuration(op, time.Since(start))
	return err
}
