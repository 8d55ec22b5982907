package wikigit

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/wikimigrate/internal/config"
	"git.home.luguber.info/inful/wikimigrate/internal/foundation/errors"
	"git.home.luguber.info/inful/wikimigrate/internal/metrics"
	"git.home.luguber.info/inful/wikimigrate/internal/retry"
	"git.home.luguber.info/inful/wikimigrate/internal/testutil/testutils"
)

type retryCounter struct {
	metrics.NoopRecorder
	retries map[string]int
}

func (r *retryCounter) IncTransportRetry(op string) {
	if r.retries == nil {
		r.retries = map[string]int{}
	}
	r.retries[op]++
}

func newTestClient(opts ...Option) *Client {
	return NewClient(append([]Option{WithLogger(quietLogger()), WithAuthor("Migrator", "migrator@example.com")}, opts...)...)
}

func TestClone(t *testing.T) {
	remote := testutils.NewRemoteWiki(t, "main", map[string]string{"Home.md": "# Home\n"})
	dir := filepath.Join(t.TempDir(), "clone")

	repo, err := newTestClient().Clone(context.Background(), remote, dir)
	require.NoError(t, err)
	require.Equal(t, dir, repo.Path())
	require.Equal(t, remote, repo.RemoteURL("origin"))

	branch, err := repo.CurrentBranch()
	require.NoError(t, err)
	require.Equal(t, "main", branch)

	data, err := os.ReadFile(filepath.Join(dir, "Home.md"))
	require.NoError(t, err)
	require.Equal(t, "# Home\n", string(data))
}

func TestClone_ReplacesExistingDirectory(t *testing.T) {
	remote := testutils.NewRemoteWiki(t, "master", map[string]string{"Home.md": "x"})
	dir := filepath.Join(t.TempDir(), "clone")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stale.md"), []byte("old"), 0o600))

	_, err := newTestClient().Clone(context.Background(), remote, dir)
	require.NoError(t, err)
	testutils.NewFileAssertions(t, dir).
		AssertNotExists("stale.md").
		AssertFileContent("Home.md", "x")
}

func TestClone_MissingRepository(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.git")

	_, err := newTestClient().Clone(context.Background(), missing, filepath.Join(t.TempDir(), "clone"))
	require.Error(t, err)
	require.True(t, IsNotFound(err), "got %v", err)
}

func TestClone_EmptyRepository(t *testing.T) {
	_, err := newTestClient().Clone(context.Background(), testutils.NewEmptyRemote(t, "master"), filepath.Join(t.TempDir(), "clone"))
	require.Error(t, err)
	require.True(t, IsNotFound(err), "got %v", err)
}

func TestPush_ForceOverwritesDestination(t *testing.T) {
	source := testutils.NewRemoteWiki(t, "main", map[string]string{"Home.md": "source"})
	dest := testutils.NewRemoteWiki(t, "master", map[string]string{"Other.md": "unrelated history"})

	client := newTestClient()
	repo, err := client.Clone(context.Background(), source, filepath.Join(t.TempDir(), "clone"))
	require.NoError(t, err)
	require.NoError(t, repo.SetRemoteURL("origin", dest))
	require.NoError(t, repo.EnsureBranch("master"))

	require.NoError(t, client.Push(context.Background(), repo, "origin", "master", true))

	head, err := repo.repo.Head()
	require.NoError(t, err)
	require.Equal(t, head.Hash(), testutils.BranchCommit(t, dest, "master").Hash)

	// second push has nothing to send
	require.NoError(t, client.Push(context.Background(), repo, "origin", "master", true))
}

func TestPush_EmptyDestination(t *testing.T) {
	source := testutils.NewRemoteWiki(t, "master", map[string]string{"Home.md": "source"})
	dest := testutils.NewEmptyRemote(t, "master")

	client := newTestClient()
	repo, err := client.Clone(context.Background(), source, filepath.Join(t.TempDir(), "clone"))
	require.NoError(t, err)
	require.NoError(t, repo.SetRemoteURL("origin", dest))

	require.NoError(t, client.Push(context.Background(), repo, "origin", "master", true))
	head, err := repo.repo.Head()
	require.NoError(t, err)
	require.Equal(t, head.Hash(), testutils.BranchCommit(t, dest, "master").Hash)
}

func TestPush_MissingDestination(t *testing.T) {
	source := testutils.NewRemoteWiki(t, "master", map[string]string{"Home.md": "source"})

	client := newTestClient()
	repo, err := client.Clone(context.Background(), source, filepath.Join(t.TempDir(), "clone"))
	require.NoError(t, err)
	require.NoError(t, repo.SetRemoteURL("origin", filepath.Join(t.TempDir(), "missing.git")))

	err = client.Push(context.Background(), repo, "origin", "master", true)
	require.Error(t, err)
	require.True(t, IsNotFound(err), "got %v", err)
	require.False(t, IsAuth(err))
}

func TestWithRetry(t *testing.T) {
	rec := &retryCounter{}
	client := newTestClient(
		WithRecorder(rec),
		WithRetryPolicy(retry.NewPolicy(config.RetryBackoffFixed, time.Millisecond, 5*time.Millisecond, 3)),
	)

	t.Run("transient then success", func(t *testing.T) {
		attempts := 0
		err := client.withRetry(context.Background(), "clone", func() error {
			attempts++
			if attempts < 3 {
				return ClassifyGitError(fmt.Errorf("read: connection reset by peer"), "clone", "https://example.com/w.git")
			}
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, 3, attempts)
		require.Equal(t, 2, rec.retries["clone"])
	})

	t.Run("permanent error is not retried", func(t *testing.T) {
		attempts := 0
		err := client.withRetry(context.Background(), "push", func() error {
			attempts++
			return ClassifyGitError(transport.ErrAuthenticationRequired, "push", "https://example.com/w.git")
		})
		require.Error(t, err)
		require.True(t, IsAuth(err))
		require.Equal(t, 1, attempts)
		require.Zero(t, rec.retries["push"])
	})
}

func TestClassifyGitError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		category  errors.ErrorCategory
		retryable bool
	}{
		{"repository not found", transport.ErrRepositoryNotFound, errors.CategoryNotFound, false},
		{"empty remote", fmt.Errorf("clone: %w", transport.ErrEmptyRemoteRepository), errors.CategoryNotFound, false},
		{"authentication required", transport.ErrAuthenticationRequired, errors.CategoryAuth, false},
		{"authorization failed", transport.ErrAuthorizationFailed, errors.CategoryAuth, false},
		{"non fast forward", git.ErrNonFastForwardUpdate, errors.CategoryGit, false},
		{"cancelled", context.Canceled, errors.CategoryNetwork, false},
		{"remote auth message", stderrors.New("remote: HTTP Basic: Access denied, authentication failed"), errors.CategoryAuth, false},
		{"connection reset", stderrors.New("read tcp: connection reset by peer"), errors.CategoryNetwork, true},
		{"rate limited", stderrors.New("429 Too Many Requests"), errors.CategoryNetwork, true},
		{"unsupported protocol", stderrors.New("unsupported protocol scheme"), errors.CategoryConfig, false},
		{"unknown", stderrors.New("object not found"), errors.CategoryGit, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ClassifyGitError(tt.err, "clone", "https://gitlab.example.com/g/p.wiki.git")
			require.Equal(t, tt.category, errors.GetCategory(err))
			require.Equal(t, tt.retryable, errors.IsRetryable(err))
			require.ErrorIs(t, err, tt.err)
		})
	}

	require.NoError(t, ClassifyGitError(nil, "clone", ""))

	cancelled, ok := errors.AsClassified(ClassifyGitError(context.Canceled, "push", ""))
	require.True(t, ok)
	require.Equal(t, errors.SeverityWarning, cancelled.Severity())

	classified := errors.AuthError("bad token").Build()
	require.Same(t, classified, ClassifyGitError(classified, "push", ""))
}

func TestClone_RepoCommitsAsAuthor(t *testing.T) {
	remote := testutils.NewRemoteWiki(t, "master", map[string]string{"Home.md": "x"})
	dir := filepath.Join(t.TempDir(), "clone")
	repo, err := newTestClient().Clone(context.Background(), remote, dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "New.md"), []byte("new"), 0o600))
	committed, err := repo.CommitAll("add page")
	require.NoError(t, err)
	require.True(t, committed)

	head, err := repo.repo.Head()
	require.NoError(t, err)
	commit, err := repo.repo.CommitObject(head.Hash())
	require.NoError(t, err)
	require.Equal(t, "Migrator", commit.Author.Name)
	require.Equal(t, "migrator@example.com", commit.Author.Email)
	require.Equal(t, "add page", commit.Message)
	require.NotEqual(t, plumbing.ZeroHash, head.Hash())
}
