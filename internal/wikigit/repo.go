package wikigit

import (
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/go-git/go-git/v5"
	ggitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"git.home.luguber.info/inful/wikimigrate/internal/logfields"
)

// Repo is a cloned working copy.
type Repo struct {
	repo   *git.Repository
	path   string
	author object.Signature
	logger *slog.Logger
}

// Path returns the working tree root.
func (r *Repo) Path() string { return r.path }

// RemoteURL returns the first URL of the named remote, or "" if it is not configured.
func (r *Repo) RemoteURL(name string) string {
	remote, err := r.repo.Remote(name)
	if err != nil || len(remote.Config().URLs) == 0 {
		return ""
	}
	return remote.Config().URLs[0]
}

// SetRemoteURL points the named remote at url, creating the remote if needed.
func (r *Repo) SetRemoteURL(name, url string) error {
	cfg, err := r.repo.Config()
	if err != nil {
		return GitError("failed to read repository config").WithCause(err).Build()
	}
	if remote, ok := cfg.Remotes[name]; ok {
		remote.URLs = []string{url}
		if err := r.repo.SetConfig(cfg); err != nil {
			return GitError("failed to update remote").WithCause(err).WithContext("remote", name).Build()
		}
	} else if _, err := r.repo.CreateRemote(&ggitcfg.RemoteConfig{Name: name, URLs: []string{url}}); err != nil {
		return GitError("failed to create remote").WithCause(err).WithContext("remote", name).Build()
	}
	r.logger.Info("Remote updated", logfields.Remote(name), logfields.URL(url))
	return nil
}

// HasChanges reports whether the worktree differs from HEAD, untracked files included.
func (r *Repo) HasChanges() (bool, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return false, GitError("failed to open worktree").WithCause(err).Build()
	}
	status, err := wt.Status()
	if err != nil {
		return false, GitError("failed to read worktree status").WithCause(err).Build()
	}
	return !status.IsClean(), nil
}

// CommitAll stages every change, deletions included, and commits it. It returns false
// without error when there was nothing to commit.
func (r *Repo) CommitAll(msg string) (bool, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return false, GitError("failed to open worktree").WithCause(err).Build()
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return false, GitError("failed to stage changes").WithCause(err).Build()
	}
	if _, err := r.commit(wt, msg); err != nil {
		if stderrors.Is(err, git.ErrEmptyCommit) {
			r.logger.Info("Nothing to commit after staging")
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Add stages a single path relative to the worktree root.
func (r *Repo) Add(path string) error {
	wt, err := r.repo.Worktree()
	if err != nil {
		return GitError("failed to open worktree").WithCause(err).Build()
	}
	if _, err := wt.Add(path); err != nil {
		return GitError("failed to stage file").WithCause(err).WithContext("path", path).Build()
	}
	return nil
}

// Commit records the staged changes.
func (r *Repo) Commit(msg string) (plumbing.Hash, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return plumbing.ZeroHash, GitError("failed to open worktree").WithCause(err).Build()
	}
	return r.commit(wt, msg)
}

func (r *Repo) commit(wt *git.Worktree, msg string) (plumbing.Hash, error) {
	sig := r.author
	sig.When = time.Now()
	hash, err := wt.Commit(msg, &git.CommitOptions{Author: &sig})
	if err != nil {
		if stderrors.Is(err, git.ErrEmptyCommit) {
			return plumbing.ZeroHash, err
		}
		return plumbing.ZeroHash, GitError("failed to commit").WithCause(err).Build()
	}
	r.logger.Info("Committed changes", logfields.Commit(hash.String()[:8]))
	return hash, nil
}

// CurrentBranch returns the short name of the branch HEAD points at.
func (r *Repo) CurrentBranch() (string, error) {
	head, err := r.repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return "", GitError("failed to read HEAD").WithCause(err).Build()
	}
	if head.Type() != plumbing.SymbolicReference {
		return "", GitError("HEAD is detached").WithContext("commit", head.Hash().String()).Build()
	}
	return head.Target().Short(), nil
}

// EnsureBranch makes name the checked-out branch. An existing branch is checked out;
// otherwise the current branch is renamed to name.
func (r *Repo) EnsureBranch(name string) error {
	target := plumbing.NewBranchReferenceName(name)
	head, err := r.repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return GitError("failed to read HEAD").WithCause(err).Build()
	}
	if head.Type() == plumbing.SymbolicReference && head.Target() == target {
		return nil
	}

	if _, err := r.repo.Reference(target, true); err == nil {
		wt, werr := r.repo.Worktree()
		if werr != nil {
			return GitError("failed to open worktree").WithCause(werr).Build()
		}
		if err := wt.Checkout(&git.CheckoutOptions{Branch: target}); err != nil {
			return GitError("failed to check out branch").WithCause(err).WithContext("branch", name).Build()
		}
		r.logger.Info("Checked out branch", logfields.Branch(name))
		return nil
	}

	return r.renameCurrentBranch(head, target)
}

func (r *Repo) renameCurrentBranch(head *plumbing.Reference, target plumbing.ReferenceName) error {
	resolved, err := r.repo.Head()
	switch {
	case stderrors.Is(err, plumbing.ErrReferenceNotFound):
		// unborn branch: only HEAD moves
	case err != nil:
		return GitError("failed to resolve HEAD").WithCause(err).Build()
	default:
		if err := r.repo.Storer.SetReference(plumbing.NewHashReference(target, resolved.Hash())); err != nil {
			return GitError("failed to create branch").WithCause(err).WithContext("branch", target.Short()).Build()
		}
	}
	if err := r.repo.Storer.SetReference(plumbing.NewSymbolicReference(plumbing.HEAD, target)); err != nil {
		return GitError("failed to update HEAD").WithCause(err).Build()
	}

	if head.Type() == plumbing.SymbolicReference {
		old := head.Target()
		if err := r.repo.Storer.RemoveReference(old); err != nil {
			return GitError("failed to remove old branch").WithCause(err).WithContext("branch", old.Short()).Build()
		}
		if err := r.repo.DeleteBranch(old.Short()); err != nil && !stderrors.Is(err, git.ErrBranchNotFound) {
			return GitError("failed to remove old branch config").WithCause(err).WithContext("branch", old.Short()).Build()
		}
		r.logger.Info("Renamed branch", slog.String("from", old.Short()), logfields.Branch(target.Short()))
	}
	return nil
}

// SetUpstream records remote/branch as the tracking branch of branch.
func (r *Repo) SetUpstream(remote, branch string) error {
	cfg, err := r.repo.Config()
	if err != nil {
		return GitError("failed to read repository config").WithCause(err).Build()
	}
	cfg.Branches[branch] = &ggitcfg.Branch{
		Name:   branch,
		Remote: remote,
		Merge:  plumbing.NewBranchReferenceName(branch),
	}
	if err := r.repo.SetConfig(cfg); err != nil {
		return GitError("failed to set upstream").WithCause(err).WithContext("branch", branch).Build()
	}
	return nil
}
