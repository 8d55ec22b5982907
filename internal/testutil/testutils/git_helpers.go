// Package testutils provides go-git fixtures and file assertions shared by wiki migration tests.
package testutils

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	ggitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// SetupTestGitRepo initializes a temporary non-bare repository on branch.
// Returns the repository, its worktree, and the absolute path to the temporary directory.
func SetupTestGitRepo(t *testing.T, branch string) (*git.Repository, *git.Worktree, string) {
	t.Helper()

	tempDir := t.TempDir()
	repo, err := git.PlainInitWithOptions(tempDir, initOptions(branch, false))
	require.NoError(t, err, "failed to initialize git repo")

	w, err := repo.Worktree()
	require.NoError(t, err, "failed to get worktree")

	return repo, w, tempDir
}

// CommitFiles writes files (slash-separated paths relative to the worktree) and commits them.
func CommitFiles(t *testing.T, repo *git.Repository, repoPath string, files map[string]string, msg string) plumbing.Hash {
	t.Helper()
	wt, err := repo.Worktree()
	require.NoError(t, err)

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		full := filepath.Join(repoPath, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o750))
		require.NoError(t, os.WriteFile(full, []byte(files[name]), 0o600))
		_, err := wt.Add(name)
		require.NoError(t, err)
	}

	hash, err := wt.Commit(msg, &git.CommitOptions{Author: &object.Signature{Name: "tester", Email: "t@example.com", When: time.Now()}})
	require.NoError(t, err)
	return hash
}

// NewRemoteWiki creates a bare repository whose branch holds files, committed as "seed".
func NewRemoteWiki(t *testing.T, branch string, files map[string]string) string {
	t.Helper()
	barePath := NewEmptyRemote(t, branch)

	seed, _, seedPath := SetupTestGitRepo(t, branch)
	_, err := seed.CreateRemote(&ggitcfg.RemoteConfig{Name: "origin", URLs: []string{barePath}})
	require.NoError(t, err)
	CommitFiles(t, seed, seedPath, files, "seed")
	require.NoError(t, seed.Push(&git.PushOptions{RemoteName: "origin"}))
	return barePath
}

// NewEmptyRemote creates a bare repository without commits whose HEAD names branch.
func NewEmptyRemote(t *testing.T, branch string) string {
	t.Helper()
	barePath := filepath.Join(t.TempDir(), "wiki.git")
	_, err := git.PlainInitWithOptions(barePath, initOptions(branch, true))
	require.NoError(t, err)
	return barePath
}

// BranchCommit returns the tip commit of branch in the repository at path.
func BranchCommit(t *testing.T, path, branch string) *object.Commit {
	t.Helper()
	r, err := git.PlainOpen(path)
	require.NoError(t, err)
	ref, err := r.Reference(plumbing.NewBranchReferenceName(branch), true)
	require.NoError(t, err)
	commit, err := r.CommitObject(ref.Hash())
	require.NoError(t, err)
	return commit
}

// HasBranch reports whether the repository at path has branch.
func HasBranch(t *testing.T, path, branch string) bool {
	t.Helper()
	r, err := git.PlainOpen(path)
	require.NoError(t, err)
	_, err = r.Reference(plumbing.NewBranchReferenceName(branch), true)
	return err == nil
}

// FileAt returns the contents of name in commit.
func FileAt(t *testing.T, commit *object.Commit, name string) string {
	t.Helper()
	f, err := commit.File(name)
	require.NoError(t, err, "file %s missing from commit %s", name, commit.Hash)
	contents, err := f.Contents()
	require.NoError(t, err)
	return contents
}

func initOptions(branch string, bare bool) *git.PlainInitOptions {
	return &git.PlainInitOptions{
		InitOptions: git.InitOptions{DefaultBranch: plumbing.NewBranchReferenceName(branch)},
		Bare:        bare,
	}
}
