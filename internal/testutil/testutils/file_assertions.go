package testutils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// FileAssertions provides utilities for asserting file system state in tests.
type FileAssertions struct {
	t       *testing.T
	baseDir string
}

// NewFileAssertions creates a new file assertions helper.
func NewFileAssertions(t *testing.T, baseDir string) *FileAssertions {
	return &FileAssertions{
		t:       t,
		baseDir: baseDir,
	}
}

// WriteFile creates relativePath (and its parents) with content.
func (fa *FileAssertions) WriteFile(relativePath, content string) *FileAssertions {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, filepath.FromSlash(relativePath))
	require.NoError(fa.t, os.MkdirAll(filepath.Dir(fullPath), 0o750))
	require.NoError(fa.t, os.WriteFile(fullPath, []byte(content), 0o600))
	return fa
}

// AssertFileContent validates that a file holds exactly expected.
func (fa *FileAssertions) AssertFileContent(relativePath, expected string) *FileAssertions {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, filepath.FromSlash(relativePath))
	// #nosec G304 - test helper, paths are controlled by test code
	content, err := os.ReadFile(fullPath)
	require.NoError(fa.t, err)
	require.Equal(fa.t, expected, string(content), "content of %s", relativePath)
	return fa
}

// AssertNotExists validates that nothing exists at relativePath.
func (fa *FileAssertions) AssertNotExists(relativePath string) *FileAssertions {
	fa.t.Helper()
	_, err := os.Stat(filepath.Join(fa.baseDir, filepath.FromSlash(relativePath)))
	require.True(fa.t, os.IsNotExist(err), "expected %s to be absent, stat err=%v", relativePath, err)
	return fa
}

// AssertEmptyDir validates that relativePath is a directory without entries.
func (fa *FileAssertions) AssertEmptyDir(relativePath string) *FileAssertions {
	fa.t.Helper()
	entries, err := os.ReadDir(filepath.Join(fa.baseDir, filepath.FromSlash(relativePath)))
	require.NoError(fa.t, err)
	require.Empty(fa.t, entries, "expected %s to be empty", relativePath)
	return fa
}

// Touch sets the modification time of relativePath and returns it.
func (fa *FileAssertions) Touch(relativePath string, when time.Time) time.Time {
	fa.t.Helper()
	require.NoError(fa.t, os.Chtimes(filepath.Join(fa.baseDir, filepath.FromSlash(relativePath)), when, when))
	return when
}

// AssertModTime validates that the modification time of relativePath equals want.
func (fa *FileAssertions) AssertModTime(relativePath string, want time.Time) *FileAssertions {
	fa.t.Helper()
	info, err := os.Stat(filepath.Join(fa.baseDir, filepath.FromSlash(relativePath)))
	require.NoError(fa.t, err)
	require.True(fa.t, info.ModTime().Equal(want), "mtime of %s changed to %v", relativePath, info.ModTime())
	return fa
}
