package workspace

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/wikimigrate/internal/foundation/errors"
	"git.home.luguber.info/inful/wikimigrate/internal/logfields"
)

const dirPattern = "wikimigrate-*"

// Manager handles the lifecycle of one temporary workspace directory.
type Manager struct {
	baseDir string
	tempDir string
	keep    bool // If true, Cleanup leaves the directory in place
}

// NewManager creates a workspace manager rooted at baseDir (os.TempDir() when empty).
func NewManager(baseDir string) *Manager {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	return &Manager{baseDir: baseDir}
}

// WithKeep makes Cleanup a no-op so the working copy survives the run.
func (m *Manager) WithKeep(keep bool) *Manager {
	m.keep = keep
	return m
}

// Create creates a fresh, uniquely named workspace directory.
func (m *Manager) Create() error {
	if err := os.MkdirAll(m.baseDir, 0o750); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create workspace base directory").
			WithContext("path", m.baseDir).
			Build()
	}
	tempDir, err := os.MkdirTemp(m.baseDir, dirPattern)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create workspace directory").
			WithContext("path", m.baseDir).
			Build()
	}
	m.tempDir = tempDir
	slog.Debug("Created workspace", logfields.Path(tempDir))
	return nil
}

// GetPath returns the path to the workspace directory
func (m *Manager) GetPath() string {
	return m.tempDir
}

// Subdir returns the path of name inside the workspace without creating it.
func (m *Manager) Subdir(name string) (string, error) {
	if m.tempDir == "" {
		return "", fmt.Errorf("workspace not created")
	}
	return filepath.Join(m.tempDir, name), nil
}

// Cleanup removes the workspace directory.
func (m *Manager) Cleanup() error {
	if m.tempDir == "" {
		return nil
	}
	if m.keep {
		slog.Info("Keeping workspace", logfields.Path(m.tempDir))
		return nil
	}
	if err := os.RemoveAll(m.tempDir); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to cleanup workspace").
			WithContext("path", m.tempDir).
			Build()
	}
	slog.Debug("Cleaned up workspace", logfields.Path(m.tempDir))
	m.tempDir = ""
	return nil
}
