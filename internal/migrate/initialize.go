package migrate

import (
	"fmt"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/wikimigrate/internal/foundation/errors"
	"git.home.luguber.info/inful/wikimigrate/internal/wikigit"
)

// HomePage is the page created when the destination wiki has never been initialized.
const HomePage = "Home.md"

// HomeContent is the body of the generated Home page.
func HomeContent(destination string) string {
	return fmt.Sprintf("# %s Wiki\n\n(Initialized from GitLab)", destination)
}

// initialize adds and commits HomePage unless the working copy already has one.
func (m *Migrator) initialize(repo *wikigit.Repo) error {
	path := filepath.Join(repo.Path(), HomePage)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to check home page").
			WithContext("path", path).
			Build()
	}

	if err := os.WriteFile(path, []byte(HomeContent(m.cfg.Destination)), 0o644); err != nil { //nolint:gosec // wiki pages are public content
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write home page").
			WithContext("path", path).
			Build()
	}
	if err := repo.Add(HomePage); err != nil {
		return err
	}
	_, err := repo.Commit(m.cfg.InitMessage)
	return err
}
