package linkrewrite

import (
	"errors"
	"io/fs"
	"iter"
	"path/filepath"
	"strings"
)

var errStopWalk = errors.New("stop walk")

// Documents yields the path of every regular file under root whose name ends with one
// of exts (case-insensitive), in filepath.WalkDir order. .git directories are skipped
// and symlinks are never followed, so a symlinked document is not rewritten.
// A walk error is yielded once with an empty path and ends the sequence.
func Documents(root string, exts []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if d.Name() == ".git" && path != root {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() || !HasExtension(d.Name(), exts) {
				return nil
			}
			if !yield(path, nil) {
				return errStopWalk
			}
			return nil
		})
		if err != nil && !errors.Is(err, errStopWalk) {
			yield("", ioError("failed to walk directory", root, err))
		}
	}
}

// HasExtension reports whether name ends with one of exts, ignoring case.
func HasExtension(name string, exts []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range exts {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}
