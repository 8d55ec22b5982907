package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID        = "run_id"
	KeyPath         = "path"
	KeyFile         = "file"
	KeyURL          = "url"
	KeyRemote       = "remote"
	KeyBranch       = "branch"
	KeyCommit       = "commit"
	KeyOperation    = "operation"
	KeyAttempt      = "attempt"
	KeyCount        = "count"
	KeyFilesChanged = "files_changed"
	KeyReplacements = "replacements"
	KeyEncoding     = "encoding"
	KeyDurationMS   = "duration_ms"
	KeyError        = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Remote(r string) slog.Attr       { return slog.String(KeyRemote, r) }
func Branch(b string) slog.Attr       { return slog.String(KeyBranch, b) }
func Commit(c string) slog.Attr       { return slog.String(KeyCommit, c) }
func Operation(op string) slog.Attr   { return slog.String(KeyOperation, op) }
func Attempt(n int) slog.Attr         { return slog.Int(KeyAttempt, n) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func FilesChanged(n int) slog.Attr    { return slog.Int(KeyFilesChanged, n) }
func Replacements(n int) slog.Attr    { return slog.Int(KeyReplacements, n) }
func Encoding(e string) slog.Attr     { return slog.String(KeyEncoding, e) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
