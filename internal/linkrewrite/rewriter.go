package linkrewrite

import (
	"log/slog"

	"git.home.luguber.info/inful/wikimigrate/internal/logfields"
	"git.home.luguber.info/inful/wikimigrate/internal/metrics"
)

// DefaultExtensions are the markdown-family suffixes visited when none are configured.
var DefaultExtensions = []string{".md", ".markdown"}

// Rewriter runs the link rules over a directory tree.
type Rewriter struct {
	extensions []string
	dryRun     bool
	recorder   metrics.Recorder
	logger     *slog.Logger
}

// Option configures a Rewriter.
type Option func(*Rewriter)

// WithExtensions overrides the file suffixes considered documents.
func WithExtensions(exts ...string) Option {
	return func(r *Rewriter) {
		if len(exts) > 0 {
			r.extensions = exts
		}
	}
}

// WithDryRun computes the report without writing any file.
func WithDryRun(dryRun bool) Option {
	return func(r *Rewriter) { r.dryRun = dryRun }
}

// WithRecorder attaches a metrics recorder.
func WithRecorder(rec metrics.Recorder) Option {
	return func(r *Rewriter) {
		if rec != nil {
			r.recorder = rec
		}
	}
}

// WithLogger sets the logger used for progress messages.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Rewriter) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a Rewriter with the default extensions, a noop recorder and slog.Default().
func New(opts ...Option) *Rewriter {
	r := &Rewriter{
		extensions: DefaultExtensions,
		recorder:   metrics.NoopRecorder{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RewriteDir rewrites every document under root. Any I/O error aborts the pass and is
// returned together with the partial report.
func (r *Rewriter) RewriteDir(root string) (Report, error) {
	var report Report
	for path, err := range Documents(root, r.extensions) {
		if err != nil {
			return report, err
		}
		change, fallback, err := r.rewriteFile(path)
		if err != nil {
			return report, err
		}
		report.FilesScanned++
		if fallback {
			report.Fallbacks++
		}
		if change.Replacements() > 0 {
			report.record(change)
		}
	}

	r.logger.Info("Link conversion completed",
		logfields.Path(root),
		logfields.FilesChanged(report.FilesChanged),
		logfields.Replacements(report.Replacements),
		slog.Bool("dry_run", r.dryRun))
	return report, nil
}

func (r *Rewriter) rewriteFile(path string) (FileChange, bool, error) {
	doc, err := ReadDocument(path)
	if err != nil {
		return FileChange{}, false, err
	}
	r.recorder.IncDocumentsScanned()
	fallback := doc.Encoding != EncodingUTF8
	if fallback {
		r.recorder.IncDecodeFallback()
		r.logger.Debug("Decoded document with fallback encoding", logfields.Path(path), logfields.Encoding(string(doc.Encoding)))
	}

	res := Rewrite(doc.Content)
	change := FileChange{Path: path, Inline: res.Inline, Reference: res.Reference, Encoding: doc.Encoding}
	if res.Total() == 0 {
		return change, fallback, nil
	}

	for _, m := range res.Matches {
		r.logger.Debug("Link flattened", logfields.Path(path), slog.String("kind", string(m.Kind)), slog.String("link", m.Render()))
	}
	if !r.dryRun {
		if err := doc.Write(res.Content); err != nil {
			return FileChange{}, fallback, err
		}
	}
	r.recorder.IncDocumentsChanged()
	r.recorder.AddReplacements(string(KindInline), res.Inline)
	r.recorder.AddReplacements(string(KindReference), res.Reference)
	r.logger.Info("Links fixed", logfields.Path(path), logfields.Count(res.Total()))
	return change, fallback, nil
}
