package linkrewrite

// FileChange describes one rewritten document.
type FileChange struct {
	Path      string
	Inline    int
	Reference int
	Encoding  Encoding
}

// Replacements is the combined count of both rules for the document.
func (c FileChange) Replacements() int { return c.Inline + c.Reference }

// Report aggregates the outcome of a rewrite pass over a tree.
type Report struct {
	FilesScanned int
	FilesChanged int
	Replacements int
	Fallbacks    int // documents decoded as latin-1
	Changes      []FileChange
}

func (r *Report) record(c FileChange) {
	r.FilesChanged++
	r.Replacements += c.Replacements()
	r.Changes = append(r.Changes, c)
}
