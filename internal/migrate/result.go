package migrate

import (
	"git.home.luguber.info/inful/wikimigrate/internal/linkrewrite"
	"git.home.luguber.info/inful/wikimigrate/internal/metrics"
)

// Result summarises one migration run.
type Result struct {
	RunID         string
	Report        linkrewrite.Report
	Branch        string // branch pushed to the destination
	SourceBranch  string // branch checked out by the clone
	SourceMissing bool // source wiki absent; nothing was done
	Committed     bool // link rewrite produced a commit
	Initialized   bool // destination push failed and the init fallback ran
	Pushed        bool
	WorkDir       string // working copy, only present after the run when the workspace is kept
}

// Outcome maps the result onto the run outcome label.
func (r Result) Outcome(dryRun bool, err error) metrics.OutcomeLabel {
	switch {
	case err != nil:
		return metrics.OutcomeFailed
	case r.SourceMissing:
		return metrics.OutcomeSourceMissing
	case dryRun:
		return metrics.OutcomeDryRun
	case r.Initialized:
		return metrics.OutcomeInitialized
	default:
		return metrics.OutcomeSuccess
	}
}
