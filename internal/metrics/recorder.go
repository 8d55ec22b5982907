package metrics

import "time"

// OutcomeLabel enumerates the final status of a migration run.
type OutcomeLabel string

const (
	OutcomeSuccess       OutcomeLabel = "success"
	OutcomeSourceMissing OutcomeLabel = "source_missing"
	OutcomeInitialized   OutcomeLabel = "initialized"
	OutcomeDryRun        OutcomeLabel = "dry_run"
	OutcomeFailed        OutcomeLabel = "failed"
)

// Recorder defines observability hooks for the rewrite pass and the migration stages.
type Recorder interface {
	IncDocumentsScanned()
	IncDocumentsChanged()
	IncDecodeFallback()
	AddReplacements(kind string, n int)
	ObserveStageDuration(stage string, d time.Duration)
	IncTransportRetry(op string)
	IncOutcome(outcome OutcomeLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncDocumentsScanned()                       {}
func (NoopRecorder) IncDocumentsChanged()                       {}
func (NoopRecorder) IncDecodeFallback()                         {}
func (NoopRecorder) AddReplacements(string, int)                {}
func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) IncTransportRetry(string)                   {}
func (NoopRecorder) IncOutcome(OutcomeLabel)                    {}
