package config

import (
	"time"

	"git.home.luguber.info/inful/wikimigrate/internal/foundation/normalization"
)

// RetryBackoffMode enumerates supported backoff strategies for retries.
type RetryBackoffMode string

const (
	RetryBackoffFixed       RetryBackoffMode = "fixed"
	RetryBackoffLinear      RetryBackoffMode = "linear"
	RetryBackoffExponential RetryBackoffMode = "exponential"
)

// RetryConfig controls retries of transient transport failures (clone, push).
type RetryConfig struct {
	MaxRetries   int              `yaml:"max_retries"`
	Backoff      RetryBackoffMode `yaml:"backoff"`
	InitialDelay string           `yaml:"initial_delay"`
	MaxDelay     string           `yaml:"max_delay"`
}

// NormalizeRetryBackoff converts arbitrary user input (case-insensitive) into a typed mode, returning empty string for unknown.
func NormalizeRetryBackoff(raw string) RetryBackoffMode {
	return retryBackoffNormalizer.Normalize(raw)
}

var retryBackoffNormalizer = normalization.NewNormalizer(map[string]RetryBackoffMode{
	string(RetryBackoffFixed):       RetryBackoffFixed,
	string(RetryBackoffLinear):      RetryBackoffLinear,
	string(RetryBackoffExponential): RetryBackoffExponential,
}, "")

func (r *RetryConfig) applyDefaults() {
	if r.MaxRetries < 0 {
		r.MaxRetries = 0
	}
	switch mode := NormalizeRetryBackoff(string(r.Backoff)); {
	case r.Backoff == "":
		r.Backoff = RetryBackoffLinear
	case mode != "":
		r.Backoff = mode
	}
	if r.InitialDelay == "" {
		r.InitialDelay = "1s"
	}
	if r.MaxDelay == "" {
		r.MaxDelay = "30s"
	}
}

// Delays parses the configured delays; unparsable values come back as zero.
func (r RetryConfig) Delays() (initial, maxDelay time.Duration) {
	initial, _ = time.ParseDuration(r.InitialDelay)
	maxDelay, _ = time.ParseDuration(r.MaxDelay)
	return initial, maxDelay
}
