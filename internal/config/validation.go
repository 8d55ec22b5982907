package config

import (
	"fmt"
	"strings"
	"time"

	"git.home.luguber.info/inful/wikimigrate/internal/foundation/errors"
)

// Validate checks the fields a migration run cannot do without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Source) == "" {
		return errors.ValidationError("source repository is required").Build()
	}
	if strings.TrimSpace(c.Destination) == "" {
		return errors.ValidationError("destination repository is required").Build()
	}
	if c.Branch == "" || strings.ContainsAny(c.Branch, " ~^:?*[\\") {
		return errors.ValidationError(fmt.Sprintf("invalid branch name %q", c.Branch)).Build()
	}
	for _, ext := range c.Rewrite.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return errors.ValidationError(fmt.Sprintf("extension %q must start with a dot", ext)).Build()
		}
	}
	if err := c.validateAuth(); err != nil {
		return err
	}
	return c.Retry.validate()
}

func (c *Config) validateAuth() error {
	if c.Auth == nil || c.Auth.Type == "" {
		return nil
	}
	t, err := authTypeNormalizer.NormalizeWithError(string(c.Auth.Type))
	if err != nil {
		return errors.ValidationError("unsupported auth type").
			WithCause(err).
			WithContext("type", string(c.Auth.Type)).
			WithContext("valid", authTypeNormalizer.ValidKeys()).
			Build()
	}
	c.Auth.Type = t
	return nil
}

func (r RetryConfig) validate() error {
	if NormalizeRetryBackoff(string(r.Backoff)) == "" {
		return errors.ValidationError(fmt.Sprintf("unsupported retry backoff %q", r.Backoff)).
			WithContext("valid", retryBackoffNormalizer.ValidKeys()).
			Build()
	}
	for name, raw := range map[string]string{"initial_delay": r.InitialDelay, "max_delay": r.MaxDelay} {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return errors.ValidationError(fmt.Sprintf("retry.%s must be a positive duration, got %q", name, raw)).Build()
		}
	}
	return nil
}
