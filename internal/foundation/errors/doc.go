// Package errors provides the classified error primitives used across wikimigrate.
//
// Errors carry a category (config, git, filesystem, ...), a severity, a retry hint
// and structured context. The CLI adapter turns them into exit codes and
// operator-facing messages.
//
// Example usage:
//
//	err := errors.NewError(errors.CategoryGit, "push failed").
//		Retryable().
//		WithContext("remote", "origin").
//		WithCause(originalErr).
//		Build()
package errors
