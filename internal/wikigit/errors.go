package wikigit

import (
	"context"
	stderrors "errors"
	"net"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/transport"

	"git.home.luguber.info/inful/wikimigrate/internal/foundation/errors"
)

// GitError simplifies creating a git-scoped ClassifiedError.
func GitError(message string) *errors.ErrorBuilder {
	return errors.NewError(errors.CategoryGit, message)
}

// ClassifyGitError translates go-git errors into ClassifiedErrors. Sentinel errors
// are matched first; message heuristics cover errors reported by a remote git binary.
func ClassifyGitError(err error, op string, url string) error {
	if err == nil {
		return nil
	}

	// Already classified
	if _, ok := errors.AsClassified(err); ok {
		return err
	}

	message := "git " + op + " failed"
	var builder *errors.ErrorBuilder
	var nerr net.Error
	l := strings.ToLower(err.Error())
	switch {
	case stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded):
		builder = GitError(message).WithCategory(errors.CategoryNetwork).Warning()
	case stderrors.Is(err, transport.ErrRepositoryNotFound) || stderrors.Is(err, transport.ErrEmptyRemoteRepository):
		builder = errors.NotFoundError(message)
	case stderrors.Is(err, transport.ErrAuthenticationRequired) ||
		stderrors.Is(err, transport.ErrAuthorizationFailed) ||
		stderrors.Is(err, transport.ErrInvalidAuthMethod):
		builder = errors.AuthError(message)
	case stderrors.Is(err, git.ErrNonFastForwardUpdate):
		builder = GitError(message).WithContext("diverged", true)
	case stderrors.As(err, &nerr):
		if nerr.Timeout() {
			builder = errors.NetworkError(message)
		} else {
			builder = GitError(message).WithCategory(errors.CategoryNetwork)
		}
	case strings.Contains(l, "authentication failed") || strings.Contains(l, "not authorized") || strings.Contains(l, "could not read username") || strings.Contains(l, "invalid credentials"):
		builder = errors.AuthError(message)
	case strings.Contains(l, "repository not found") || strings.Contains(l, "does not exist") || strings.Contains(l, "does not appear to be a git repository"):
		builder = errors.NotFoundError(message)
	case strings.Contains(l, "remote hung up") || strings.Contains(l, "connection reset") || strings.Contains(l, "timeout") || strings.Contains(l, "no route to host"):
		builder = errors.NetworkError(message)
	case strings.Contains(l, "rate limit") || strings.Contains(l, "too many requests"):
		builder = errors.NetworkError(message).RateLimit()
	case strings.Contains(l, "unsupported protocol") || strings.Contains(l, "protocol not supported"):
		builder = GitError(message).WithCategory(errors.CategoryConfig)
	default:
		builder = GitError(message)
	}

	return builder.
		WithCause(err).
		WithContext("op", op).
		WithContext("url", url).
		Build()
}

// IsNotFound reports whether err means the remote repository does not exist (or is empty).
func IsNotFound(err error) bool {
	return errors.HasCategory(err, errors.CategoryNotFound)
}

// IsAuth reports whether err is an authentication or authorization failure.
func IsAuth(err error) bool {
	return errors.HasCategory(err, errors.CategoryAuth)
}
