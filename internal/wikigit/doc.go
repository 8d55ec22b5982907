// Package wikigit wraps go-git for the handful of operations a wiki migration needs:
// clone the source, repoint origin, commit the rewritten pages, normalise the branch
// name and force-push to the destination.
//
// Transport failures are returned as classified errors (see ClassifyGitError) so callers
// can tell a missing repository from bad credentials or a flaky network.
package wikigit
