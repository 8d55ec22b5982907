// Package migrate copies a wiki from one git remote to another, flattening
// GitLab-style relative links on the way.
//
// A run clones the source into a temporary workspace, points origin at the
// destination, rewrites links, commits the result, normalises the branch name and
// force-pushes. A destination that rejects the first push is treated as an
// uninitialized wiki: a Home page is created and the push is retried once.
//
// Only a source the remote reports as missing or empty ends the run early without
// an error. An authentication failure on clone is returned as such, so the CLI exits
// with code 5; GitLab answers that way for a private or missing wiki when no token
// is given.
package migrate
