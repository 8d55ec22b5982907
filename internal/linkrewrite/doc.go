// Package linkrewrite flattens relative wiki links so a wiki tree can move from a
// host with hierarchical relative paths (GitLab) to one with a flat page
// namespace (GitHub).
//
// Two rules are applied to every markdown document, inline rule first:
//
//	[label](../../Page#anchor)          ->  [label](Page#anchor)
//	[label]: ./Page#anchor "Some title" ->  [label]: Page#anchor
//
// Only targets starting with at least one "../" or "./" segment are touched.
// Absolute URLs and absolute paths never match. Reference titles are dropped.
//
// RewriteDir walks a directory, rewrites matching documents in place (UTF-8)
// and returns a Report. Documents without matches are never written.
package linkrewrite
