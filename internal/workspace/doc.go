// Package workspace manages the temporary working copy of a migration run.
//
// A workspace is created fresh under the base directory (wikimigrate-XXXX) and
// removed completely on Cleanup, unless it was created in keep mode, in which
// case the directory is left behind for inspection.
package workspace
