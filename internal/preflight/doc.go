// Package preflight provides readiness checks for the folder being sorted and
// the paths sortdir writes to.
//
// The CLI "sortdir check" command runs RunAll and prints one status line per
// check, so permission and locking problems surface before any file moves.
package preflight
