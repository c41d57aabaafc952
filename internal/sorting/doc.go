// Package sorting walks a directory tree and files each entry into a folder
// named after its category.
//
// A Sorter owns one run: it validates the root, scans it lazily, dispatches
// every file to the handler for its category, and unpacks archives into their
// own folder before sorting their contents with a nested pass. Per-file
// failures never abort a run; they are collected into the returned Report.
package sorting
