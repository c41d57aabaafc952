// Package fileutil holds the filesystem primitives the sorter relies on:
// moves that never overwrite, exclusive-create copies and writes, and
// directory helpers.
package fileutil
