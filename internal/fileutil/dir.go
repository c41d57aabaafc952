package fileutil

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// EnsureDir creates dir and any missing parents. An existing directory is not an error.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// IsDirEmpty reports whether dir has no entries.
func IsDirEmpty(dir string) (bool, error) {
	f, err := os.Open(dir)
	if err != nil {
		return false, err
	}
	defer f.Close()
	_, err = f.Readdirnames(1)
	if errors.Is(err, io.EOF) {
		return true, nil
	}
	return false, err
}

// RemoveIfEmpty removes dir when it has no entries and reports whether it did.
func RemoveIfEmpty(dir string) (bool, error) {
	empty, err := IsDirEmpty(dir)
	if err != nil || !empty {
		return false, err
	}
	if err := os.Remove(dir); err != nil {
		return false, err
	}
	return true, nil
}

// PruneEmptyDirs removes empty directories below root, deepest first. root is
// never removed. Directories for which keep returns true, and everything
// beneath them, are left alone. It returns the removed paths.
func PruneEmptyDirs(root string, keep func(path string) bool) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if !d.IsDir() || path == root {
			return nil
		}
		if keep != nil && keep(path) {
			return filepath.SkipDir
		}
		dirs = append(dirs, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(dirs, func(i, j int) bool {
		return strings.Count(dirs[i], string(filepath.Separator)) > strings.Count(dirs[j], string(filepath.Separator))
	})
	var removed []string
	for _, dir := range dirs {
		ok, err := RemoveIfEmpty(dir)
		if err != nil {
			continue
		}
		if ok {
			removed = append(removed, dir)
		}
	}
	return removed, nil
}
