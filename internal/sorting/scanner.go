package sorting

import (
	"context"
	"io/fs"
	"iter"
	"path/filepath"

	"sortdir/internal/category"
)

// FileEntry is a candidate file yielded by Scan.
type FileEntry struct {
	Path     string
	Name     string
	Category category.Category
}

// ScanOptions controls what Scan yields.
type ScanOptions struct {
	// Table classifies entries; nil means category.Default().
	Table *category.Table
	// Ignore lists base names at the scan root that are never yielded.
	Ignore []string
	// Include lists category folders directly under root that are walked
	// anyway, such as folders unpacked from an archive.
	Include []string
}

// Scan lazily walks root and yields every regular file outside the category
// folders directly under root, except those named in opts.Include. Symlinks
// and special files are skipped. A directory that cannot be read yields its
// error and the walk continues.
func Scan(ctx context.Context, root string, opts ScanOptions) iter.Seq2[FileEntry, error] {
	root = filepath.Clean(root)
	table := opts.Table
	if table == nil {
		table = category.Default()
	}
	excluded := make(map[string]struct{}, len(category.All()))
	for _, c := range category.All() {
		excluded[c.String()] = struct{}{}
	}
	for _, name := range opts.Include {
		delete(excluded, name)
	}
	ignored := make(map[string]struct{}, len(opts.Ignore))
	for _, name := range opts.Ignore {
		ignored[name] = struct{}{}
	}

	return func(yield func(FileEntry, error) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if ctxErr := ctx.Err(); ctxErr != nil {
				yield(FileEntry{Path: path}, ctxErr)
				return filepath.SkipAll
			}
			if err != nil {
				name := filepath.Base(path)
				if d != nil {
					name = d.Name()
				}
				if !yield(FileEntry{Path: path, Name: name}, err) {
					return filepath.SkipAll
				}
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			atRoot := filepath.Dir(path) == root
			if d.IsDir() {
				if path == root {
					return nil
				}
				if _, ok := excluded[d.Name()]; ok && atRoot {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if _, ok := ignored[d.Name()]; ok && atRoot {
				return nil
			}
			entry := FileEntry{Path: path, Name: d.Name(), Category: table.Classify(d.Name())}
			if !yield(entry, nil) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// isCategoryFolder reports whether name is exactly the folder name of a category.
func isCategoryFolder(name string) bool {
	for _, c := range category.All() {
		if c.String() == name {
			return true
		}
	}
	return false
}
