package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/mholt/archives"

	"sortdir/internal/fileutil"
	"sortdir/internal/textutil"
)

var (
	// ErrUnsupported marks files whose format could not be identified as an archive.
	ErrUnsupported = errors.New("unsupported archive format")
	// ErrCorrupt marks archives that were identified but could not be read.
	ErrCorrupt = errors.New("corrupt archive")
	// ErrUnsafePath marks entries that would escape the destination directory.
	ErrUnsafePath = errors.New("unsafe entry path")
)

// Options bounds an extraction.
type Options struct {
	// MaxBytes caps the total uncompressed bytes written. Zero means no limit.
	MaxBytes int64
}

// Result summarizes a successful extraction.
type Result struct {
	Format  string
	Files   int
	Bytes   int64
	Skipped int
}

// Extract unpacks the archive at src into destDir, which must already exist.
// On error destDir may hold partially extracted content; callers own cleanup.
func Extract(ctx context.Context, src, destDir string, opts Options) (Result, error) {
	var result Result

	f, err := os.Open(src)
	if err != nil {
		return result, err
	}
	defer f.Close()

	format, _, err := archives.Identify(ctx, filepath.Base(src), f)
	if err != nil {
		return result, fmt.Errorf("%w: %s: %w", ErrUnsupported, filepath.Base(src), err)
	}
	result.Format = strings.TrimPrefix(format.Extension(), ".")

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return result, err
	}

	w := &writer{dest: destDir, limit: opts.MaxBytes, result: &result}

	switch ff := format.(type) {
	case archives.Extractor:
		if err := ff.Extract(ctx, f, w.handle); err != nil {
			return result, classify(err)
		}
	case archives.Decompressor:
		rc, err := ff.OpenReader(f)
		if err != nil {
			return result, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		defer rc.Close()
		name := decompressedName(filepath.Base(src))
		if err := w.writeFile(ctx, name, rc, 0o644); err != nil {
			return result, classify(err)
		}
	default:
		return result, fmt.Errorf("%w: %s is not extractable", ErrUnsupported, result.Format)
	}
	return result, nil
}

type writer struct {
	dest    string
	limit   int64
	written int64
	result  *Result
}

func (w *writer) handle(ctx context.Context, info archives.FileInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name := info.NameInArchive
	if info.IsDir() {
		target, err := w.resolve(name)
		if err != nil {
			return err
		}
		return fileutil.EnsureDir(target)
	}
	if !info.Mode().IsRegular() || info.LinkTarget != "" {
		w.result.Skipped++
		return nil
	}
	rc, err := info.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	return w.writeFile(ctx, name, rc, info.Mode().Perm())
}

func (w *writer) writeFile(ctx context.Context, name string, r io.Reader, perm fs.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, err := w.resolve(name)
	if err != nil {
		return err
	}
	if err := fileutil.EnsureDir(filepath.Dir(target)); err != nil {
		return err
	}
	remaining := int64(0)
	if w.limit > 0 {
		remaining = w.limit - w.written
		if remaining <= 0 {
			return fmt.Errorf("%w: extraction exceeds %d bytes", fileutil.ErrLimitExceeded, w.limit)
		}
	}
	n, err := fileutil.WriteExclusive(target, r, perm|0o600, remaining)
	w.written += n
	if err != nil {
		return err
	}
	w.result.Files++
	w.result.Bytes = w.written
	return nil
}

func (w *writer) resolve(name string) (string, error) {
	cleaned := path.Clean(strings.ReplaceAll(name, `\`, "/"))
	cleaned = strings.TrimPrefix(cleaned, "./")
	if cleaned == "." || cleaned == "" {
		return w.dest, nil
	}
	local := filepath.FromSlash(cleaned)
	if !filepath.IsLocal(local) {
		return "", fmt.Errorf("%w: %q", ErrUnsafePath, name)
	}
	return filepath.Join(w.dest, local), nil
}

// decompressedName derives the output name for a single compressed stream.
func decompressedName(archiveName string) string {
	name := textutil.StripExtension(archiveName)
	if name == "" || name == archiveName {
		return archiveName + ".out"
	}
	return name
}

// classify keeps cancellation, limit, and filesystem errors intact and treats
// anything else raised while reading the archive as corruption.
func classify(err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, ErrUnsafePath), errors.Is(err, fileutil.ErrLimitExceeded):
		return err
	case errors.Is(err, fs.ErrExist), errors.Is(err, fs.ErrPermission):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
}
