package sorting

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"sortdir/internal/archive"
	"sortdir/internal/category"
	"sortdir/internal/fileutil"
	"sortdir/internal/services"
	"sortdir/internal/textutil"
)

// pass is one scan of a directory; nested archives get their own pass.
// include names the category folders the archive itself contained.
type pass struct {
	root    string
	depth   int
	include []string
}

// handler files one entry. A non-nil pass asks the orchestrator to sort the
// returned directory next. A zero Outcome means the entry already sits where
// it would be filed.
type handler interface {
	handle(ctx context.Context, p pass, entry FileEntry) (Outcome, *pass)
}

func (s *Sorter) handlerFor(c category.Category) handler {
	switch c {
	case category.Archive:
		return archiveHandler{maxDepth: s.opts.MaxArchiveDepth, maxBytes: s.opts.MaxExtractBytes}
	case category.Unknown:
		if s.opts.BucketUnknown {
			return moveHandler{}
		}
		return leaveHandler{}
	default:
		return moveHandler{}
	}
}

func failed(p pass, entry FileEntry, target string, err error) Outcome {
	return Outcome{
		Source:   entry.Path,
		Target:   target,
		Category: entry.Category,
		Action:   services.ActionFor(err),
		Depth:    p.depth,
		Err:      err,
	}
}

type moveHandler struct{}

func (moveHandler) handle(_ context.Context, p pass, entry FileEntry) (Outcome, *pass) {
	folder := filepath.Join(p.root, entry.Category.String())
	if err := fileutil.EnsureDir(folder); err != nil {
		return failed(p, entry, "", services.Wrap(services.ErrFilesystem, "move", "create folder", folder, err)), nil
	}
	target := filepath.Join(folder, textutil.Normalize(entry.Name))
	if target == entry.Path {
		return Outcome{}, nil
	}
	if err := fileutil.MoveNoReplace(entry.Path, target); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return failed(p, entry, target, services.Wrap(services.ErrNameCollision, "move", "rename", "target already exists", err)), nil
		}
		return failed(p, entry, target, services.Wrap(services.ErrFilesystem, "move", "rename", "", err)), nil
	}
	return Outcome{
		Source:   entry.Path,
		Target:   target,
		Category: entry.Category,
		Action:   services.ActionMoved,
		Depth:    p.depth,
	}, nil
}

type archiveHandler struct {
	maxDepth int
	maxBytes int64
}

func (h archiveHandler) handle(ctx context.Context, p pass, entry FileEntry) (Outcome, *pass) {
	if p.depth >= h.maxDepth {
		msg := fmt.Sprintf("nested %d levels deep, limit is %d", p.depth, h.maxDepth)
		return failed(p, entry, "", services.Wrap(services.ErrDepthLimit, "archive", "extract", msg, nil)), nil
	}

	archiveRoot := filepath.Join(p.root, category.Archive.String())
	if err := fileutil.EnsureDir(archiveRoot); err != nil {
		return failed(p, entry, "", services.Wrap(services.ErrFilesystem, "archive", "create folder", archiveRoot, err)), nil
	}
	dest := filepath.Join(archiveRoot, textutil.Normalize(textutil.StripExtension(entry.Name)))
	if err := os.Mkdir(dest, 0o755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return failed(p, entry, dest, services.Wrap(services.ErrNameCollision, "archive", "create folder", "target already exists", err)), nil
		}
		_, _ = fileutil.RemoveIfEmpty(archiveRoot)
		return failed(p, entry, dest, services.Wrap(services.ErrFilesystem, "archive", "create folder", dest, err)), nil
	}

	res, err := archive.Extract(ctx, entry.Path, dest, archive.Options{MaxBytes: h.maxBytes})
	if err != nil {
		_ = os.RemoveAll(dest)
		_, _ = fileutil.RemoveIfEmpty(archiveRoot)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return failed(p, entry, "", ctxErr), nil
		}
		return failed(p, entry, "", services.Wrap(services.ErrUnsupportedArchive, "archive", "extract", "", err)), nil
	}

	next := &pass{root: dest, depth: p.depth + 1, include: extractedFolders(dest)}
	if err := os.Remove(entry.Path); err != nil {
		return failed(p, entry, dest, services.Wrap(services.ErrFilesystem, "archive", "remove original", "", err)), next
	}
	return Outcome{
		Source:   entry.Path,
		Target:   dest,
		Category: entry.Category,
		Action:   services.ActionExtracted,
		Depth:    p.depth,
		Format:   res.Format,
		Files:    res.Files,
		Bytes:    res.Bytes,
	}, next
}

// extractedFolders lists the category-named directories at the top of dest
// right after extraction. Read errors are left for the sub-pass scan to report.
func extractedFolders(dest string) []string {
	entries, err := os.ReadDir(dest)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() && isCategoryFolder(e.Name()) {
			names = append(names, e.Name())
		}
	}
	return names
}

type leaveHandler struct{}

func (leaveHandler) handle(_ context.Context, p pass, entry FileEntry) (Outcome, *pass) {
	return Outcome{
		Source:   entry.Path,
		Category: entry.Category,
		Action:   services.ActionLeftUnknown,
		Depth:    p.depth,
	}, nil
}
