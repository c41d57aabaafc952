package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"
)

// MoveNoReplace renames src to dst without ever replacing an existing dst.
// When dst exists the returned error satisfies errors.Is(err, fs.ErrExist) and
// src is left in place. The file ends either at dst or at src, never both.
func MoveNoReplace(src, dst string) error {
	err := renameNoReplace(src, dst)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrExist) {
		return err
	}
	if !errors.Is(err, errNoReplaceUnsupported) {
		if errors.Is(err, syscall.EXDEV) {
			return copyThenRemove(src, dst)
		}
		return err
	}

	// Hard links fail with EEXIST atomically when dst is taken.
	linkErr := os.Link(src, dst)
	if linkErr == nil {
		if err := os.Remove(src); err != nil {
			_ = os.Remove(dst)
			return fmt.Errorf("remove source after link: %w", err)
		}
		return nil
	}
	if errors.Is(linkErr, fs.ErrExist) {
		return linkErr
	}
	if errors.Is(linkErr, syscall.EXDEV) {
		return copyThenRemove(src, dst)
	}

	// Filesystems without hard links: check-then-rename is the best available.
	if _, err := os.Lstat(dst); err == nil {
		return &os.LinkError{Op: "rename", Old: src, New: dst, Err: fs.ErrExist}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.Rename(src, dst)
}

func copyThenRemove(src, dst string) error {
	if err := CopyFileExclusive(src, dst); err != nil {
		return err
	}
	if err := os.Remove(src); err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("remove source after copy: %w", err)
	}
	return nil
}
