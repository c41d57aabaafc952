package sorting

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFileName is the advisory lock held at the root of a tree while it is sorted.
const LockFileName = ".sortdir.lock"

// ErrLocked reports that another process is already sorting the tree.
var ErrLocked = errors.New("directory is being sorted by another process")

// TreeLock is an exclusive advisory lock on a tree.
type TreeLock struct {
	path string
	lock *flock.Flock
}

// AcquireLock takes the tree lock for root without blocking.
func AcquireLock(root string) (*TreeLock, error) {
	path := filepath.Join(root, LockFileName)
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, path)
	}
	return &TreeLock{path: path, lock: lock}, nil
}

// Path returns the lock file location.
func (l *TreeLock) Path() string {
	return l.path
}

// Release unlocks the tree, then removes the lock file. A file already removed
// by someone else is not an error.
func (l *TreeLock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove lock file: %w", err)
	}
	return nil
}
