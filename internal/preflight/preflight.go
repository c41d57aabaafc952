package preflight

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/unix"

	"sortdir/internal/category"
	"sortdir/internal/config"
	"sortdir/internal/sorting"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes every check for sorting root under cfg.
func RunAll(ctx context.Context, cfg *config.Config, root string) []Result {
	if cfg == nil {
		return nil
	}
	results := []Result{CheckDirectoryAccess("Source folder", root)}
	if results[0].Passed && cfg.Sort.Lock {
		results = append(results, CheckLock(root))
	}
	if ctx.Err() != nil {
		return results
	}
	results = append(results, CheckExtensionTable(cfg))
	results = append(results, CheckLogDir(cfg))
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckLock verifies that no other process is sorting root. The lock is
// released again before returning.
func CheckLock(root string) Result {
	const name = "Folder lock"
	lock, err := sorting.AcquireLock(root)
	if err != nil {
		if errors.Is(err, sorting.ErrLocked) {
			return Result{Name: name, Detail: "held by another sortdir process"}
		}
		return Result{Name: name, Detail: err.Error()}
	}
	if err := lock.Release(); err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	return Result{Name: name, Passed: true, Detail: "available"}
}

// CheckExtensionTable verifies the configured extensions build a valid table.
func CheckExtensionTable(cfg *config.Config) Result {
	const name = "Extension table"
	table, err := cfg.Table()
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	parts := make([]string, 0, len(category.All()))
	for _, c := range category.All() {
		if n := len(table.Extensions(c)); n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", c, n))
		}
	}
	return Result{Name: name, Passed: true, Detail: strings.Join(parts, ", ")}
}

// CheckLogDir verifies the optional log directory is writable.
func CheckLogDir(cfg *config.Config) Result {
	const name = "Log directory"
	if strings.TrimSpace(cfg.Logging.Dir) == "" {
		return Result{Name: name, Passed: true, Detail: "not configured (stderr only)"}
	}
	if _, err := os.Stat(cfg.Logging.Dir); errors.Is(err, os.ErrNotExist) {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (created on first run)", cfg.Logging.Dir)}
	}
	return CheckDirectoryAccess(name, cfg.Logging.Dir)
}
