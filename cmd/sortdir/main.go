package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"sortdir/internal/services"
	"sortdir/internal/sorting"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
			if hint := errorHint(err); hint != "" {
				fmt.Fprintln(os.Stderr, "hint:", hint)
			}
		}
		os.Exit(1)
	}
}

// errorHint suggests the command that diagnoses a run-aborting error.
func errorHint(err error) string {
	switch {
	case errors.Is(err, services.ErrConfiguration):
		return "run `sortdir config validate` to inspect the configuration"
	case errors.Is(err, sorting.ErrLocked):
		return "wait for the other run to finish, or pass --no-lock"
	case services.IsFatal(err):
		return "run `sortdir check <path>` to inspect the folder"
	default:
		return ""
	}
}
