package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"sortdir/internal/config"
	"sortdir/internal/sorting"
)

type sortFlags struct {
	json       bool
	unknown    string
	maxDepth   int
	pruneEmpty bool
	noLock     bool
}

func bindSortFlags(cmd *cobra.Command, flags *sortFlags) {
	cmd.Flags().BoolVar(&flags.json, "json", false, "Print the report as JSON")
	cmd.Flags().StringVar(&flags.unknown, "unknown", "", "Unknown-extension policy override (leave, bucket)")
	cmd.Flags().IntVar(&flags.maxDepth, "max-depth", 0, "Nested archive depth override")
	cmd.Flags().BoolVar(&flags.pruneEmpty, "prune-empty", false, "Remove subdirectories left empty after sorting")
	cmd.Flags().BoolVar(&flags.noLock, "no-lock", false, "Do not take the folder lock")
}

func newSortCommand(ctx *commandContext) *cobra.Command {
	flags := &sortFlags{}
	cmd := &cobra.Command{
		Use:   "sort <path>",
		Short: "Sort the files of a folder into category subfolders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(cmd, ctx, args[0], flags)
		},
	}
	bindSortFlags(cmd, flags)
	return cmd
}

// applySortFlags returns a copy of base with any explicitly set flags applied.
func applySortFlags(cmd *cobra.Command, base *config.Config, flags *sortFlags) (*config.Config, error) {
	cfg := *base
	if cmd.Flags().Changed("unknown") {
		cfg.Sort.Unknown = strings.ToLower(strings.TrimSpace(flags.unknown))
	}
	if cmd.Flags().Changed("max-depth") {
		cfg.Sort.MaxArchiveDepth = flags.maxDepth
	}
	if flags.pruneEmpty {
		cfg.Sort.PruneEmpty = true
	}
	if flags.noLock {
		cfg.Sort.Lock = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func runSort(cmd *cobra.Command, ctx *commandContext, path string, flags *sortFlags) (err error) {
	base, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	cfg, err := applySortFlags(cmd, base, flags)
	if err != nil {
		return err
	}
	logger, err := ctx.newLogger(cfg)
	if err != nil {
		return err
	}
	sorter, err := sorting.NewFromConfig(cfg, logger)
	if err != nil {
		return err
	}

	root, err := sorting.ResolveRoot(path)
	if err != nil {
		return err
	}

	signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.Sort.Lock {
		lock, lockErr := sorting.AcquireLock(root)
		if lockErr != nil {
			return lockErr
		}
		defer func() {
			if releaseErr := lock.Release(); releaseErr != nil && err == nil {
				err = releaseErr
			}
		}()
	}

	report, sortErr := sorter.Sort(signalCtx, root)
	if report != nil {
		var renderErr error
		if flags.json {
			renderErr = writeJSON(cmd.OutOrStdout(), report)
		} else {
			renderErr = renderReport(cmd.OutOrStdout(), report, shouldColorize(cmd.OutOrStdout()))
		}
		if sortErr == nil && renderErr != nil {
			return fmt.Errorf("write report: %w", renderErr)
		}
	}
	return sortErr
}
