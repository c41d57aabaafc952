package sorting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"sortdir/internal/category"
	"sortdir/internal/config"
	"sortdir/internal/fileutil"
	"sortdir/internal/logging"
	"sortdir/internal/services"
)

// Options tunes a Sorter.
type Options struct {
	// BucketUnknown moves unclassified files into an Unknown folder instead of
	// leaving them in place.
	BucketUnknown bool
	// MaxArchiveDepth is the pass depth at which archives stop being unpacked.
	MaxArchiveDepth int
	// MaxExtractBytes caps the uncompressed size of each archive. Zero disables the cap.
	MaxExtractBytes int64
	// PruneEmpty removes emptied non-category directories after the run.
	PruneEmpty bool
}

// OptionsFromConfig maps the [sort] section onto sorter options.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	return Options{
		BucketUnknown:   cfg.BucketUnknown(),
		MaxArchiveDepth: cfg.Sort.MaxArchiveDepth,
		MaxExtractBytes: cfg.Sort.MaxExtractBytes,
		PruneEmpty:      cfg.Sort.PruneEmpty,
	}
}

// Sorter files the contents of a directory tree into category folders.
type Sorter struct {
	table  *category.Table
	opts   Options
	logger *slog.Logger
	now    func() time.Time
}

// New constructs a Sorter. A nil table uses the built-in extension table and a
// nil logger discards output.
func New(table *category.Table, opts Options, logger *slog.Logger) *Sorter {
	if table == nil {
		table = category.Default()
	}
	return &Sorter{
		table:  table,
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "sorter"),
		now:    time.Now,
	}
}

// NewFromConfig builds the extension table and options from cfg.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) (*Sorter, error) {
	table, err := cfg.Table()
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "config", "build extension table", "", err)
	}
	return New(table, OptionsFromConfig(cfg), logger), nil
}

// ResolveRoot returns the absolute form of path after checking it is an
// existing directory.
func ResolveRoot(path string) (string, error) {
	if path == "" {
		return "", services.Wrap(services.ErrInvalidSourcePath, "sort", "validate root", "path is empty", nil)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", services.Wrap(services.ErrInvalidSourcePath, "sort", "validate root", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", services.Wrap(services.ErrInvalidSourcePath, "sort", "validate root", abs, err)
	}
	if !info.IsDir() {
		return "", services.Wrap(services.ErrInvalidSourcePath, "sort", "validate root", abs+" is not a directory", nil)
	}
	return abs, nil
}

// Sort runs a full sort of root. Fatal problems (an invalid root or a
// cancelled context) are returned as errors; everything else lands in the
// report. On cancellation the partial report is returned alongside the error.
func (s *Sorter) Sort(ctx context.Context, root string) (*Report, error) {
	root, err := ResolveRoot(root)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	started := s.now()
	report := newReport(runID, root, started)
	logger := logging.WithContext(ctx, s.logger)
	logger.Info("sort started",
		logging.String("root", root),
		logging.Bool("bucket_unknown", s.opts.BucketUnknown),
		logging.Int("max_archive_depth", s.opts.MaxArchiveDepth),
	)

	queue := []pass{{root: root, depth: 0}}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		next, err := s.runPass(ctx, p, report)
		queue = append(queue, next...)
		if err != nil {
			report.Duration = s.now().Sub(started)
			logger.Warn("sort cancelled",
				logging.String(logging.FieldEventType, "sort_cancelled"),
				logging.Int("handled", len(report.Outcomes)),
				logging.Error(err),
			)
			return report, err
		}
	}

	if s.opts.PruneEmpty {
		pruned, err := fileutil.PruneEmptyDirs(root, func(path string) bool {
			if filepath.Dir(path) != root {
				return false
			}
			_, ok := category.Parse(filepath.Base(path))
			return ok
		})
		if err != nil {
			logging.WarnWithContext(logger, "prune empty directories failed", "prune_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "empty directories left behind"),
			)
		}
		report.Pruned = pruned
	}

	report.Duration = s.now().Sub(started)
	logger.Info("sort complete",
		logging.Int("passes", report.Passes),
		logging.Int(string(services.ActionMoved), report.Count(services.ActionMoved)),
		logging.Int(string(services.ActionExtracted), report.Count(services.ActionExtracted)),
		logging.Int("problems", len(report.Problems())),
		logging.Duration("duration", report.Duration),
	)
	return report, nil
}

// runPass scans one directory and dispatches its files. It returns the passes
// queued by unpacked archives and a non-nil error only when ctx is done.
func (s *Sorter) runPass(ctx context.Context, p pass, report *Report) ([]pass, error) {
	ctx = services.WithPass(ctx, p.root, p.depth)
	logger := logging.WithContext(ctx, s.logger)
	report.Passes++
	logger.Debug("pass started")

	var ignore []string
	if p.depth == 0 {
		ignore = []string{LockFileName}
	}

	var queued []pass
	for entry, err := range Scan(ctx, p.root, ScanOptions{Table: s.table, Ignore: ignore, Include: p.include}) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return queued, ctxErr
		}
		if err != nil {
			outcome := failed(p, entry, "", services.Wrap(services.ErrFilesystem, "scan", "read directory", "", err))
			report.add(outcome)
			s.logOutcome(logger, outcome)
			continue
		}
		outcome, next := s.handlerFor(entry.Category).handle(ctx, p, entry)
		if outcome.Action == "" {
			logger.Debug("file already in place", logging.String(logging.FieldSource, entry.Path))
			continue
		}
		report.add(outcome)
		s.logOutcome(logger, outcome)
		if next != nil {
			queued = append(queued, *next)
		}
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return queued, ctxErr
	}
	return queued, nil
}

func (s *Sorter) logOutcome(logger *slog.Logger, o Outcome) {
	attrs := []logging.Attr{
		logging.String(logging.FieldSource, o.Source),
		logging.String(logging.FieldCategory, o.Category.String()),
	}
	if o.Target != "" {
		attrs = append(attrs, logging.String(logging.FieldTarget, o.Target))
	}
	switch o.Action {
	case services.ActionMoved:
		logger.Info("file moved", logging.Args(attrs...)...)
	case services.ActionExtracted:
		attrs = append(attrs,
			logging.String("format", o.Format),
			logging.Int("files", o.Files),
			logging.Int64("bytes", o.Bytes),
		)
		logger.Info("archive extracted", logging.Args(attrs...)...)
	case services.ActionLeftUnknown:
		logger.Debug("unknown extension left in place", logging.Args(attrs...)...)
	default:
		attrs = append(attrs, logging.Error(o.Err), logging.String(logging.FieldErrorHint, hintFor(o)))
		logging.WarnWithContext(logger, fmt.Sprintf("file not sorted (%s)", o.Action), string(o.Action), attrs...)
	}
}

func hintFor(o Outcome) string {
	switch {
	case errors.Is(o.Err, services.ErrNameCollision):
		return "rename or remove the existing target, then rerun"
	case errors.Is(o.Err, services.ErrUnsupportedArchive):
		return "check the archive opens with another tool"
	case errors.Is(o.Err, services.ErrDepthLimit):
		return "raise sort.max_archive_depth to unpack deeper archives"
	case errors.Is(o.Err, context.Canceled), errors.Is(o.Err, context.DeadlineExceeded):
		return "rerun to finish sorting"
	default:
		return "check permissions and free space"
	}
}
