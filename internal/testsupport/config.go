package testsupport

import (
	"path/filepath"
	"testing"

	"sortdir/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a default config whose log directory lives under a
// per-test temp directory. Options are applied in order.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Logging.Dir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	if err := builder.cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return builder.cfg
}

// WithUnknownBucket routes unclassified files into the Unknown folder.
func WithUnknownBucket() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Sort.Unknown = config.UnknownBucket
	}
}

// WithMaxDepth overrides the archive recursion limit.
func WithMaxDepth(depth int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Sort.MaxArchiveDepth = depth
	}
}

// WithMaxExtractBytes overrides the per-archive extraction limit.
func WithMaxExtractBytes(limit int64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Sort.MaxExtractBytes = limit
	}
}

// WithPruneEmpty enables removal of emptied directories after a pass.
func WithPruneEmpty() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Sort.PruneEmpty = true
	}
}

// WithoutLogDir disables the log file so output only goes to stderr.
func WithoutLogDir() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Logging.Dir = ""
	}
}

// WithExtensions appends extra extensions to the Document category.
func WithExtensions(exts ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Extensions.Document = append(b.cfg.Extensions.Document, exts...)
	}
}
