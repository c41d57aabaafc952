package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/require"

	"sortdir/internal/category"
	"sortdir/internal/config"
	"sortdir/internal/services"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	require.NoError(t, err)
	require.False(t, exists)
	require.Equal(t, filepath.Join(tempHome, ".config", "sortdir", "config.toml"), resolved)

	require.Equal(t, config.UnknownLeave, cfg.Sort.Unknown)
	require.Equal(t, 10, cfg.Sort.MaxArchiveDepth)
	require.EqualValues(t, 4<<30, cfg.Sort.MaxExtractBytes)
	require.True(t, cfg.Sort.Lock)
	require.False(t, cfg.Sort.PruneEmpty)
	require.Equal(t, "console", cfg.Logging.Format)
	require.Equal(t, "info", cfg.Logging.Level)
	require.False(t, cfg.BucketUnknown())
}

func TestLoadCustomConfigNormalizes(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	path := filepath.Join(dir, "sortdir.toml")
	content := `
[sort]
unknown = " Bucket "
max_archive_depth = 3
max_extract_bytes = -5
prune_empty = true

[extensions]
image = [".webp", "WEBP", "heic"]
document = ["md"]

[logging]
format = "JSON"
level = "DEBUG"
dir = "~/logs"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, resolved, exists, err := config.Load(path)
	require.NoError(t, err)
	require.True(t, exists)
	require.Equal(t, path, resolved)

	require.Equal(t, config.UnknownBucket, cfg.Sort.Unknown)
	require.True(t, cfg.BucketUnknown())
	require.Equal(t, 3, cfg.Sort.MaxArchiveDepth)
	require.Zero(t, cfg.Sort.MaxExtractBytes)
	require.True(t, cfg.Sort.PruneEmpty)
	require.Equal(t, []string{"WEBP", "HEIC"}, cfg.Extensions.Image)
	require.Equal(t, "json", cfg.Logging.Format)
	require.Equal(t, "debug", cfg.Logging.Level)
	require.True(t, filepath.IsAbs(cfg.Logging.Dir))
	require.True(t, strings.HasSuffix(cfg.Logging.Dir, "logs"))

	table, err := cfg.Table()
	require.NoError(t, err)
	require.Equal(t, category.Image, table.Classify("x.webp"))
	require.Equal(t, category.Document, table.Classify("README.md"))
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"unknown policy":  "[sort]\nunknown = \"delete\"\n",
		"negative depth":  "[sort]\nmax_archive_depth = -1\n",
		"huge depth":      "[sort]\nmax_archive_depth = 1000\n",
		"extension clash": "[extensions]\nvideo = [\"mp3\"]\n",
		"log level":       "[logging]\nlevel = \"chatty\"\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
			_, _, _, err := config.Load(path)
			require.Error(t, err)
			require.ErrorIs(t, err, services.ErrConfiguration)
		})
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[sort]\nunknwon = \"bucket\"\n"), 0o644))
	_, _, _, err := config.Load(path)
	require.ErrorIs(t, err, services.ErrConfiguration)
}

func TestLoadTagsMalformedTOMLAsConfigurationError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[sort\nunknown = \"bucket\"\n"), 0o644))
	_, _, _, err := config.Load(path)
	require.ErrorIs(t, err, services.ErrConfiguration)
	require.True(t, services.IsFatal(err))
	require.Contains(t, err.Error(), "parse")
}

func TestEnvOverridesLogLevel(t *testing.T) {
	t.Setenv("SORTDIR_LOG_LEVEL", "warn")
	path := filepath.Join(t.TempDir(), "missing.toml")
	cfg, _, exists, err := config.Load(path)
	require.NoError(t, err)
	require.False(t, exists)
	require.Equal(t, "warn", cfg.Logging.Level)
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	require.NoError(t, config.CreateSample(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded config.Config
	require.NoError(t, toml.Unmarshal(data, &decoded))
	require.Equal(t, config.Default().Sort, decoded.Sort)

	cfg, _, exists, err := config.Load(path)
	require.NoError(t, err)
	require.True(t, exists)
	require.Equal(t, config.Default().Sort, cfg.Sort)
}
