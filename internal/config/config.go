package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"sortdir/internal/category"
	"sortdir/internal/services"
)

//go:embed sample_config.toml
var sampleConfig string

// Unknown-file policies.
const (
	UnknownLeave  = "leave"
	UnknownBucket = "bucket"
)

// Sort contains configuration for a sort run.
type Sort struct {
	// Unknown decides what happens to files with unmapped extensions:
	// "leave" keeps them in place, "bucket" moves them into an Unknown folder.
	Unknown string `toml:"unknown"`
	// MaxArchiveDepth bounds how many levels of nested archives are unpacked.
	MaxArchiveDepth int `toml:"max_archive_depth"`
	// MaxExtractBytes caps the uncompressed size of a single archive. 0 disables the cap.
	MaxExtractBytes int64 `toml:"max_extract_bytes"`
	PruneEmpty      bool  `toml:"prune_empty"`
	Lock            bool  `toml:"lock"`
}

// Extensions lists extra extensions per category on top of the built-in table.
type Extensions struct {
	Image    []string `toml:"image"`
	Audio    []string `toml:"audio"`
	Video    []string `toml:"video"`
	Document []string `toml:"document"`
	Archive  []string `toml:"archive"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// Config encapsulates all configuration values for sortdir.
type Config struct {
	Sort       Sort       `toml:"sort"`
	Extensions Extensions `toml:"extensions"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, services.Wrap(services.ErrConfiguration, "config", "resolve", path, err)
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, services.Wrap(services.ErrConfiguration, "config", "open", resolvedPath, err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, services.Wrap(services.ErrConfiguration, "config", "parse", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, services.Wrap(services.ErrConfiguration, "config", "normalize", resolvedPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// ExtensionOverrides returns the configured extra extensions keyed by category.
func (c *Config) ExtensionOverrides() map[category.Category][]string {
	out := make(map[category.Category][]string, 5)
	add := func(cat category.Category, exts []string) {
		if len(exts) > 0 {
			out[cat] = append([]string(nil), exts...)
		}
	}
	add(category.Image, c.Extensions.Image)
	add(category.Audio, c.Extensions.Audio)
	add(category.Video, c.Extensions.Video)
	add(category.Document, c.Extensions.Document)
	add(category.Archive, c.Extensions.Archive)
	return out
}

// Table builds the classification table for this configuration.
func (c *Config) Table() (*category.Table, error) {
	return category.NewTable(c.ExtensionOverrides())
}

// BucketUnknown reports whether unmapped files are moved into the Unknown folder.
func (c *Config) BucketUnknown() bool {
	return c.Sort.Unknown == UnknownBucket
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
