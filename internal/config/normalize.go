package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeSort()
	c.normalizeExtensions()
	return c.normalizeLogging()
}

func (c *Config) normalizeSort() {
	c.Sort.Unknown = strings.ToLower(strings.TrimSpace(c.Sort.Unknown))
	if c.Sort.Unknown == "" {
		c.Sort.Unknown = defaultUnknownPolicy
	}
	if c.Sort.MaxExtractBytes < 0 {
		c.Sort.MaxExtractBytes = 0
	}
}

func (c *Config) normalizeExtensions() {
	c.Extensions.Image = normalizeExtensionList(c.Extensions.Image)
	c.Extensions.Audio = normalizeExtensionList(c.Extensions.Audio)
	c.Extensions.Video = normalizeExtensionList(c.Extensions.Video)
	c.Extensions.Document = normalizeExtensionList(c.Extensions.Document)
	c.Extensions.Archive = normalizeExtensionList(c.Extensions.Archive)
}

func normalizeExtensionList(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		normalized := strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(value), "."))
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	return out
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	if value, ok := os.LookupEnv("SORTDIR_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.Dir) != "" {
		dir, err := expandPath(strings.TrimSpace(c.Logging.Dir))
		if err != nil {
			return fmt.Errorf("logging.dir: %w", err)
		}
		c.Logging.Dir = dir
	}
	return nil
}
