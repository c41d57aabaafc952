package config

import (
	"fmt"

	"sortdir/internal/services"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSort(); err != nil {
		return err
	}
	if err := c.validateExtensions(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateSort() error {
	switch c.Sort.Unknown {
	case UnknownLeave, UnknownBucket:
	default:
		return fmt.Errorf("%w: sort.unknown must be %q or %q, got %q", services.ErrConfiguration, UnknownLeave, UnknownBucket, c.Sort.Unknown)
	}
	if c.Sort.MaxArchiveDepth < 0 || c.Sort.MaxArchiveDepth > maxArchiveDepthLimit {
		return fmt.Errorf("%w: sort.max_archive_depth must be between 0 and %d, got %d", services.ErrConfiguration, maxArchiveDepthLimit, c.Sort.MaxArchiveDepth)
	}
	return nil
}

func (c *Config) validateExtensions() error {
	if _, err := c.Table(); err != nil {
		return fmt.Errorf("%w: extensions: %w", services.ErrConfiguration, err)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("%w: logging.level must be debug, info, warn, or error, got %q", services.ErrConfiguration, c.Logging.Level)
	}
}
