// Package config loads, normalizes, and validates sortdir configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SORTDIR_LOG_LEVEL. The Config type centralizes every knob the CLI and the
// sorter need, including extra extensions for the classification table.
//
// Always obtain settings through this package so downstream code receives
// sanitized values, canonical log formats, and clear validation errors.
package config
