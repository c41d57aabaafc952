// Package services defines shared utilities consumed by the sorting pipeline
// and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers, pass roots, and pass depth
//     for logging.
//   - Structured error markers plus the Wrap helper that translate per-file
//     failures into consistent report actions.
//
// Use these helpers when wiring new handler logic so failure reporting stays
// uniform across passes.
package services
