// Package textutil provides filename normalization for sorted files.
//
// Normalize transliterates Cyrillic letters to Latin and replaces every
// remaining character outside [A-Za-z0-9._] with an underscore. Input is
// composed to NFC first so decomposed names produced by some filesystems map
// the same as their composed forms.
package textutil
