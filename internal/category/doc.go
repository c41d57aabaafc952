// Package category classifies files by extension.
//
// A Table maps uppercase extensions to one of a small fixed set of categories.
// Tables are built once at startup from the defaults plus any configured
// extras and are read-only afterwards.
package category
