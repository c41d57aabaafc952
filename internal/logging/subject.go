package logging

import (
	"path/filepath"
	"strings"
)

// recordHeader collects the fields the console handler lifts out of the
// field list and into the header and movement lines.
type recordHeader struct {
	component string
	runID     string
	passRoot  string
	passDepth string
	source    string
	target    string
	category  string
}

// take records f if it belongs to the header. It reports true when f must not
// also be listed as a field.
func (h *recordHeader) take(f field) bool {
	switch f.key {
	case FieldComponent:
		h.component = valueText(f.val)
		return true
	case FieldRunID:
		h.runID = valueText(f.val)
	case FieldPassRoot:
		h.passRoot = valueText(f.val)
	case FieldPassDepth:
		h.passDepth = valueText(f.val)
	case FieldSource:
		h.source = valueText(f.val)
		return true
	case FieldTarget:
		h.target = valueText(f.val)
		return true
	case FieldCategory:
		h.category = valueText(f.val)
		return true
	}
	return false
}

// movement renders "source -> target [Category]" with paths shown relative to
// the pass root when they sit inside it.
func (h *recordHeader) movement() string {
	if h.source == "" && h.target == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(h.shorten(h.source))
	if h.target != "" {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString("-> ")
		b.WriteString(h.shorten(h.target))
	}
	if h.category != "" {
		b.WriteString(" [")
		b.WriteString(h.category)
		b.WriteByte(']')
	}
	return b.String()
}

func (h *recordHeader) shorten(path string) string {
	if h.passRoot == "" || path == "" {
		return path
	}
	rel, err := filepath.Rel(h.passRoot, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, "../") {
		return path
	}
	return filepath.ToSlash(rel)
}

// formatSubject builds the "Run xxxxxxxx · folder (depth N)" part of a header.
func formatSubject(runID, passRoot, passDepth string) string {
	runID = strings.TrimSpace(runID)
	passRoot = strings.TrimSpace(passRoot)
	passDepth = strings.TrimSpace(passDepth)
	parts := make([]string, 0, 2)
	if runID != "" {
		if len(runID) > 8 {
			runID = runID[:8]
		}
		parts = append(parts, "Run "+runID)
	}
	switch {
	case passRoot != "" && passDepth != "" && passDepth != "0":
		parts = append(parts, filepath.Base(passRoot)+" (depth "+passDepth+")")
	case passRoot != "":
		parts = append(parts, filepath.Base(passRoot))
	}
	return strings.Join(parts, " · ")
}
