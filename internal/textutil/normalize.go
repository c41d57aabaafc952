package textutil

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize converts a file name into its portable form: Cyrillic letters are
// transliterated and any other character that is not an ASCII letter, digit,
// dot, or underscore becomes an underscore, one per rune.
//
// A non-empty name never normalizes to "", ".", "..", or to a dot file it was
// not already: leading letters that transliterate to nothing (ъ, ь) become one
// underscore each when nothing else would stand in front of the extension.
func Normalize(name string) string {
	if name == "" {
		return ""
	}
	composed := norm.NFC.String(name)
	var b strings.Builder
	b.Grow(len(composed))
	leadingDropped := 0
	for _, r := range composed {
		if latin, ok := translit[r]; ok {
			if latin == "" && b.Len() == 0 {
				leadingDropped++
			}
			b.WriteString(latin)
			continue
		}
		if isSafe(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('_')
	}
	out := b.String()
	switch {
	case out == "":
		return strings.Repeat("_", leadingDropped)
	case out == "." || out == "..":
		return strings.Repeat("_", len(out))
	case leadingDropped > 0 && out[0] == '.':
		return strings.Repeat("_", leadingDropped) + out
	}
	return out
}

// StripExtension returns name without its final extension. Names without a
// dot, or whose only dot is the leading one, are returned unchanged.
func StripExtension(name string) string {
	ext := filepath.Ext(name)
	if ext == "" || ext == name {
		return name
	}
	return strings.TrimSuffix(name, ext)
}

func isSafe(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '.' || r == '_':
		return true
	default:
		return false
	}
}
