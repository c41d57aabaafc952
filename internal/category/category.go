package category

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Category is the classification tag a file is sorted into. Its String form is
// the name of the destination folder.
type Category int

const (
	Unknown Category = iota
	Image
	Audio
	Video
	Document
	Archive
)

var names = map[Category]string{
	Unknown:  "Unknown",
	Image:    "Image",
	Audio:    "Audio",
	Video:    "Video",
	Document: "Document",
	Archive:  "Archive",
}

func (c Category) String() string {
	if name, ok := names[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// MarshalText encodes the category as its folder name.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a folder name produced by MarshalText.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, ok := Parse(string(text))
	if !ok {
		return fmt.Errorf("unknown category %q", string(text))
	}
	*c = parsed
	return nil
}

// All returns every category, Unknown included, in declaration order.
func All() []Category {
	return []Category{Unknown, Image, Audio, Video, Document, Archive}
}

// Parse resolves a category from its folder name, case-insensitively.
func Parse(value string) (Category, bool) {
	value = strings.TrimSpace(value)
	for _, c := range All() {
		if strings.EqualFold(c.String(), value) {
			return c, true
		}
	}
	return Unknown, false
}

// Extension returns the uppercase suffix after the final dot, without the dot.
// Names with no dot, or ending in a dot, have no extension.
func Extension(name string) string {
	ext := filepath.Ext(filepath.Base(name))
	if len(ext) <= 1 {
		return ""
	}
	return strings.ToUpper(ext[1:])
}

var defaultExtensions = map[Category][]string{
	Image:    {"JPEG", "JPG", "PNG", "SVG"},
	Audio:    {"MP3", "OGG", "WAV", "AMR"},
	Video:    {"AVI", "MP4", "MOV", "MKV"},
	Document: {"DOC", "DOCX", "TXT", "PDF", "XLSX", "PPTX"},
	Archive:  {"ZIP", "GZ", "TAR"},
}

// Table is an immutable extension to category mapping.
type Table struct {
	byExt map[string]Category
}

// Default returns the built-in table.
func Default() *Table {
	table, err := NewTable(nil)
	if err != nil {
		panic(err)
	}
	return table
}

// NewTable builds a table from the defaults plus extra extensions per
// category. Extras may carry a leading dot and any case. Assigning an
// extension to a second category, or extending Unknown, is an error.
func NewTable(extra map[Category][]string) (*Table, error) {
	byExt := make(map[string]Category, 32)
	add := func(c Category, ext string) error {
		key := strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if key == "" {
			return fmt.Errorf("empty extension for %s", c)
		}
		if strings.ContainsAny(key, `./\`) {
			return fmt.Errorf("invalid extension %q for %s", ext, c)
		}
		if existing, ok := byExt[key]; ok && existing != c {
			return fmt.Errorf("extension %s already mapped to %s, cannot map to %s", key, existing, c)
		}
		byExt[key] = c
		return nil
	}
	for _, c := range All() {
		for _, ext := range defaultExtensions[c] {
			if err := add(c, ext); err != nil {
				return nil, err
			}
		}
	}
	for _, c := range All() {
		exts := extra[c]
		if len(exts) == 0 {
			continue
		}
		if c == Unknown {
			return nil, fmt.Errorf("extensions cannot be assigned to %s", Unknown)
		}
		for _, ext := range exts {
			if err := add(c, ext); err != nil {
				return nil, err
			}
		}
	}
	return &Table{byExt: byExt}, nil
}

// Classify returns the category for a file name by its final extension.
// Matching is case-insensitive; unmapped or missing extensions yield Unknown.
func (t *Table) Classify(name string) Category {
	if t == nil {
		return Unknown
	}
	ext := Extension(name)
	if ext == "" {
		return Unknown
	}
	if c, ok := t.byExt[ext]; ok {
		return c
	}
	return Unknown
}

// Extensions lists the extensions mapped to c, sorted.
func (t *Table) Extensions(c Category) []string {
	if t == nil {
		return nil
	}
	var out []string
	for ext, mapped := range t.byExt {
		if mapped == c {
			out = append(out, ext)
		}
	}
	sort.Strings(out)
	return out
}
