package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"sortdir/internal/services"
	"sortdir/internal/sorting"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const actionLabelWidth = 18

func renderReport(out io.Writer, report *sorting.Report, colorize bool) error {
	var b strings.Builder
	for _, line := range renderSectionHeader("Sorting "+report.Root, colorize) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	for _, o := range report.Outcomes {
		b.WriteString(renderOutcomeLine(report.Root, o, colorize))
		b.WriteByte('\n')
	}
	if len(report.Outcomes) == 0 {
		b.WriteString("  nothing to sort\n")
	}
	b.WriteByte('\n')

	rows := make([][]string, 0, len(services.Actions()))
	total := 0
	for _, action := range services.Actions() {
		count := report.Count(action)
		total += count
		rows = append(rows, []string{string(action), strconv.Itoa(count)})
	}
	b.WriteString(tableSpec{
		headers:      []string{"Action", "Files"},
		rows:         rows,
		rightAligned: []int{1},
		footer:       []string{"Total", strconv.Itoa(total)},
	}.render())
	b.WriteByte('\n')
	fmt.Fprintf(&b, "Run %s finished in %s (%d %s)\n", report.RunID, report.Duration.Round(time.Millisecond), report.Passes, plural(report.Passes, "pass", "passes"))
	for _, dir := range report.Pruned {
		fmt.Fprintf(&b, "Removed empty directory %s\n", relativeTo(report.Root, dir))
	}

	_, err := io.WriteString(out, b.String())
	return err
}

func renderOutcomeLine(root string, o sorting.Outcome, colorize bool) string {
	label := fmt.Sprintf("  %-*s", actionLabelWidth, o.Action)
	if colorize {
		if color := actionColor(o.Action); color != "" {
			label = color + label + ansiReset
		}
	}
	source := relativeTo(root, o.Source)
	switch o.Action {
	case services.ActionMoved:
		return fmt.Sprintf("%s %s -> %s", label, source, relativeTo(root, o.Target))
	case services.ActionExtracted:
		return fmt.Sprintf("%s %s -> %s (%s, %d %s)", label, source, relativeTo(root, o.Target), o.Format, o.Files, plural(o.Files, "file", "files"))
	case services.ActionLeftUnknown:
		return fmt.Sprintf("%s %s", label, source)
	default:
		return fmt.Sprintf("%s %s: %s", label, source, o.Error)
	}
}

func actionColor(action services.Action) string {
	switch action {
	case services.ActionMoved, services.ActionExtracted:
		return ansiGreen
	case services.ActionSkippedConflict, services.ActionDepthLimit:
		return ansiYellow
	case services.ActionExtractionFailed, services.ActionFailed:
		return ansiRed
	default:
		return ""
	}
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if colorize {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{line, rule}
}

func relativeTo(root, path string) string {
	if path == "" {
		return ""
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// writeJSON prints v as indented JSON. HTML escaping is off so paths holding
// &, < or > stay readable.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
