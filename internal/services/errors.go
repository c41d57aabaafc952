package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidSourcePath  = errors.New("invalid source path")
	ErrUnsupportedArchive = errors.New("unsupported archive")
	ErrNameCollision      = errors.New("name collision")
	ErrFilesystem         = errors.New("filesystem error")
	ErrDepthLimit         = errors.New("archive depth limit")
	ErrConfiguration      = errors.New("configuration error")
)

// Action names the outcome recorded for a single file.
type Action string

const (
	ActionMoved            Action = "moved"
	ActionExtracted        Action = "extracted"
	ActionSkippedConflict  Action = "skipped-conflict"
	ActionExtractionFailed Action = "extraction-failed"
	ActionDepthLimit       Action = "depth-limit"
	ActionLeftUnknown      Action = "left-unknown"
	ActionFailed           Action = "failed"
)

// Actions lists every action in report order.
func Actions() []Action {
	return []Action{
		ActionMoved,
		ActionExtracted,
		ActionSkippedConflict,
		ActionExtractionFailed,
		ActionDepthLimit,
		ActionLeftUnknown,
		ActionFailed,
	}
}

// Wrap builds an error message that includes handler context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrFilesystem
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// ActionFor maps a per-file handler error to the report action it produces.
// Callers record successful actions explicitly.
func ActionFor(err error) Action {
	switch {
	case errors.Is(err, ErrNameCollision):
		return ActionSkippedConflict
	case errors.Is(err, ErrUnsupportedArchive):
		return ActionExtractionFailed
	case errors.Is(err, ErrDepthLimit):
		return ActionDepthLimit
	default:
		return ActionFailed
	}
}

// IsFatal reports whether err must abort a run instead of becoming a report entry.
func IsFatal(err error) bool {
	return errors.Is(err, ErrInvalidSourcePath) || errors.Is(err, ErrConfiguration)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "sort failure"
	}
	return strings.Join(parts, ": ")
}
