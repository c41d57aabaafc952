package services

import "context"

type contextKey string

const (
	runIDKey     contextKey = "run_id"
	passRootKey  contextKey = "pass_root"
	passDepthKey contextKey = "pass_depth"
)

// WithRunID annotates context with the run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithPass annotates context with the directory and nesting depth of the
// current sort pass. Depth 0 is the user-supplied root.
func WithPass(ctx context.Context, root string, depth int) context.Context {
	if root != "" {
		ctx = context.WithValue(ctx, passRootKey, root)
	}
	return context.WithValue(ctx, passDepthKey, depth)
}

// PassRootFromContext returns the pass root if present.
func PassRootFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(passRootKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// PassDepthFromContext returns the pass depth if present.
func PassDepthFromContext(ctx context.Context) (int, bool) {
	switch v := ctx.Value(passDepthKey).(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	default:
		return 0, false
	}
}
