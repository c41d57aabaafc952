package logging

import (
	"context"
	"log/slog"

	"sortdir/internal/services"
)

// WithContext returns logger tagged with the run ID and pass carried by ctx.
// Contexts without either are passed through untouched.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	if ctx == nil {
		return logger
	}
	var attrs []Attr
	if id, ok := services.RunIDFromContext(ctx); ok {
		attrs = append(attrs, String(FieldRunID, id))
	}
	if root, ok := services.PassRootFromContext(ctx); ok {
		attrs = append(attrs, String(FieldPassRoot, root))
	}
	if depth, ok := services.PassDepthFromContext(ctx); ok {
		attrs = append(attrs, Int(FieldPassDepth, depth))
	}
	if len(attrs) == 0 {
		return logger
	}
	return logger.With(Args(attrs...)...)
}
