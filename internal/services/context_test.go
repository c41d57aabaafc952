package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"sortdir/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRunID(ctx, "run-123")
	ctx = services.WithPass(ctx, "/tmp/inbox/Archive/photos", 2)

	rid, ok := services.RunIDFromContext(ctx)
	require.True(t, ok)
	require.Equal(t, "run-123", rid)

	root, ok := services.PassRootFromContext(ctx)
	require.True(t, ok)
	require.Equal(t, "/tmp/inbox/Archive/photos", root)

	depth, ok := services.PassDepthFromContext(ctx)
	require.True(t, ok)
	require.Equal(t, 2, depth)
}

func TestBlankRunIDPreservesContext(t *testing.T) {
	ctx := services.WithRunID(context.Background(), "")
	_, ok := services.RunIDFromContext(ctx)
	require.False(t, ok)
	_, ok = services.PassDepthFromContext(ctx)
	require.False(t, ok)
}
