package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletionCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	c, err := NewCompletionCache(path)
	require.NoError(t, err)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "task_completions_p")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(ctx, "task_completions_p", `{"completions":[true],"timestamp":1}`))
	require.NoError(t, c.Put(ctx, "task_completions_p", `{"completions":[false],"timestamp":2}`))

	v, ok, err := c.Get(ctx, "task_completions_p")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"completions":[false],"timestamp":2}`, v)

	require.NoError(t, c.Delete(ctx, "task_completions_p"))
	require.NoError(t, c.Delete(ctx, "task_completions_p"))
	_, ok, err = c.Get(ctx, "task_completions_p")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(ctx, "k", "v"))
	require.NoError(t, c.Close())

	// Entries survive reopening the file.
	c, err = NewCompletionCache(path)
	require.NoError(t, err)
	defer c.Close()
	v, ok, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}
