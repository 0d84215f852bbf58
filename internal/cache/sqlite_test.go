package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) *SQLite {
	t.Helper()
	c, err := New(filepath.Join(t.TempDir(), "cache.db"), ttl)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestPutGet(t *testing.T) {
	c := newTestCache(t, time.Hour)
	ctx := context.Background()

	body := []byte(`["Houston","Austin"]`)
	require.NoError(t, c.Put(ctx, "key-1", body))

	got, ok := c.Get(ctx, "key-1")
	require.True(t, ok)
	assert.Equal(t, body, got)
}

func TestGetMiss(t *testing.T) {
	c := newTestCache(t, time.Hour)

	_, ok := c.Get(context.Background(), "absent")
	assert.False(t, ok)
}

func TestPutReplaces(t *testing.T) {
	c := newTestCache(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "key-1", []byte("old")))
	require.NoError(t, c.Put(ctx, "key-1", []byte("new")))

	got, ok := c.Get(ctx, "key-1")
	require.True(t, ok)
	assert.Equal(t, []byte("new"), got)
}

func TestExpiry(t *testing.T) {
	c := newTestCache(t, -time.Second) // already expired on write
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "key-1", []byte("stale")))

	_, ok := c.Get(ctx, "key-1")
	assert.False(t, ok)
}

func TestPrune(t *testing.T) {
	c := newTestCache(t, -time.Second)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "a", []byte("1")))
	require.NoError(t, c.Put(ctx, "b", []byte("2")))

	n, err := c.Prune(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = c.Prune(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestReopenPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	ctx := context.Background()

	c, err := New(path, time.Hour)
	require.NoError(t, err)
	require.NoError(t, c.Put(ctx, "key-1", []byte("persisted")))
	require.NoError(t, c.Close())

	c, err = New(path, time.Hour)
	require.NoError(t, err)
	defer c.Close()

	got, ok := c.Get(ctx, "key-1")
	require.True(t, ok)
	assert.Equal(t, []byte("persisted"), got)
}
