package blobstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/interop/blobstore"
)

func TestLocalStorePutOpen(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewLocalStore(t.TempDir())

	data := []byte{3, 30, 0, 1, 2, 3}
	require.NoError(t, store.Put(ctx, "InterOp/ErrorMetricsOut.bin", data))

	got, err := blobstore.ReadAll(ctx, store, "InterOp/ErrorMetricsOut.bin")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	// Nested directories are created on demand.
	_, err = os.Stat(filepath.Join(store.Root(), "InterOp"))
	require.NoError(t, err)
}

func TestLocalStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewLocalStore(t.TempDir())

	require.NoError(t, store.Put(ctx, "a.bin", []byte("old")))
	require.NoError(t, store.Put(ctx, "a.bin", []byte("new")))

	got, err := blobstore.ReadAll(ctx, store, "a.bin")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)
}

func TestLocalStoreMissing(t *testing.T) {
	store := blobstore.NewLocalStore(t.TempDir())

	_, err := store.Open(context.Background(), "nope.bin")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestLocalStoreLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := blobstore.NewLocalStore(dir)

	require.NoError(t, store.Put(ctx, "a.bin", []byte{1}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.bin", entries[0].Name())
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	require.NoError(t, store.Put(ctx, "a.bin", []byte{1, 2}))

	got, err := blobstore.ReadAll(ctx, store, "a.bin")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, got)

	// Reads are isolated from later writes.
	got[0] = 99
	fresh, err := blobstore.ReadAll(ctx, store, "a.bin")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, fresh)

	_, err = store.Open(ctx, "missing.bin")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
