package blobstore_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/interop/blobstore"
)

func TestCodecRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte("interop metric data "), 64)

	for _, codec := range []blobstore.Codec{blobstore.Gzip, blobstore.Zstd, blobstore.LZ4} {
		t.Run(codec.Ext(), func(t *testing.T) {
			compressed, err := codec.Compress(payload)
			require.NoError(t, err)
			assert.Less(t, len(compressed), len(payload))

			got, err := codec.Decompress(compressed)
			require.NoError(t, err)
			assert.Equal(t, payload, got)
		})
	}
}

func TestCodecForExt(t *testing.T) {
	codec, ok := blobstore.CodecForExt(".zst")
	require.True(t, ok)
	assert.Equal(t, blobstore.Zstd, codec)

	_, ok = blobstore.CodecForExt(".rar")
	assert.False(t, ok)
}

func TestCompressedStoreTransparentRead(t *testing.T) {
	ctx := context.Background()
	inner := blobstore.NewMemoryStore()
	store := blobstore.NewCompressedStore(inner, blobstore.Zstd)

	data := []byte{2, 38, 0, 1, 2, 3, 4}
	require.NoError(t, store.Put(ctx, "InterOp/ExtractionMetricsOut.bin", data))

	// Only the compressed variant lands in the inner store.
	_, plain := inner.Bytes("InterOp/ExtractionMetricsOut.bin")
	assert.False(t, plain)
	_, zst := inner.Bytes("InterOp/ExtractionMetricsOut.bin.zst")
	assert.True(t, zst)

	// Reads resolve the plain name transparently.
	got, err := blobstore.ReadAll(ctx, store, "InterOp/ExtractionMetricsOut.bin")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	blob, err := store.Open(ctx, "InterOp/ExtractionMetricsOut.bin")
	require.NoError(t, err)
	defer blob.Close()
	assert.Equal(t, int64(len(data)), blob.Size())
}

func TestCompressedStorePlainPassthrough(t *testing.T) {
	ctx := context.Background()
	inner := blobstore.NewMemoryStore()
	store := blobstore.NewCompressedStore(inner, nil)

	require.NoError(t, store.Put(ctx, "a.bin", []byte{1}))

	stored, ok := inner.Bytes("a.bin")
	require.True(t, ok)
	assert.Equal(t, []byte{1}, stored)
}

func TestCompressedStorePrefersPlain(t *testing.T) {
	ctx := context.Background()
	inner := blobstore.NewMemoryStore()
	require.NoError(t, inner.Put(ctx, "a.bin", []byte("plain")))

	gz, err := blobstore.Gzip.Compress([]byte("compressed"))
	require.NoError(t, err)
	require.NoError(t, inner.Put(ctx, "a.bin.gz", gz))

	store := blobstore.NewCompressedStore(inner, nil)
	got, err := store.ReadAll(ctx, "a.bin")
	require.NoError(t, err)
	assert.Equal(t, []byte("plain"), got)
}

func TestCompressedStoreMissing(t *testing.T) {
	store := blobstore.NewCompressedStore(blobstore.NewMemoryStore(), nil)

	_, err := store.ReadAll(context.Background(), "missing.bin")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

type readOnlyStore struct{ blobstore.Store }

func TestCompressedStoreReadOnlyPut(t *testing.T) {
	store := blobstore.NewCompressedStore(readOnlyStore{blobstore.NewMemoryStore()}, blobstore.Gzip)

	err := store.Put(context.Background(), "a.bin", []byte{1})
	assert.Error(t, err)
}
