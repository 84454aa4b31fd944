package blobstore

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec compresses and decompresses whole blobs.
type Codec interface {
	// Ext returns the file name extension, including the dot (".gz").
	Ext() string
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// Codecs supported for archived run folders.
var (
	Gzip Codec = gzipCodec{}
	Zstd Codec = zstdCodec{}
	LZ4  Codec = lz4Codec{}
)

var codecs = []Codec{Gzip, Zstd, LZ4}

// CodecForExt returns the codec registered for a file extension.
func CodecForExt(ext string) (Codec, bool) {
	for _, c := range codecs {
		if c.Ext() == ext {
			return c, true
		}
	}
	return nil, false
}

// CompressedStore wraps a store and adds transparent compression.
//
// Reads first try the plain name, then every registered compressed variant
// (name + ".gz", ".zst", ".lz4"). Writes go through the configured write
// codec, or pass through unchanged when none is set.
type CompressedStore struct {
	inner Store
	write Codec
}

// NewCompressedStore creates a CompressedStore. write may be nil to keep
// writes uncompressed while still reading compressed blobs. Put requires
// the inner store to be writable.
func NewCompressedStore(inner Store, write Codec) *CompressedStore {
	return &CompressedStore{inner: inner, write: write}
}

// Open opens a blob, decompressing it if only a compressed variant exists.
func (s *CompressedStore) Open(ctx context.Context, name string) (Blob, error) {
	data, err := s.ReadAll(ctx, name)
	if err != nil {
		return nil, err
	}
	return &memoryBlob{Reader: bytes.NewReader(data), size: int64(len(data))}, nil
}

// ReadAll implements FullReader.
func (s *CompressedStore) ReadAll(ctx context.Context, name string) ([]byte, error) {
	data, err := ReadAll(ctx, s.inner, name)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	for _, c := range codecs {
		compressed, err := ReadAll(ctx, s.inner, name+c.Ext())
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return c.Decompress(compressed)
	}
	return nil, ErrNotFound
}

// Put writes a blob, compressing it with the configured write codec.
func (s *CompressedStore) Put(ctx context.Context, name string, data []byte) error {
	ws, ok := s.inner.(WritableStore)
	if !ok {
		return errors.New("blobstore: underlying store is not writable")
	}
	if s.write == nil {
		return ws.Put(ctx, name, data)
	}
	compressed, err := s.write.Compress(data)
	if err != nil {
		return err
	}
	return ws.Put(ctx, name+s.write.Ext(), compressed)
}

type gzipCodec struct{}

func (gzipCodec) Ext() string { return ".gz" }

func (gzipCodec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (gzipCodec) Decompress(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

type zstdCodec struct{}

func (zstdCodec) Ext() string { return ".zst" }

func (zstdCodec) Compress(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	out := enc.EncodeAll(data, nil)
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return out, nil
}

func (zstdCodec) Decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(data, nil)
}

type lz4Codec struct{}

func (lz4Codec) Ext() string { return ".lz4" }

func (lz4Codec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (lz4Codec) Decompress(data []byte) ([]byte, error) {
	return io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
}
