package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store is a read-only source of named blobs (metric files, sidecars).
type Store interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)
}

// Blob is a read-only handle to one blob.
type Blob interface {
	io.Reader
	io.Closer
	// Size returns the size of the blob in bytes, or -1 if unknown.
	Size() int64
}

// WritableStore is a Store that can also create blobs.
type WritableStore interface {
	Store
	// Put writes a blob atomically, replacing any previous content.
	Put(ctx context.Context, name string, data []byte) error
}

// FullReader is an optional fast path for stores that can fetch a whole
// blob in one call (e.g. ranged parallel downloads).
type FullReader interface {
	ReadAll(ctx context.Context, name string) ([]byte, error)
}

// ReadAll fetches the entire content of a named blob.
func ReadAll(ctx context.Context, s Store, name string) ([]byte, error) {
	if fr, ok := s.(FullReader); ok {
		return fr.ReadAll(ctx, name)
	}
	b, err := s.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer b.Close()

	if size := b.Size(); size >= 0 {
		data := make([]byte, size)
		if _, err := io.ReadFull(b, data); err != nil {
			return nil, err
		}
		return data, nil
	}
	return io.ReadAll(b)
}
