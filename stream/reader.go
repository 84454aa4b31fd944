package stream

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/hupe1980/interop"
	"github.com/hupe1980/interop/blobstore"
	"github.com/hupe1980/interop/metrics"
)

// Read decodes a whole metric file held in memory.
//
// A valid header followed by zero records yields an empty set, not an
// error. A post-header length that is not an exact multiple of the record
// size (or a variable record running past the end) yields
// interop.ErrIncompleteFile and no set at all.
func Read[T any](f metrics.Format[T], data []byte) (*metrics.MetricSet[T], error) {
	h, n, err := readHeader(f, data)
	if err != nil {
		return nil, err
	}
	body := data[n:]
	set := &metrics.MetricSet[T]{Header: h}

	if f.SizedRecords() {
		size := f.RecordSize(h)
		if len(body) == 0 {
			return set, nil
		}
		if rem := len(body) % size; rem != 0 {
			return nil, fmt.Errorf("%w: %s has %d trailing bytes after %d whole records of %d bytes",
				interop.ErrIncompleteFile, f.Name(), rem, len(body)/size, size)
		}
		set.Records = make([]T, 0, len(body)/size)
		for off := 0; off < len(body); off += size {
			rec, _, err := f.Decode(h, body[off:off+size])
			if err != nil {
				return nil, err
			}
			set.Records = append(set.Records, rec)
		}
		return set, nil
	}

	for off := 0; off < len(body); {
		rec, n, err := f.Decode(h, body[off:])
		if err != nil {
			return nil, err
		}
		set.Records = append(set.Records, rec)
		off += n
	}
	return set, nil
}

// ReadFrom fetches the category's file from a store and decodes it.
// A missing blob is reported as interop.ErrFileNotFound.
func ReadFrom[T any](ctx context.Context, store blobstore.Store, f metrics.Format[T], name string) (*metrics.MetricSet[T], error) {
	data, err := blobstore.ReadAll(ctx, store, name)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", interop.ErrFileNotFound, name)
		}
		return nil, err
	}
	return Read(f, data)
}

// readHeader parses and validates the file header, returning its length.
func readHeader[T any](f metrics.Format[T], data []byte) (metrics.Header, int, error) {
	var h metrics.Header
	if len(data) < 1 {
		return h, 0, fmt.Errorf("%w: %s is missing the version byte",
			interop.ErrIncompleteFile, f.Name())
	}
	h.Version = data[0]
	if !f.SupportsVersion(h.Version) {
		return h, 0, fmt.Errorf("%w %d for %s",
			interop.ErrUnsupportedVersion, h.Version, f.Name())
	}
	off := 1

	if f.SizedRecords() {
		if len(data) < off+2 {
			return h, 0, fmt.Errorf("%w: %s header is missing the record size",
				interop.ErrIncompleteFile, f.Name())
		}
		h.RecordSize = binary.LittleEndian.Uint16(data[off:])
		off += 2
	}

	extra, n, err := f.ParseExtra(h.Version, data[off:])
	if err != nil {
		return h, 0, err
	}
	h.Extra = extra
	off += n

	// The declared record size must match the codec's expectation for the
	// version and extras; anything else is a format error, not a warning.
	if f.SizedRecords() {
		expected := f.RecordSize(h)
		if int(h.RecordSize) != expected {
			return h, 0, fmt.Errorf("%w: %s v%d declares %d-byte records, codec expects %d",
				interop.ErrRecordSizeMismatch, f.Name(), h.Version, h.RecordSize, expected)
		}
	}
	return h, off, nil
}
