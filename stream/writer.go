package stream

import (
	"context"
	"encoding/binary"

	"github.com/hupe1980/interop/blobstore"
	"github.com/hupe1980/interop/metrics"
)

// Write serializes a metric set back into file bytes: header exactly as
// stored on the set, then every record in container order.
func Write[T any](f metrics.Format[T], set *metrics.MetricSet[T]) []byte {
	size := 3
	if f.SizedRecords() {
		size += set.Len() * f.RecordSize(set.Header)
	}
	return Append(f, set, make([]byte, 0, size))
}

// Append serializes a metric set onto dst.
func Append[T any](f metrics.Format[T], set *metrics.MetricSet[T], dst []byte) []byte {
	dst = append(dst, set.Header.Version)
	if f.SizedRecords() {
		dst = binary.LittleEndian.AppendUint16(dst, set.Header.RecordSize)
	}
	dst = f.AppendExtra(set.Header, dst)
	for i := range set.Records {
		dst = f.Append(set.Header, set.Records[i], dst)
	}
	return dst
}

// WriteTo serializes a metric set and stores it under the given name.
func WriteTo[T any](ctx context.Context, store blobstore.WritableStore, f metrics.Format[T], name string, set *metrics.MetricSet[T]) error {
	return store.Put(ctx, name, Write(f, set))
}
