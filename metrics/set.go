package metrics

import (
	"fmt"

	"github.com/hupe1980/interop"
)

// MetricSet is an ordered sequence of decoded records for one category,
// tagged with the header needed to reproduce the original file on write.
//
// Insertion order is file order: records are never sorted and duplicate
// keys are legal and preserved. Every record in a set decodes and encodes
// under the set's version.
type MetricSet[T any] struct {
	Header  Header
	Records []T
}

// NewSet creates an empty metric set for the given format and version.
// The declared record size is derived from the codec so that a set built
// in memory serializes with a valid header. extra may be nil for
// categories without header extras.
func NewSet[T any](f Format[T], version uint8, extra ExtraFields) (*MetricSet[T], error) {
	if !f.SupportsVersion(version) {
		return nil, fmt.Errorf("%w %d for %s", interop.ErrUnsupportedVersion, version, f.Name())
	}
	h := Header{Version: version, Extra: extra}
	if f.SizedRecords() {
		h.RecordSize = uint16(f.RecordSize(h))
	}
	return &MetricSet[T]{Header: h}, nil
}

// Version returns the format version the set was read with.
func (s *MetricSet[T]) Version() uint8 {
	return s.Header.Version
}

// Len returns the number of records in the set.
func (s *MetricSet[T]) Len() int {
	return len(s.Records)
}

// Empty reports whether the set holds no records.
func (s *MetricSet[T]) Empty() bool {
	return len(s.Records) == 0
}

// Add appends records in order.
func (s *MetricSet[T]) Add(recs ...T) {
	s.Records = append(s.Records, recs...)
}
