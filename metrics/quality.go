package metrics

import (
	"fmt"

	"github.com/hupe1980/interop"
)

// QualityBin describes one quality-score bin from the file header.
type QualityBin struct {
	Lower uint8
	Upper uint8
	Value uint8
}

// QualityExtra is the version 5 and 6 header metadata: the bin table.
// Version 5 may declare zero bins (unbinned data); version 6 must not.
type QualityExtra struct {
	Bins []QualityBin
}

// QualityMetric is one per-cycle quality histogram record.
//
// Versions 4 and 5 store the full 50-bucket histogram; version 6 stores
// one bucket per header bin.
type QualityMetric struct {
	LaneTileCycle
	Histogram []uint32
}

const (
	// qualityBuckets is the full histogram width of the unbinned format.
	qualityBuckets       = 50
	qualityRecordSizeV45 = 6 + 4*qualityBuckets
)

// Quality is the codec for QMetricsOut.bin.
var Quality Format[QualityMetric] = qualityFormat{}

type qualityFormat struct{}

func (qualityFormat) Name() string     { return "Quality" }
func (qualityFormat) FileName() string { return "QMetricsOut.bin" }

func (qualityFormat) SupportsVersion(version uint8) bool {
	return version >= 4 && version <= 6
}

func (qualityFormat) SizedRecords() bool { return true }

func (qualityFormat) RecordSize(h Header) int {
	if h.Version < 6 {
		return qualityRecordSizeV45
	}
	extra, ok := h.Extra.(QualityExtra)
	if !ok {
		return 0
	}
	return 6 + 4*len(extra.Bins)
}

func (f qualityFormat) ParseExtra(version uint8, b []byte) (ExtraFields, int, error) {
	if version == 4 {
		return nil, 0, nil
	}
	if len(b) < 1 {
		return nil, 0, fmt.Errorf("%w: %s header is missing the bin count",
			interop.ErrIncompleteFile, f.Name())
	}
	count := int(b[0])
	if count > qualityBuckets {
		return nil, 0, fmt.Errorf("%w: %s header declares %d bins, maximum is %d",
			interop.ErrCorrupt, f.Name(), count, qualityBuckets)
	}
	if version == 6 && count == 0 {
		return nil, 0, fmt.Errorf("%w: %s v6 header declares zero bins",
			interop.ErrCorrupt, f.Name())
	}
	if len(b) < 1+3*count {
		return nil, 0, fmt.Errorf("%w: %s header bin table needs %d bytes, %d remain",
			interop.ErrIncompleteFile, f.Name(), 1+3*count, len(b))
	}
	bins := make([]QualityBin, count)
	for i := range bins {
		bins[i] = QualityBin{
			Lower: b[1+i*3],
			Upper: b[2+i*3],
			Value: b[3+i*3],
		}
	}
	return QualityExtra{Bins: bins}, 1 + 3*count, nil
}

func (qualityFormat) AppendExtra(h Header, dst []byte) []byte {
	if h.Version == 4 {
		return dst
	}
	extra, _ := h.Extra.(QualityExtra)
	dst = append(dst, uint8(len(extra.Bins)))
	for _, bin := range extra.Bins {
		dst = append(dst, bin.Lower, bin.Upper, bin.Value)
	}
	return dst
}

func (f qualityFormat) Decode(h Header, b []byte) (QualityMetric, int, error) {
	var m QualityMetric
	size := f.RecordSize(h)
	if err := checkRecordLen(f.Name(), b, size); err != nil {
		return m, 0, err
	}
	m.Lane = u16(b[0:])
	m.Tile = u16(b[2:])
	m.Cycle = u16(b[4:])
	buckets := (size - 6) / 4
	m.Histogram = make([]uint32, buckets)
	for i := range m.Histogram {
		m.Histogram[i] = u32(b[6+i*4:])
	}
	return m, size, nil
}

func (qualityFormat) Append(_ Header, m QualityMetric, dst []byte) []byte {
	dst = appendU16(dst, m.Lane)
	dst = appendU16(dst, m.Tile)
	dst = appendU16(dst, m.Cycle)
	for _, v := range m.Histogram {
		dst = appendU32(dst, v)
	}
	return dst
}
