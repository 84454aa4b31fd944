package metrics

import (
	"fmt"

	"github.com/hupe1980/interop"
)

// TileRead is one per-read sub-entry embedded in a tile record.
type TileRead struct {
	Read           uint32
	PercentAligned float32
}

// TileMetric is one tile-level record. Its on-disk size is a function of
// its own content: a fixed prefix followed by a count-prefixed sequence of
// per-read sub-entries.
type TileMetric struct {
	LaneTile
	ClusterDensity   float32
	ClusterDensityPF float32
	ClusterCount     float32
	ClusterCountPF   float32
	Reads            []TileRead
}

const (
	// tilePrefixSize covers the scalar fields through the read count.
	tilePrefixSize = 22
	tileReadSize   = 8
)

// Tile is the codec for TileMetricsOut.bin.
var Tile Format[TileMetric] = tileFormat{}

type tileFormat struct{}

func (tileFormat) Name() string     { return "Tile" }
func (tileFormat) FileName() string { return "TileMetricsOut.bin" }

func (tileFormat) SupportsVersion(version uint8) bool { return version == 2 }

func (tileFormat) SizedRecords() bool    { return false }
func (tileFormat) RecordSize(Header) int { return 0 }

func (tileFormat) ParseExtra(uint8, []byte) (ExtraFields, int, error) { return nil, 0, nil }
func (tileFormat) AppendExtra(_ Header, dst []byte) []byte            { return dst }

func (f tileFormat) Decode(_ Header, b []byte) (TileMetric, int, error) {
	var m TileMetric
	if len(b) < tilePrefixSize {
		return m, 0, fmt.Errorf("%w: %s record prefix needs %d bytes, %d remain",
			interop.ErrIncompleteFile, f.Name(), tilePrefixSize, len(b))
	}
	m.Lane = u16(b[0:])
	m.Tile = u16(b[2:])
	m.ClusterDensity = f32(b[4:])
	m.ClusterDensityPF = f32(b[8:])
	m.ClusterCount = f32(b[12:])
	m.ClusterCountPF = f32(b[16:])

	count := int(u16(b[20:]))
	need := tilePrefixSize + count*tileReadSize
	if len(b) < need {
		return m, 0, fmt.Errorf("%w: %s record declares %d reads (%d bytes), %d remain",
			interop.ErrIncompleteFile, f.Name(), count, need, len(b))
	}
	m.Reads = make([]TileRead, count)
	off := tilePrefixSize
	for i := range m.Reads {
		m.Reads[i] = TileRead{
			Read:           u32(b[off:]),
			PercentAligned: f32(b[off+4:]),
		}
		off += tileReadSize
	}
	return m, need, nil
}

func (tileFormat) Append(_ Header, m TileMetric, dst []byte) []byte {
	dst = appendU16(dst, m.Lane)
	dst = appendU16(dst, m.Tile)
	dst = appendF32(dst, m.ClusterDensity)
	dst = appendF32(dst, m.ClusterDensityPF)
	dst = appendF32(dst, m.ClusterCount)
	dst = appendF32(dst, m.ClusterCountPF)
	dst = appendU16(dst, uint16(len(m.Reads)))
	for _, r := range m.Reads {
		dst = appendU32(dst, r.Read)
		dst = appendF32(dst, r.PercentAligned)
	}
	return dst
}
