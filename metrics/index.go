package metrics

import (
	"fmt"

	"github.com/hupe1980/interop"
)

// IndexMetric is one per-read index demultiplexing record. Records are
// variable-size: the three names are length-prefixed strings.
type IndexMetric struct {
	LaneTile
	Read         uint16
	IndexName    string
	ClusterCount uint32
	SampleName   string
	ProjectName  string
}

// ReadNumber returns the read component of the key.
func (m IndexMetric) ReadNumber() uint32 { return uint32(m.Read) }

// indexPrefixSize covers lane, tile and read.
const indexPrefixSize = 6

// Index is the codec for IndexMetricsOut.bin.
var Index Format[IndexMetric] = indexFormat{}

type indexFormat struct{}

func (indexFormat) Name() string     { return "Index" }
func (indexFormat) FileName() string { return "IndexMetricsOut.bin" }

func (indexFormat) SupportsVersion(version uint8) bool { return version == 1 }

func (indexFormat) SizedRecords() bool    { return false }
func (indexFormat) RecordSize(Header) int { return 0 }

func (indexFormat) ParseExtra(uint8, []byte) (ExtraFields, int, error) { return nil, 0, nil }
func (indexFormat) AppendExtra(_ Header, dst []byte) []byte            { return dst }

func (f indexFormat) Decode(_ Header, b []byte) (IndexMetric, int, error) {
	var m IndexMetric
	if len(b) < indexPrefixSize {
		return m, 0, fmt.Errorf("%w: %s record prefix needs %d bytes, %d remain",
			interop.ErrIncompleteFile, f.Name(), indexPrefixSize, len(b))
	}
	m.Lane = u16(b[0:])
	m.Tile = u16(b[2:])
	m.Read = u16(b[4:])

	off := indexPrefixSize
	var err error
	if m.IndexName, off, err = f.decodeString(b, off); err != nil {
		return m, 0, err
	}
	if len(b) < off+4 {
		return m, 0, fmt.Errorf("%w: %s record is missing the cluster count",
			interop.ErrIncompleteFile, f.Name())
	}
	m.ClusterCount = u32(b[off:])
	off += 4
	if m.SampleName, off, err = f.decodeString(b, off); err != nil {
		return m, 0, err
	}
	if m.ProjectName, off, err = f.decodeString(b, off); err != nil {
		return m, 0, err
	}
	return m, off, nil
}

func (f indexFormat) decodeString(b []byte, off int) (string, int, error) {
	if len(b) < off+2 {
		return "", 0, fmt.Errorf("%w: %s record is missing a string length",
			interop.ErrIncompleteFile, f.Name())
	}
	n := int(u16(b[off:]))
	off += 2
	if len(b) < off+n {
		return "", 0, fmt.Errorf("%w: %s record declares a %d-byte string, %d bytes remain",
			interop.ErrIncompleteFile, f.Name(), n, len(b)-off)
	}
	return string(b[off : off+n]), off + n, nil
}

func (indexFormat) Append(_ Header, m IndexMetric, dst []byte) []byte {
	dst = appendU16(dst, m.Lane)
	dst = appendU16(dst, m.Tile)
	dst = appendU16(dst, m.Read)
	dst = appendString(dst, m.IndexName)
	dst = appendU32(dst, m.ClusterCount)
	dst = appendString(dst, m.SampleName)
	dst = appendString(dst, m.ProjectName)
	return dst
}

func appendString(dst []byte, s string) []byte {
	dst = appendU16(dst, uint16(len(s)))
	return append(dst, s...)
}
