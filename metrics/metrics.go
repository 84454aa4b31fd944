// Package metrics defines the typed records and binary codecs for every
// metric category written by the instrument: tile, error, extraction,
// image, quality, corrected intensity, and index.
//
// Each category is described by a Format: a pure, stateless codec that
// knows the supported versions, the header shape, and the per-record
// layout for each version. All on-disk values are little-endian with no
// padding between fields or records.
//
// Adding a format version means adding a case to the category's codec,
// not a new type.
package metrics

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/hupe1980/interop"
)

// Header is the decoded file header of one metric file.
type Header struct {
	// Version selects the record layout. Supported ranges are
	// category-specific.
	Version uint8
	// RecordSize is the declared on-disk record size. Zero for
	// variable-size categories, which carry no size field.
	RecordSize uint16
	// Extra holds category-specific header metadata (quality bin table,
	// image channel count). Nil when the category has none. Extras are
	// treated as immutable once parsed; derived sets share them.
	Extra ExtraFields
}

// ExtraFields is category-specific header metadata, consumed only by that
// category's codec.
type ExtraFields interface{}

// Format describes the binary layout of one metric category.
//
// Decode and Append are pure functions of the header and record bytes;
// a Format value holds no state and is safe for concurrent use.
type Format[T any] interface {
	// Name returns the category name ("Tile", "Error", ...).
	Name() string
	// FileName returns the conventional file name inside the InterOp
	// directory ("TileMetricsOut.bin", ...).
	FileName() string
	// SupportsVersion reports whether the version is in the category's
	// supported set.
	SupportsVersion(version uint8) bool
	// SizedRecords reports whether files of this category carry a
	// declared record-size field after the version byte. False for the
	// variable-size categories (tile, index).
	SizedRecords() bool
	// RecordSize returns the expected on-disk record size for the
	// header's version and extras. Zero for variable-size categories.
	RecordSize(h Header) int
	// ParseExtra decodes category-specific header fields from b and
	// returns the number of bytes consumed. Categories without extras
	// return (nil, 0, nil).
	ParseExtra(version uint8, b []byte) (ExtraFields, int, error)
	// AppendExtra re-encodes the header extras onto dst.
	AppendExtra(h Header, dst []byte) []byte
	// Decode reads one record from the front of b and returns the bytes
	// consumed. Insufficient bytes yield interop.ErrIncompleteFile;
	// internally inconsistent counts yield interop.ErrCorrupt.
	Decode(h Header, b []byte) (T, int, error)
	// Append encodes one record onto dst.
	Append(h Header, rec T, dst []byte) []byte
}

// LaneTile is the composite key shared by every metric record.
type LaneTile struct {
	Lane uint16
	Tile uint16
}

// LaneNumber returns the lane component of the key.
func (k LaneTile) LaneNumber() uint16 { return k.Lane }

// TileNumber returns the tile component of the key.
func (k LaneTile) TileNumber() uint16 { return k.Tile }

// LaneTileCycle is the composite key of per-cycle metric records.
type LaneTileCycle struct {
	LaneTile
	Cycle uint16
}

// CycleNumber returns the cycle component of the key.
func (k LaneTileCycle) CycleNumber() uint16 { return k.Cycle }

// LaneTileKeyed is implemented by every metric record.
type LaneTileKeyed interface {
	LaneNumber() uint16
	TileNumber() uint16
}

// CycleKeyed is implemented by per-cycle metric records.
type CycleKeyed interface {
	CycleNumber() uint16
}

// ReadKeyed is implemented by per-read metric records.
type ReadKeyed interface {
	ReadNumber() uint32
}

func u16(b []byte) uint16  { return binary.LittleEndian.Uint16(b) }
func u32(b []byte) uint32  { return binary.LittleEndian.Uint32(b) }
func u64(b []byte) uint64  { return binary.LittleEndian.Uint64(b) }
func f32(b []byte) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(b)) }

func appendU16(dst []byte, v uint16) []byte { return binary.LittleEndian.AppendUint16(dst, v) }
func appendU32(dst []byte, v uint32) []byte { return binary.LittleEndian.AppendUint32(dst, v) }
func appendU64(dst []byte, v uint64) []byte { return binary.LittleEndian.AppendUint64(dst, v) }
func appendF32(dst []byte, v float32) []byte {
	return binary.LittleEndian.AppendUint32(dst, math.Float32bits(v))
}

// checkRecordLen guards fixed-size decodes against short buffers.
func checkRecordLen(name string, b []byte, size int) error {
	if len(b) < size {
		return fmt.Errorf("%w: %s record needs %d bytes, %d remain",
			interop.ErrIncompleteFile, name, size, len(b))
	}
	return nil
}
