package metrics

import (
	"fmt"

	"github.com/hupe1980/interop"
)

// ImageMetric is one per-cycle image contrast record.
//
// Version 1 stores one channel per record, identified by Channel.
// Version 2 stores all channels in one record; the channel count comes
// from the ImageExtra header field and Channel is unused.
type ImageMetric struct {
	LaneTileCycle
	Channel     uint16
	MinContrast []uint16
	MaxContrast []uint16
}

// ImageExtra is the version 2 header metadata.
type ImageExtra struct {
	ChannelCount uint8
}

const imageRecordSizeV1 = 12

// Image is the codec for ImageMetricsOut.bin.
var Image Format[ImageMetric] = imageFormat{}

type imageFormat struct{}

func (imageFormat) Name() string     { return "Image" }
func (imageFormat) FileName() string { return "ImageMetricsOut.bin" }

func (imageFormat) SupportsVersion(version uint8) bool {
	return version == 1 || version == 2
}

func (imageFormat) SizedRecords() bool { return true }

func (imageFormat) RecordSize(h Header) int {
	if h.Version == 1 {
		return imageRecordSizeV1
	}
	extra, ok := h.Extra.(ImageExtra)
	if !ok {
		return 0
	}
	return 6 + 4*int(extra.ChannelCount)
}

func (f imageFormat) ParseExtra(version uint8, b []byte) (ExtraFields, int, error) {
	if version == 1 {
		return nil, 0, nil
	}
	if len(b) < 1 {
		return nil, 0, fmt.Errorf("%w: %s header is missing the channel count",
			interop.ErrIncompleteFile, f.Name())
	}
	if b[0] == 0 {
		return nil, 0, fmt.Errorf("%w: %s header declares zero channels",
			interop.ErrCorrupt, f.Name())
	}
	return ImageExtra{ChannelCount: b[0]}, 1, nil
}

func (imageFormat) AppendExtra(h Header, dst []byte) []byte {
	if h.Version == 1 {
		return dst
	}
	extra, _ := h.Extra.(ImageExtra)
	return append(dst, extra.ChannelCount)
}

func (f imageFormat) Decode(h Header, b []byte) (ImageMetric, int, error) {
	var m ImageMetric
	size := f.RecordSize(h)
	if err := checkRecordLen(f.Name(), b, size); err != nil {
		return m, 0, err
	}
	m.Lane = u16(b[0:])
	m.Tile = u16(b[2:])
	m.Cycle = u16(b[4:])
	if h.Version == 1 {
		m.Channel = u16(b[6:])
		m.MinContrast = []uint16{u16(b[8:])}
		m.MaxContrast = []uint16{u16(b[10:])}
		return m, size, nil
	}
	channels := int(h.Extra.(ImageExtra).ChannelCount)
	m.MinContrast = make([]uint16, channels)
	m.MaxContrast = make([]uint16, channels)
	off := 6
	for i := 0; i < channels; i++ {
		m.MinContrast[i] = u16(b[off:])
		m.MaxContrast[i] = u16(b[off+2:])
		off += 4
	}
	return m, size, nil
}

func (imageFormat) Append(h Header, m ImageMetric, dst []byte) []byte {
	dst = appendU16(dst, m.Lane)
	dst = appendU16(dst, m.Tile)
	dst = appendU16(dst, m.Cycle)
	if h.Version == 1 {
		dst = appendU16(dst, m.Channel)
		dst = appendU16(dst, contrastAt(m.MinContrast, 0))
		dst = appendU16(dst, contrastAt(m.MaxContrast, 0))
		return dst
	}
	channels := int(h.Extra.(ImageExtra).ChannelCount)
	for i := 0; i < channels; i++ {
		dst = appendU16(dst, contrastAt(m.MinContrast, i))
		dst = appendU16(dst, contrastAt(m.MaxContrast, i))
	}
	return dst
}

func contrastAt(values []uint16, i int) uint16 {
	if i >= len(values) {
		return 0
	}
	return values[i]
}
