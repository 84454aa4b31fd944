package metrics

// ExtractionMetric is one per-cycle extraction record: focus quality and
// raw intensity per base channel, plus the acquisition timestamp.
type ExtractionMetric struct {
	LaneTileCycle
	FWHM      [4]float32
	Intensity [4]uint16
	// Timestamp is the instrument clock value, kept raw for byte-exact
	// round trips.
	Timestamp uint64
}

const extractionRecordSizeV2 = 38

// Extraction is the codec for ExtractionMetricsOut.bin.
var Extraction Format[ExtractionMetric] = extractionFormat{}

type extractionFormat struct{}

func (extractionFormat) Name() string     { return "Extraction" }
func (extractionFormat) FileName() string { return "ExtractionMetricsOut.bin" }

func (extractionFormat) SupportsVersion(version uint8) bool { return version == 2 }

func (extractionFormat) SizedRecords() bool    { return true }
func (extractionFormat) RecordSize(Header) int { return extractionRecordSizeV2 }

func (extractionFormat) ParseExtra(uint8, []byte) (ExtraFields, int, error) { return nil, 0, nil }
func (extractionFormat) AppendExtra(_ Header, dst []byte) []byte            { return dst }

func (f extractionFormat) Decode(_ Header, b []byte) (ExtractionMetric, int, error) {
	var m ExtractionMetric
	if err := checkRecordLen(f.Name(), b, extractionRecordSizeV2); err != nil {
		return m, 0, err
	}
	m.Lane = u16(b[0:])
	m.Tile = u16(b[2:])
	m.Cycle = u16(b[4:])
	for i := range m.FWHM {
		m.FWHM[i] = f32(b[6+i*4:])
	}
	for i := range m.Intensity {
		m.Intensity[i] = u16(b[22+i*2:])
	}
	m.Timestamp = u64(b[30:])
	return m, extractionRecordSizeV2, nil
}

func (extractionFormat) Append(_ Header, m ExtractionMetric, dst []byte) []byte {
	dst = appendU16(dst, m.Lane)
	dst = appendU16(dst, m.Tile)
	dst = appendU16(dst, m.Cycle)
	for _, v := range m.FWHM {
		dst = appendF32(dst, v)
	}
	for _, v := range m.Intensity {
		dst = appendU16(dst, v)
	}
	dst = appendU64(dst, m.Timestamp)
	return dst
}
