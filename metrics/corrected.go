package metrics

// CorrectedIntensityMetric is one per-cycle corrected intensity record.
//
// Version 2 carries average intensities and the signal-to-noise ratio;
// version 3 reduced the record to called averages and call counts.
type CorrectedIntensityMetric struct {
	LaneTileCycle
	AvgIntensity  uint16    // v2 only
	AvgCorrected  [4]uint16 // A, C, G, T; v2 only
	AvgCalled     [4]uint16 // A, C, G, T
	CalledCounts  [5]uint32 // no-call, A, C, G, T
	SignalToNoise float32   // v2 only
}

const (
	correctedRecordSizeV2 = 48
	correctedRecordSizeV3 = 34
)

// CorrectedIntensity is the codec for CorrectedIntMetricsOut.bin.
var CorrectedIntensity Format[CorrectedIntensityMetric] = correctedFormat{}

type correctedFormat struct{}

func (correctedFormat) Name() string     { return "CorrectedIntensity" }
func (correctedFormat) FileName() string { return "CorrectedIntMetricsOut.bin" }

func (correctedFormat) SupportsVersion(version uint8) bool {
	return version == 2 || version == 3
}

func (correctedFormat) SizedRecords() bool { return true }

func (correctedFormat) RecordSize(h Header) int {
	if h.Version == 2 {
		return correctedRecordSizeV2
	}
	return correctedRecordSizeV3
}

func (correctedFormat) ParseExtra(uint8, []byte) (ExtraFields, int, error) { return nil, 0, nil }
func (correctedFormat) AppendExtra(_ Header, dst []byte) []byte            { return dst }

func (f correctedFormat) Decode(h Header, b []byte) (CorrectedIntensityMetric, int, error) {
	var m CorrectedIntensityMetric
	size := f.RecordSize(h)
	if err := checkRecordLen(f.Name(), b, size); err != nil {
		return m, 0, err
	}
	m.Lane = u16(b[0:])
	m.Tile = u16(b[2:])
	m.Cycle = u16(b[4:])
	off := 6
	if h.Version == 2 {
		m.AvgIntensity = u16(b[off:])
		off += 2
		for i := range m.AvgCorrected {
			m.AvgCorrected[i] = u16(b[off:])
			off += 2
		}
	}
	for i := range m.AvgCalled {
		m.AvgCalled[i] = u16(b[off:])
		off += 2
	}
	for i := range m.CalledCounts {
		m.CalledCounts[i] = u32(b[off:])
		off += 4
	}
	if h.Version == 2 {
		m.SignalToNoise = f32(b[off:])
	}
	return m, size, nil
}

func (correctedFormat) Append(h Header, m CorrectedIntensityMetric, dst []byte) []byte {
	dst = appendU16(dst, m.Lane)
	dst = appendU16(dst, m.Tile)
	dst = appendU16(dst, m.Cycle)
	if h.Version == 2 {
		dst = appendU16(dst, m.AvgIntensity)
		for _, v := range m.AvgCorrected {
			dst = appendU16(dst, v)
		}
	}
	for _, v := range m.AvgCalled {
		dst = appendU16(dst, v)
	}
	for _, v := range m.CalledCounts {
		dst = appendU32(dst, v)
	}
	if h.Version == 2 {
		dst = appendF32(dst, m.SignalToNoise)
	}
	return dst
}
