package metrics

// ErrorMetric is one per-cycle alignment error record.
type ErrorMetric struct {
	LaneTileCycle
	ErrorRate float32
	// MismatchCounts holds the number of reads with 0 through 4
	// mismatches. Version 3 only; version 4 dropped the counts.
	MismatchCounts [5]uint32
}

const (
	errorRecordSizeV3 = 30
	errorRecordSizeV4 = 10
)

// Error is the codec for ErrorMetricsOut.bin.
var Error Format[ErrorMetric] = errorFormat{}

type errorFormat struct{}

func (errorFormat) Name() string     { return "Error" }
func (errorFormat) FileName() string { return "ErrorMetricsOut.bin" }

func (errorFormat) SupportsVersion(version uint8) bool {
	return version == 3 || version == 4
}

func (errorFormat) SizedRecords() bool { return true }

func (errorFormat) RecordSize(h Header) int {
	if h.Version == 3 {
		return errorRecordSizeV3
	}
	return errorRecordSizeV4
}

func (errorFormat) ParseExtra(uint8, []byte) (ExtraFields, int, error) { return nil, 0, nil }
func (errorFormat) AppendExtra(_ Header, dst []byte) []byte            { return dst }

func (f errorFormat) Decode(h Header, b []byte) (ErrorMetric, int, error) {
	var m ErrorMetric
	size := f.RecordSize(h)
	if err := checkRecordLen(f.Name(), b, size); err != nil {
		return m, 0, err
	}
	m.Lane = u16(b[0:])
	m.Tile = u16(b[2:])
	m.Cycle = u16(b[4:])
	m.ErrorRate = f32(b[6:])
	if h.Version == 3 {
		for i := range m.MismatchCounts {
			m.MismatchCounts[i] = u32(b[10+i*4:])
		}
	}
	return m, size, nil
}

func (errorFormat) Append(h Header, m ErrorMetric, dst []byte) []byte {
	dst = appendU16(dst, m.Lane)
	dst = appendU16(dst, m.Tile)
	dst = appendU16(dst, m.Cycle)
	dst = appendF32(dst, m.ErrorRate)
	if h.Version == 3 {
		for _, c := range m.MismatchCounts {
			dst = appendU32(dst, c)
		}
	}
	return dst
}
