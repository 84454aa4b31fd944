// Package testutil provides deterministic fixture builders for metric
// file tests. All builders derive their values from a seeded RNG so
// fixtures are reproducible across runs.
package testutil

import (
	"fmt"
	"math/rand"

	"github.com/hupe1980/interop/metrics"
	"github.com/hupe1980/interop/stream"
)

// RNG encapsulates a seeded random number generator.
type RNG struct {
	rand *rand.Rand
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{rand: rand.New(rand.NewSource(seed))}
}

// Float32 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float32() float32 { return r.rand.Float32() }

// Uint32 returns a pseudo-random uint32.
func (r *RNG) Uint32() uint32 { return r.rand.Uint32() }

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 { return r.rand.Uint64() }

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int { return r.rand.Intn(n) }

// Layout describes the simulated flow cell: lanes, tiles per lane,
// sequencing cycles, and reads.
type Layout struct {
	Lanes        int
	TilesPerLane int
	Cycles       int
	Reads        int
}

// DefaultLayout is a small layout that still exercises every filter path.
var DefaultLayout = Layout{Lanes: 2, TilesPerLane: 3, Cycles: 6, Reads: 2}

// Keys returns every (lane, tile) key of the layout in instrument order:
// tiles within a lane, lanes in ascending order. Tile numbers follow the
// conventional 1101, 1102, ... scheme.
func (l Layout) Keys() []metrics.LaneTile {
	keys := make([]metrics.LaneTile, 0, l.Lanes*l.TilesPerLane)
	for lane := 1; lane <= l.Lanes; lane++ {
		for tile := 0; tile < l.TilesPerLane; tile++ {
			keys = append(keys, metrics.LaneTile{
				Lane: uint16(lane),
				Tile: uint16(1101 + tile),
			})
		}
	}
	return keys
}

// CycleKeys returns every (lane, tile, cycle) key of the layout, cycles
// innermost.
func (l Layout) CycleKeys() []metrics.LaneTileCycle {
	keys := make([]metrics.LaneTileCycle, 0, l.Lanes*l.TilesPerLane*l.Cycles)
	for _, lt := range l.Keys() {
		for cycle := 1; cycle <= l.Cycles; cycle++ {
			keys = append(keys, metrics.LaneTileCycle{LaneTile: lt, Cycle: uint16(cycle)})
		}
	}
	return keys
}

func mustSet[T any](f metrics.Format[T], version uint8, extra metrics.ExtraFields) *metrics.MetricSet[T] {
	set, err := metrics.NewSet(f, version, extra)
	if err != nil {
		panic(err)
	}
	return set
}

// TileSet builds a version 2 tile metric set with one per-read sub-entry
// per layout read.
func TileSet(rng *RNG, l Layout) *metrics.MetricSet[metrics.TileMetric] {
	set := mustSet(metrics.Tile, 2, nil)
	for _, key := range l.Keys() {
		m := metrics.TileMetric{
			LaneTile:         key,
			ClusterDensity:   rng.Float32() * 3000,
			ClusterDensityPF: rng.Float32() * 2500,
			ClusterCount:     rng.Float32() * 4e6,
			ClusterCountPF:   rng.Float32() * 3e6,
		}
		for read := 1; read <= l.Reads; read++ {
			m.Reads = append(m.Reads, metrics.TileRead{
				Read:           uint32(read),
				PercentAligned: rng.Float32() * 100,
			})
		}
		set.Add(m)
	}
	return set
}

// ErrorSet builds an error metric set for version 3 or 4.
func ErrorSet(rng *RNG, l Layout, version uint8) *metrics.MetricSet[metrics.ErrorMetric] {
	set := mustSet(metrics.Error, version, nil)
	for _, key := range l.CycleKeys() {
		m := metrics.ErrorMetric{
			LaneTileCycle: key,
			ErrorRate:     rng.Float32() * 5,
		}
		if version == 3 {
			for i := range m.MismatchCounts {
				m.MismatchCounts[i] = rng.Uint32() % 1000
			}
		}
		set.Add(m)
	}
	return set
}

// ExtractionSet builds a version 2 extraction metric set.
func ExtractionSet(rng *RNG, l Layout) *metrics.MetricSet[metrics.ExtractionMetric] {
	set := mustSet(metrics.Extraction, 2, nil)
	for _, key := range l.CycleKeys() {
		m := metrics.ExtractionMetric{
			LaneTileCycle: key,
			Timestamp:     rng.Uint64(),
		}
		for i := range m.FWHM {
			m.FWHM[i] = rng.Float32() * 10
		}
		for i := range m.Intensity {
			m.Intensity[i] = uint16(rng.Uint32())
		}
		set.Add(m)
	}
	return set
}

// ImageSet builds an image metric set. Version 1 emits one record per
// channel; version 2 emits one record carrying all channels.
func ImageSet(rng *RNG, l Layout, version uint8, channels int) *metrics.MetricSet[metrics.ImageMetric] {
	var extra metrics.ExtraFields
	if version == 2 {
		extra = metrics.ImageExtra{ChannelCount: uint8(channels)}
	}
	set := mustSet(metrics.Image, version, extra)
	for _, key := range l.CycleKeys() {
		if version == 1 {
			for ch := 0; ch < channels; ch++ {
				set.Add(metrics.ImageMetric{
					LaneTileCycle: key,
					Channel:       uint16(ch),
					MinContrast:   []uint16{uint16(rng.Uint32())},
					MaxContrast:   []uint16{uint16(rng.Uint32())},
				})
			}
			continue
		}
		m := metrics.ImageMetric{
			LaneTileCycle: key,
			MinContrast:   make([]uint16, channels),
			MaxContrast:   make([]uint16, channels),
		}
		for ch := 0; ch < channels; ch++ {
			m.MinContrast[ch] = uint16(rng.Uint32())
			m.MaxContrast[ch] = uint16(rng.Uint32())
		}
		set.Add(m)
	}
	return set
}

// QualityBins returns an n-bin quality table covering Q2 through Q41.
func QualityBins(n int) []metrics.QualityBin {
	bins := make([]metrics.QualityBin, n)
	span := 40 / n
	for i := range bins {
		lower := 2 + i*span
		bins[i] = metrics.QualityBin{
			Lower: uint8(lower),
			Upper: uint8(lower + span - 1),
			Value: uint8(lower + span/2),
		}
	}
	return bins
}

// QualitySet builds a quality metric set. Versions 4 and 5 carry the full
// 50-bucket histogram; version 6 carries one bucket per bin.
func QualitySet(rng *RNG, l Layout, version uint8, bins []metrics.QualityBin) *metrics.MetricSet[metrics.QualityMetric] {
	var extra metrics.ExtraFields
	if version >= 5 {
		extra = metrics.QualityExtra{Bins: bins}
	}
	set := mustSet(metrics.Quality, version, extra)

	buckets := 50
	if version == 6 {
		buckets = len(bins)
	}
	for _, key := range l.CycleKeys() {
		m := metrics.QualityMetric{
			LaneTileCycle: key,
			Histogram:     make([]uint32, buckets),
		}
		for i := range m.Histogram {
			m.Histogram[i] = rng.Uint32() % 100000
		}
		set.Add(m)
	}
	return set
}

// CorrectedSet builds a corrected intensity metric set for version 2 or 3.
func CorrectedSet(rng *RNG, l Layout, version uint8) *metrics.MetricSet[metrics.CorrectedIntensityMetric] {
	set := mustSet(metrics.CorrectedIntensity, version, nil)
	for _, key := range l.CycleKeys() {
		m := metrics.CorrectedIntensityMetric{LaneTileCycle: key}
		if version == 2 {
			m.AvgIntensity = uint16(rng.Uint32())
			for i := range m.AvgCorrected {
				m.AvgCorrected[i] = uint16(rng.Uint32())
			}
			m.SignalToNoise = rng.Float32() * 20
		}
		for i := range m.AvgCalled {
			m.AvgCalled[i] = uint16(rng.Uint32())
		}
		for i := range m.CalledCounts {
			m.CalledCounts[i] = rng.Uint32() % 1000000
		}
		set.Add(m)
	}
	return set
}

// IndexSet builds a version 1 index metric set with one record per tile
// and read.
func IndexSet(rng *RNG, l Layout) *metrics.MetricSet[metrics.IndexMetric] {
	set := mustSet(metrics.Index, 1, nil)
	for _, key := range l.Keys() {
		for read := 1; read <= l.Reads; read++ {
			set.Add(metrics.IndexMetric{
				LaneTile:     key,
				Read:         uint16(read),
				IndexName:    fmt.Sprintf("ATCACG-%d", read),
				ClusterCount: rng.Uint32() % 1000000,
				SampleName:   fmt.Sprintf("sample-%d", key.Lane),
				ProjectName:  "project",
			})
		}
	}
	return set
}

// RunFolderFiles returns serialized metric files for every category,
// keyed by file name.
func RunFolderFiles(rng *RNG, l Layout) map[string][]byte {
	return map[string][]byte{
		metrics.Tile.FileName():               stream.Write(metrics.Tile, TileSet(rng, l)),
		metrics.Error.FileName():              stream.Write(metrics.Error, ErrorSet(rng, l, 3)),
		metrics.Extraction.FileName():         stream.Write(metrics.Extraction, ExtractionSet(rng, l)),
		metrics.Quality.FileName():            stream.Write(metrics.Quality, QualitySet(rng, l, 6, QualityBins(7))),
		metrics.Image.FileName():              stream.Write(metrics.Image, ImageSet(rng, l, 2, 4)),
		metrics.CorrectedIntensity.FileName(): stream.Write(metrics.CorrectedIntensity, CorrectedSet(rng, l, 3)),
		metrics.Index.FileName():              stream.Write(metrics.Index, IndexSet(rng, l)),
	}
}
