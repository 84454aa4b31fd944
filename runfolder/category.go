package runfolder

import (
	"github.com/hupe1980/interop/metrics"
	"github.com/hupe1980/interop/stream"
)

// Bounds are the record filters applied during a copy.
type Bounds struct {
	MaxCycle uint16
	MaxRead  uint32
}

// CopyStats summarizes one filtered category copy.
type CopyStats struct {
	// Total is the number of records decoded from the source file.
	Total int
	// Kept is the number of records surviving the filter. For the tile
	// category tiles are never dropped, so Kept equals Total there.
	Kept int
	// Cycles is the number of distinct cycles kept. Zero for categories
	// not keyed by cycle.
	Cycles uint64
	// Tiles is the number of distinct (lane, tile) keys kept.
	Tiles uint64
}

// Description is a decoded, JSON-friendly view of one metric file.
type Description struct {
	Category string `json:"category"`
	Version  uint8  `json:"version"`
	Total    int    `json:"total_records"`
	Cycles   uint64 `json:"distinct_cycles,omitempty"`
	Tiles    uint64 `json:"distinct_tiles,omitempty"`
	Records  any    `json:"records"`
}

// Category is one known metric category, erased over its record type so
// batch workflows can treat all categories uniformly.
type Category interface {
	Name() string
	FileName() string
	// RequiresAlignment reports whether the category only holds usable
	// data once alignment has run (error metrics). Such categories are
	// skipped when the cycle bound is at or below the alignment cycle.
	RequiresAlignment() bool
	// CopyFiltered decodes data, applies the bounds, and re-encodes.
	CopyFiltered(data []byte, bounds Bounds) ([]byte, CopyStats, error)
	// Describe decodes data for inspection, keeping at most maxRecords
	// records (zero keeps all).
	Describe(data []byte, maxRecords int) (*Description, error)
}

// Categories lists every known category in the order the instrument
// software processes them.
var Categories = []Category{
	TileCategory,
	ErrorCategory,
	CorrectedIntensityCategory,
	ExtractionCategory,
	QualityCategory,
	ImageCategory,
	IndexCategory,
}

// The known categories.
var (
	TileCategory               Category = tileCategory{}
	ErrorCategory              Category = cycleCategory[metrics.ErrorMetric]{format: metrics.Error, aligned: true}
	CorrectedIntensityCategory Category = cycleCategory[metrics.CorrectedIntensityMetric]{format: metrics.CorrectedIntensity}
	ExtractionCategory         Category = cycleCategory[metrics.ExtractionMetric]{format: metrics.Extraction}
	QualityCategory            Category = cycleCategory[metrics.QualityMetric]{format: metrics.Quality}
	ImageCategory              Category = cycleCategory[metrics.ImageMetric]{format: metrics.Image}
	IndexCategory              Category = indexCategory{}
)

// ByFileName returns the category that owns the given metric file name.
func ByFileName(name string) (Category, bool) {
	for _, cat := range Categories {
		if cat.FileName() == name {
			return cat, true
		}
	}
	return nil, false
}

// cycleKeyed constrains the per-cycle record types.
type cycleKeyed interface {
	metrics.CycleKeyed
	metrics.LaneTileKeyed
}

// cycleCategory adapts one per-cycle format to the Category interface.
type cycleCategory[T cycleKeyed] struct {
	format  metrics.Format[T]
	aligned bool
}

func (c cycleCategory[T]) Name() string            { return c.format.Name() }
func (c cycleCategory[T]) FileName() string        { return c.format.FileName() }
func (c cycleCategory[T]) RequiresAlignment() bool { return c.aligned }

func (c cycleCategory[T]) CopyFiltered(data []byte, bounds Bounds) ([]byte, CopyStats, error) {
	set, err := stream.Read(c.format, data)
	if err != nil {
		return nil, CopyStats{}, err
	}
	out := metrics.FilterByCycle(set, bounds.MaxCycle)
	stats := CopyStats{
		Total:  set.Len(),
		Kept:   out.Len(),
		Cycles: metrics.CycleCoverage(out).GetCardinality(),
		Tiles:  metrics.TileCoverage(out).GetCardinality(),
	}
	return stream.Write(c.format, out), stats, nil
}

func (c cycleCategory[T]) Describe(data []byte, maxRecords int) (*Description, error) {
	set, err := stream.Read(c.format, data)
	if err != nil {
		return nil, err
	}
	return &Description{
		Category: c.format.Name(),
		Version:  set.Version(),
		Total:    set.Len(),
		Cycles:   metrics.CycleCoverage(set).GetCardinality(),
		Tiles:    metrics.TileCoverage(set).GetCardinality(),
		Records:  limitRecords(set.Records, maxRecords),
	}, nil
}

// tileCategory adapts the tile format; the read bound filters the
// embedded per-read sub-entries, never whole tiles.
type tileCategory struct{}

func (tileCategory) Name() string            { return metrics.Tile.Name() }
func (tileCategory) FileName() string        { return metrics.Tile.FileName() }
func (tileCategory) RequiresAlignment() bool { return false }

func (tileCategory) CopyFiltered(data []byte, bounds Bounds) ([]byte, CopyStats, error) {
	set, err := stream.Read(metrics.Tile, data)
	if err != nil {
		return nil, CopyStats{}, err
	}
	out := metrics.FilterTileReads(set, bounds.MaxRead)
	stats := CopyStats{
		Total: set.Len(),
		Kept:  out.Len(),
		Tiles: metrics.TileCoverage(out).GetCardinality(),
	}
	return stream.Write(metrics.Tile, out), stats, nil
}

func (tileCategory) Describe(data []byte, maxRecords int) (*Description, error) {
	set, err := stream.Read(metrics.Tile, data)
	if err != nil {
		return nil, err
	}
	return &Description{
		Category: metrics.Tile.Name(),
		Version:  set.Version(),
		Total:    set.Len(),
		Tiles:    metrics.TileCoverage(set).GetCardinality(),
		Records:  limitRecords(set.Records, maxRecords),
	}, nil
}

// indexCategory adapts the index format; records are keyed per read and
// filtered as whole records.
type indexCategory struct{}

func (indexCategory) Name() string            { return metrics.Index.Name() }
func (indexCategory) FileName() string        { return metrics.Index.FileName() }
func (indexCategory) RequiresAlignment() bool { return false }

func (indexCategory) CopyFiltered(data []byte, bounds Bounds) ([]byte, CopyStats, error) {
	set, err := stream.Read(metrics.Index, data)
	if err != nil {
		return nil, CopyStats{}, err
	}
	out := metrics.FilterByRead(set, bounds.MaxRead)
	stats := CopyStats{
		Total: set.Len(),
		Kept:  out.Len(),
		Tiles: metrics.TileCoverage(out).GetCardinality(),
	}
	return stream.Write(metrics.Index, out), stats, nil
}

func (indexCategory) Describe(data []byte, maxRecords int) (*Description, error) {
	set, err := stream.Read(metrics.Index, data)
	if err != nil {
		return nil, err
	}
	return &Description{
		Category: metrics.Index.Name(),
		Version:  set.Version(),
		Total:    set.Len(),
		Tiles:    metrics.TileCoverage(set).GetCardinality(),
		Records:  limitRecords(set.Records, maxRecords),
	}, nil
}

func limitRecords[T any](recs []T, limit int) []T {
	if limit > 0 && len(recs) > limit {
		return recs[:limit]
	}
	return recs
}
