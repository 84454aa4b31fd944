package metrics

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// CycleCoverage returns the set of distinct cycles present in a per-cycle
// metric set.
func CycleCoverage[T CycleKeyed](s *MetricSet[T]) *roaring.Bitmap {
	bm := roaring.New()
	for _, rec := range s.Records {
		bm.Add(uint32(rec.CycleNumber()))
	}
	return bm
}

// TileCoverage returns the set of distinct (lane, tile) keys present in a
// metric set, packed as lane<<16|tile.
func TileCoverage[T LaneTileKeyed](s *MetricSet[T]) *roaring.Bitmap {
	bm := roaring.New()
	for _, rec := range s.Records {
		bm.Add(uint32(rec.LaneNumber())<<16 | uint32(rec.TileNumber()))
	}
	return bm
}
