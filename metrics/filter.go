package metrics

// FilterByCycle returns a new set holding only the records whose cycle key
// is at or below maxCycle. The input is not mutated; relative order and
// header metadata are preserved.
func FilterByCycle[T CycleKeyed](s *MetricSet[T], maxCycle uint16) *MetricSet[T] {
	out := &MetricSet[T]{Header: s.Header}
	for _, rec := range s.Records {
		if rec.CycleNumber() > maxCycle {
			continue
		}
		out.Records = append(out.Records, rec)
	}
	return out
}

// FilterByRead returns a new set holding only the records whose read key
// is at or below maxRead. Used for categories keyed per read, such as
// index metrics.
func FilterByRead[T ReadKeyed](s *MetricSet[T], maxRead uint32) *MetricSet[T] {
	out := &MetricSet[T]{Header: s.Header}
	for _, rec := range s.Records {
		if rec.ReadNumber() > maxRead {
			continue
		}
		out.Records = append(out.Records, rec)
	}
	return out
}

// FilterTileReads returns a new tile set in which every tile keeps only
// the per-read sub-entries at or below maxRead. Tiles are never dropped:
// the tile-level scalar fields stay meaningful even with zero surviving
// sub-entries.
func FilterTileReads(s *MetricSet[TileMetric], maxRead uint32) *MetricSet[TileMetric] {
	out := &MetricSet[TileMetric]{
		Header:  s.Header,
		Records: make([]TileMetric, 0, len(s.Records)),
	}
	for _, tile := range s.Records {
		reads := make([]TileRead, 0, len(tile.Reads))
		for _, r := range tile.Reads {
			if r.Read > maxRead {
				continue
			}
			reads = append(reads, r)
		}
		tile.Reads = reads
		out.Records = append(out.Records, tile)
	}
	return out
}
