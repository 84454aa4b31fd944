package stream_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/interop/metrics"
	"github.com/hupe1980/interop/stream"
)

func TestTileReadFilterReserializes(t *testing.T) {
	set, err := metrics.NewSet(metrics.Tile, 2, nil)
	require.NoError(t, err)
	for _, key := range []metrics.LaneTile{{Lane: 1, Tile: 1101}, {Lane: 1, Tile: 1102}} {
		set.Add(metrics.TileMetric{
			LaneTile:         key,
			ClusterDensity:   2200,
			ClusterDensityPF: 2000,
			ClusterCount:     3.5e6,
			ClusterCountPF:   3.1e6,
			Reads: []metrics.TileRead{
				{Read: 1, PercentAligned: 91.5},
				{Read: 2, PercentAligned: 88},
				{Read: 3, PercentAligned: 85.25},
			},
		})
	}
	full := stream.Write(metrics.Tile, set)

	out := metrics.FilterTileReads(set, 1)
	filtered := stream.Write(metrics.Tile, out)
	assert.Less(t, len(filtered), len(full))

	got, err := stream.Read(metrics.Tile, filtered)
	require.NoError(t, err)
	require.Equal(t, 2, got.Len())
	for _, tile := range got.Records {
		assert.Equal(t, []metrics.TileRead{{Read: 1, PercentAligned: 91.5}}, tile.Reads)
		// Tile-level scalars are untouched by the read filter.
		assert.Equal(t, float32(2200), tile.ClusterDensity)
		assert.Equal(t, float32(3.1e6), tile.ClusterCountPF)
	}
}

func TestAppendOntoExistingBuffer(t *testing.T) {
	set, err := metrics.NewSet(metrics.Error, 4, nil)
	require.NoError(t, err)
	set.Add(metrics.ErrorMetric{
		LaneTileCycle: metrics.LaneTileCycle{
			LaneTile: metrics.LaneTile{Lane: 1, Tile: 1101},
			Cycle:    1,
		},
		ErrorRate: 1.25,
	})

	prefix := []byte{0xde, 0xad}
	buf := stream.Append(metrics.Error, set, append([]byte(nil), prefix...))
	assert.Equal(t, prefix, buf[:2])
	assert.Equal(t, stream.Write(metrics.Error, set), buf[2:])
}
