package stream_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/interop"
	"github.com/hupe1980/interop/blobstore"
	"github.com/hupe1980/interop/metrics"
	"github.com/hupe1980/interop/stream"
	"github.com/hupe1980/interop/testutil"
)

func roundTrip[T any](t *testing.T, f metrics.Format[T], set *metrics.MetricSet[T]) {
	t.Helper()

	data := stream.Write(f, set)
	got, err := stream.Read(f, data)
	require.NoError(t, err)

	assert.Equal(t, set.Header, got.Header)
	assert.Equal(t, set.Records, got.Records)

	// Re-serializing the decoded set must reproduce the file byte for byte.
	assert.Equal(t, data, stream.Write(f, got))
}

func TestRoundTrip(t *testing.T) {
	rng := testutil.NewRNG(42)
	layout := testutil.DefaultLayout

	t.Run("tile v2", func(t *testing.T) { roundTrip(t, metrics.Tile, testutil.TileSet(rng, layout)) })
	t.Run("error v3", func(t *testing.T) { roundTrip(t, metrics.Error, testutil.ErrorSet(rng, layout, 3)) })
	t.Run("error v4", func(t *testing.T) { roundTrip(t, metrics.Error, testutil.ErrorSet(rng, layout, 4)) })
	t.Run("extraction v2", func(t *testing.T) { roundTrip(t, metrics.Extraction, testutil.ExtractionSet(rng, layout)) })
	t.Run("image v1", func(t *testing.T) { roundTrip(t, metrics.Image, testutil.ImageSet(rng, layout, 1, 2)) })
	t.Run("image v2", func(t *testing.T) { roundTrip(t, metrics.Image, testutil.ImageSet(rng, layout, 2, 4)) })
	t.Run("quality v4", func(t *testing.T) { roundTrip(t, metrics.Quality, testutil.QualitySet(rng, layout, 4, nil)) })
	t.Run("quality v5", func(t *testing.T) {
		roundTrip(t, metrics.Quality, testutil.QualitySet(rng, layout, 5, testutil.QualityBins(8)))
	})
	t.Run("quality v6", func(t *testing.T) {
		roundTrip(t, metrics.Quality, testutil.QualitySet(rng, layout, 6, testutil.QualityBins(7)))
	})
	t.Run("corrected v2", func(t *testing.T) { roundTrip(t, metrics.CorrectedIntensity, testutil.CorrectedSet(rng, layout, 2)) })
	t.Run("corrected v3", func(t *testing.T) { roundTrip(t, metrics.CorrectedIntensity, testutil.CorrectedSet(rng, layout, 3)) })
	t.Run("index v1", func(t *testing.T) { roundTrip(t, metrics.Index, testutil.IndexSet(rng, layout)) })
}

// truncationSweep reads every strict prefix of a valid file. A prefix
// either decodes cleanly (it ends on a record boundary) or fails the
// completeness check; nothing in between.
func truncationSweep[T any](t *testing.T, f metrics.Format[T], set *metrics.MetricSet[T]) {
	t.Helper()

	data := stream.Write(f, set)
	var failures int
	for n := 0; n < len(data); n++ {
		_, err := stream.Read(f, data[:n])
		if err == nil {
			continue
		}
		failures++
		assert.ErrorIs(t, err, interop.ErrIncompleteFile, "prefix length %d", n)
	}
	assert.Positive(t, failures)

	got, err := stream.Read(f, data)
	require.NoError(t, err)
	assert.Equal(t, set.Len(), got.Len())
}

func TestTruncatedPrefixes(t *testing.T) {
	rng := testutil.NewRNG(7)
	layout := testutil.Layout{Lanes: 1, TilesPerLane: 2, Cycles: 3, Reads: 2}

	t.Run("tile", func(t *testing.T) { truncationSweep(t, metrics.Tile, testutil.TileSet(rng, layout)) })
	t.Run("error v3", func(t *testing.T) { truncationSweep(t, metrics.Error, testutil.ErrorSet(rng, layout, 3)) })
	t.Run("extraction", func(t *testing.T) { truncationSweep(t, metrics.Extraction, testutil.ExtractionSet(rng, layout)) })
	t.Run("image v2", func(t *testing.T) { truncationSweep(t, metrics.Image, testutil.ImageSet(rng, layout, 2, 4)) })
	t.Run("quality v6", func(t *testing.T) {
		truncationSweep(t, metrics.Quality, testutil.QualitySet(rng, layout, 6, testutil.QualityBins(7)))
	})
	t.Run("corrected v3", func(t *testing.T) {
		truncationSweep(t, metrics.CorrectedIntensity, testutil.CorrectedSet(rng, layout, 3))
	})
	t.Run("index", func(t *testing.T) { truncationSweep(t, metrics.Index, testutil.IndexSet(rng, layout)) })
}

func TestNearlyCompleteFile(t *testing.T) {
	rng := testutil.NewRNG(8)
	set := testutil.ExtractionSet(rng, testutil.DefaultLayout)
	data := stream.Write(metrics.Extraction, set)

	_, err := stream.Read(metrics.Extraction, data[:len(data)-4])
	assert.ErrorIs(t, err, interop.ErrIncompleteFile)
}

func TestEmptyFileWithValidHeader(t *testing.T) {
	set, err := metrics.NewSet(metrics.Error, 4, nil)
	require.NoError(t, err)
	data := stream.Write(metrics.Error, set)

	got, err := stream.Read(metrics.Error, data)
	require.NoError(t, err)
	assert.True(t, got.Empty())
	assert.Equal(t, uint8(4), got.Version())
	assert.Equal(t, data, stream.Write(metrics.Error, got))
}

func TestUnsupportedVersion(t *testing.T) {
	rng := testutil.NewRNG(9)
	data := stream.Write(metrics.Error, testutil.ErrorSet(rng, testutil.DefaultLayout, 3))
	data[0] = 34

	_, err := stream.Read(metrics.Error, data)
	assert.ErrorIs(t, err, interop.ErrUnsupportedVersion)
	assert.ErrorIs(t, err, interop.ErrBadFormat)
}

func TestRecordSizeMismatch(t *testing.T) {
	rng := testutil.NewRNG(10)
	data := stream.Write(metrics.Error, testutil.ErrorSet(rng, testutil.DefaultLayout, 3))
	data[1], data[2] = 0, 0

	_, err := stream.Read(metrics.Error, data)
	assert.ErrorIs(t, err, interop.ErrRecordSizeMismatch)
	assert.ErrorIs(t, err, interop.ErrBadFormat)
}

func TestReadFromMissingFile(t *testing.T) {
	store := blobstore.NewMemoryStore()

	_, err := stream.ReadFrom(context.Background(), store, metrics.Error, "InterOp/ErrorMetricsOut.bin")
	assert.ErrorIs(t, err, interop.ErrFileNotFound)
}

func TestWriteToReadFrom(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	rng := testutil.NewRNG(11)
	set := testutil.QualitySet(rng, testutil.DefaultLayout, 5, testutil.QualityBins(4))

	name := "InterOp/" + metrics.Quality.FileName()
	require.NoError(t, stream.WriteTo(ctx, store, metrics.Quality, name, set))

	got, err := stream.ReadFrom(ctx, store, metrics.Quality, name)
	require.NoError(t, err)
	assert.Equal(t, set.Records, got.Records)
	assert.Equal(t, set.Header, got.Header)
}
