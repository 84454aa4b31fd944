package main

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/interop/blobstore"
	"github.com/hupe1980/interop/metrics"
	"github.com/hupe1980/interop/runfolder"
	"github.com/hupe1980/interop/stream"
)

func main() {
	ctx := context.Background()

	// Build a small extraction metric file in memory.
	set, err := metrics.NewSet(metrics.Extraction, 2, nil)
	if err != nil {
		log.Fatal(err)
	}
	for cycle := uint16(1); cycle <= 50; cycle++ {
		set.Add(metrics.ExtractionMetric{
			LaneTileCycle: metrics.LaneTileCycle{
				LaneTile: metrics.LaneTile{Lane: 1, Tile: 1101},
				Cycle:    cycle,
			},
			FWHM:      [4]float32{2.5, 2.6, 2.4, 2.7},
			Intensity: [4]uint16{520, 480, 510, 495},
		})
	}

	src := blobstore.NewMemoryStore()
	name := "InterOp/" + metrics.Extraction.FileName()
	if err := stream.WriteTo(ctx, src, metrics.Extraction, name, set); err != nil {
		log.Fatal(err)
	}

	fmt.Println("--- Copy ---")
	fmt.Println("Records:", set.Len())

	// Rewind the run folder to cycle 26.
	dst := blobstore.NewMemoryStore()
	summary, err := runfolder.Copy(ctx, src, dst, 26, 1)
	if err != nil {
		log.Fatal(err)
	}

	for _, res := range summary.Results {
		if res.Skipped {
			fmt.Printf("%-20s skipped (%s)\n", res.Category, res.Reason)
			continue
		}
		fmt.Printf("%-20s kept %d of %d records\n", res.Category, res.Stats.Kept, res.Stats.Total)
	}

	got, err := stream.ReadFrom(ctx, dst, metrics.Extraction, name)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("Filtered records:", got.Len())
}
