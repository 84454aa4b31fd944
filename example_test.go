package interop_test

import (
	"fmt"
	"log"

	"github.com/hupe1980/interop/metrics"
	"github.com/hupe1980/interop/stream"
)

// Example_readMetricFile demonstrates decoding a metric file held in memory.
func Example_readMetricFile() {
	set, err := metrics.NewSet(metrics.Error, 4, nil)
	if err != nil {
		log.Fatal(err)
	}
	set.Add(metrics.ErrorMetric{
		LaneTileCycle: metrics.LaneTileCycle{
			LaneTile: metrics.LaneTile{Lane: 1, Tile: 1101},
			Cycle:    26,
		},
		ErrorRate: 0.45,
	})
	data := stream.Write(metrics.Error, set)

	got, err := stream.Read(metrics.Error, data)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("version:", got.Version())
	fmt.Println("records:", got.Len())
	// Output:
	// version: 4
	// records: 1
}

// Example_filterByCycle demonstrates bounding a metric set to earlier cycles.
func Example_filterByCycle() {
	set, err := metrics.NewSet(metrics.Error, 4, nil)
	if err != nil {
		log.Fatal(err)
	}
	for cycle := uint16(1); cycle <= 10; cycle++ {
		set.Add(metrics.ErrorMetric{
			LaneTileCycle: metrics.LaneTileCycle{
				LaneTile: metrics.LaneTile{Lane: 1, Tile: 1101},
				Cycle:    cycle,
			},
		})
	}

	out := metrics.FilterByCycle(set, 4)
	fmt.Println("kept:", out.Len())
	// Output: kept: 4
}
