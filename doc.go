// Package interop reads and writes the binary metric files produced by
// Illumina-style DNA sequencing instruments, one file per metric category
// (tile, error, extraction, image, quality, corrected intensity, index).
//
// Each file holds a versioned header followed by a homogeneous stream of
// little-endian records. The packages in this module decode those streams
// into typed metric sets, re-encode them byte-for-byte, and build derived
// run folders containing only records below a cycle or read bound.
//
// # Quick Start
//
// Read a single metric file:
//
//	data, _ := os.ReadFile("InterOp/ErrorMetricsOut.bin")
//	set, err := stream.Read(metrics.Error, data)
//
// Copy a run folder, keeping only the first 26 cycles and read 1:
//
//	src := blobstore.NewLocalStore("140131_1287_0851_A01n401drr")
//	dst := blobstore.NewLocalStore("out/140131_1287_0851_A01n401drr_MaxCycle_26")
//	summary, err := runfolder.Copy(ctx, src, dst, 26, 1)
//
// Error handling follows a strict taxonomy: missing and truncated files are
// distinguishable, recoverable conditions, while format violations
// (unsupported version, record size mismatch, corrupt counts) always fail.
// See the package-level Err variables in this package.
package interop
