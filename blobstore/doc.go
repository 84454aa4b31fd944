// Package blobstore abstracts the byte sources that run folders live on.
//
// The core codec always reads a metric file fully into memory before
// parsing, so the central helper is ReadAll. Stores exist for the local
// filesystem, in-memory fixtures, and (in subpackages) S3 and MinIO.
// A wrapper store adds transparent compression for archived run folders.
package blobstore
