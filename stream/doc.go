// Package stream parses and serializes whole metric files.
//
// Files are always read fully into memory first, which reduces the
// truncation check to pure length arithmetic: decoding is all-or-nothing,
// and a successful Read never used truncated data. Write reproduces the
// exact input bytes for any unmodified set (write(read(b)) == b).
package stream
