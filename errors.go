package interop

import (
	"errors"
	"fmt"
)

var (
	// ErrFileNotFound is returned when a metric file does not exist in the
	// byte source. Batch workflows treat this as "skip", never as fatal.
	ErrFileNotFound = errors.New("interop file not found")

	// ErrIncompleteFile is returned when a metric file is truncated: the
	// byte count after the header is not an exact multiple of the record
	// size, or a variable-size record runs past the end of the file.
	// Decoding is all-or-nothing; no partial metric set is ever returned.
	ErrIncompleteFile = errors.New("incomplete interop file")

	// ErrBadFormat is returned when a metric file violates its format:
	// unsupported version, mismatched declared record size, or structurally
	// inconsistent counts. Always fatal; never silently skipped.
	ErrBadFormat = errors.New("bad interop format")

	// ErrNoMetricsFound is returned by batch copies when no category
	// produced any output.
	ErrNoMetricsFound = errors.New("no interop metrics found")
)

// Specific causes of ErrBadFormat. Each satisfies
// errors.Is(err, ErrBadFormat).
var (
	ErrUnsupportedVersion = fmt.Errorf("%w: unsupported version", ErrBadFormat)
	ErrRecordSizeMismatch = fmt.Errorf("%w: record size mismatch", ErrBadFormat)
	ErrCorrupt            = fmt.Errorf("%w: corrupt record data", ErrBadFormat)
)
