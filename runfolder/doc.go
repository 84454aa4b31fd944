// Package runfolder orchestrates whole-run-folder operations over the
// known metric categories.
//
// The central operation is Copy: read every category present in a source
// run folder, keep only records below a cycle or read bound, and write
// the filtered files to a destination. Missing and incomplete files are
// skipped silently; malformed files abort the whole copy. That policy is
// a contract, not a convenience: malformed data indicates a real format
// or version mismatch that silent skipping would mask.
package runfolder
