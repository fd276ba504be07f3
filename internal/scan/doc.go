// Package scan walks a directory tree and aggregates per-directory size
// and file-count statistics.
//
// The walk is sequential and bounded by a maximum depth. Subdirectories
// whose cumulative size falls below the configured minimum are dropped
// from the result entirely, and every retained directory is assigned a
// semantic category derived from its name.
package scan
