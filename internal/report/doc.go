// Package report turns a scanned directory tree into the aggregated views
// embedded in the output document: per-category totals, a top-N size
// ranking, a hierarchy view for treemap rendering, and a flattened
// node/edge view for graph rendering.
package report
