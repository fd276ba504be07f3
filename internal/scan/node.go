package scan

import (
	"github.com/leolech14/map/internal/config"
)

// Node is a directory in the scanned tree with statistics aggregated over
// itself and all retained descendants.
type Node struct {
	// Name is the directory base name.
	Name string `json:"name"`
	// Path is the absolute path.
	Path string `json:"path"`
	// Size is the cumulative size in bytes of the node's own files plus
	// all retained children.
	Size int64 `json:"size"`
	// FileCount is the cumulative number of files.
	FileCount int `json:"file_count"`
	// Category is the semantic label derived from the directory name.
	Category config.Category `json:"category"`
	// Color is the display color for the category.
	Color string `json:"color"`
	// Children holds the retained subdirectories in enumeration order.
	Children []*Node `json:"children"`
}

// Options configures a scan.
type Options struct {
	// Path is the root directory to scan.
	Path string
	// Depth is the maximum recursion depth. Directories at the limit have
	// their files counted but are not descended into. Zero restricts the
	// scan to the root's own files.
	Depth int
	// Gitignore enables .gitignore-based exclusion, read from the root.
	Gitignore bool
	// Verbose enables informational output on stderr.
	Verbose bool
}
