package report

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/leolech14/map/internal/config"
	"github.com/leolech14/map/internal/scan"
)

const bytesPerMB = 1 << 20

// CategoryTotal holds the aggregated size and file count for one category.
type CategoryTotal struct {
	// Size is the cumulative size in megabytes.
	Size float64 `json:"size"`
	// Count is the cumulative file count.
	Count int `json:"count"`
	// Color is the display color, taken from the first node seen in the
	// category.
	Color string `json:"color"`
}

// TopDirectory is one entry of the size ranking.
type TopDirectory struct {
	Name     string          `json:"name"`
	Size     float64         `json:"size"`
	Category config.Category `json:"category"`
	Color    string          `json:"color"`
}

// TreeNode mirrors the scanned tree with field names expected by the
// treemap rendering.
type TreeNode struct {
	Name     string      `json:"name"`
	Value    float64     `json:"value"`
	Count    int         `json:"count"`
	Color    string      `json:"color"`
	Children []*TreeNode `json:"children"`
}

// NetworkNode is one node of the flattened graph view.
type NetworkNode struct {
	ID    int     `json:"id"`
	Label string  `json:"label"`
	Size  float64 `json:"size"`
	Color string  `json:"color"`
	Level int     `json:"level"`
}

// NetworkEdge links a node to its parent in the flattened graph view.
type NetworkEdge struct {
	From  int     `json:"from"`
	To    int     `json:"to"`
	Width float64 `json:"width"`
}

// Network is the node/edge view consumed by the force-directed rendering.
type Network struct {
	Nodes []NetworkNode `json:"nodes"`
	Edges []NetworkEdge `json:"edges"`
}

// Report aggregates a scanned tree into the views embedded in the output
// document.
type Report struct {
	// TotalSize is the root's cumulative size in megabytes.
	TotalSize float64 `json:"total_size"`
	// TotalFiles is the root's cumulative file count.
	TotalFiles int `json:"total_files"`
	// ScanDate is when the report was built.
	ScanDate time.Time `json:"scan_date"`
	// Categories maps each observed category to its totals.
	Categories map[config.Category]CategoryTotal `json:"categories"`
	// TopDirectories ranks the largest directories from the top three
	// tree levels, descending by size.
	TopDirectories []TopDirectory `json:"top_directories"`
	// Tree is the hierarchy view.
	Tree *TreeNode `json:"tree_data"`
	// Network is the flattened graph view.
	Network Network `json:"network_data"`
}

// Build derives a Report from a scanned tree. It is a pure function of its
// inputs: topN bounds the ranking view and at becomes the scan timestamp.
func Build(root *scan.Node, topN int, at time.Time) *Report {
	return &Report{
		TotalSize:      toMB(root.Size),
		TotalFiles:     root.FileCount,
		ScanDate:       at,
		Categories:     aggregateCategories(root),
		TopDirectories: topDirectories(root, topN),
		Tree:           toTree(root),
		Network:        toNetwork(root),
	}
}

// aggregateCategories sums size and file count into per-category buckets,
// keyed by each node's own category. The bucket color comes from the first
// node encountered in the category.
func aggregateCategories(root *scan.Node) map[config.Category]CategoryTotal {
	totals := make(map[config.Category]CategoryTotal)

	var visit func(n *scan.Node)
	visit = func(n *scan.Node) {
		total, ok := totals[n.Category]
		if !ok {
			total.Color = n.Color
		}

		total.Size += toMB(n.Size)
		total.Count += n.FileCount
		totals[n.Category] = total

		for _, child := range n.Children {
			visit(child)
		}
	}
	visit(root)

	return totals
}

// topDirectories ranks directories from depth 0 through 2 by cumulative
// size, descending, truncated to limit. The sort is stable over traversal
// order.
func topDirectories(root *scan.Node, limit int) []TopDirectory {
	dirs := []TopDirectory{}

	var collect func(n *scan.Node, level int)
	collect = func(n *scan.Node, level int) {
		if level <= 2 {
			dirs = append(dirs, TopDirectory{
				Name:     n.Name,
				Size:     toMB(n.Size),
				Category: n.Category,
				Color:    n.Color,
			})
		}

		for _, child := range n.Children {
			collect(child, level+1)
		}
	}
	collect(root, 0)

	sort.SliceStable(dirs, func(i, j int) bool {
		return dirs[i].Size > dirs[j].Size
	})

	if len(dirs) > limit {
		dirs = dirs[:limit]
	}

	return dirs
}

// toTree mirrors the scanned tree into the hierarchy view.
func toTree(n *scan.Node) *TreeNode {
	children := make([]*TreeNode, 0, len(n.Children))
	for _, child := range n.Children {
		children = append(children, toTree(child))
	}

	return &TreeNode{
		Name:     n.Name,
		Value:    toMB(n.Size),
		Count:    n.FileCount,
		Color:    n.Color,
		Children: children,
	}
}

// networkBuilder threads the flattening state through the traversal: a
// monotonically increasing id counter plus the node and edge accumulators.
type networkBuilder struct {
	nextID int
	nodes  []NetworkNode
	edges  []NetworkEdge
}

// toNetwork flattens the tree into pre-order numbered nodes with
// parent-link edges.
func toNetwork(root *scan.Node) Network {
	b := &networkBuilder{
		nodes: []NetworkNode{},
		edges: []NetworkEdge{},
	}
	b.visit(root, -1, 0)

	return Network{Nodes: b.nodes, Edges: b.edges}
}

func (b *networkBuilder) visit(n *scan.Node, parent, level int) {
	id := b.nextID
	b.nextID++

	sizeMB := toMB(n.Size)

	b.nodes = append(b.nodes, NetworkNode{
		ID:    id,
		Label: fmt.Sprintf("%s\\n%s", n.Name, FormatSize(sizeMB)),
		Size:  clamp(sizeMB/100, 20, 50),
		Color: n.Color,
		Level: level,
	})

	if parent >= 0 {
		b.edges = append(b.edges, NetworkEdge{
			From:  parent,
			To:    id,
			Width: clamp(sizeMB/1000, 1, 5),
		})
	}

	for _, child := range n.Children {
		b.visit(child, id, level+1)
	}
}

// FormatSize renders a megabyte value for display: gigabytes with one
// decimal at or above 1000 MB, whole megabytes otherwise.
func FormatSize(sizeMB float64) string {
	if sizeMB >= 1000 {
		return fmt.Sprintf("%.1fGB", sizeMB/1000)
	}

	return fmt.Sprintf("%.0fMB", sizeMB)
}

func toMB(bytes int64) float64 {
	return float64(bytes) / bytesPerMB
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
