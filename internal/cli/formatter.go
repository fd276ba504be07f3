package cli

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/leolech14/map/internal/config"
	"github.com/leolech14/map/internal/report"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
)

// PrintSummary outputs the aggregated report in human-readable table
// format.
//
//nolint:forbidigo // This function prints output to the console.
func PrintSummary(rep *report.Report, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	// Category totals, largest first
	fmt.Fprintln(w, "\nCategories:\t\t")

	categories := make([]config.Category, 0, len(rep.Categories))
	for cat := range rep.Categories {
		categories = append(categories, cat)
	}

	sort.Slice(categories, func(i, j int) bool {
		left, right := rep.Categories[categories[i]], rep.Categories[categories[j]]
		if left.Size != right.Size {
			return left.Size > right.Size
		}

		return categories[i] < categories[j]
	})

	for _, cat := range categories {
		total := rep.Categories[cat]
		pct := 0.0
		if rep.TotalSize > 0 {
			pct = 100.0 * total.Size / rep.TotalSize
		}
		fmt.Fprintf(w, "  %s:\t%s files, %s (%.1f%%)\n",
			cat, humanize.Comma(int64(total.Count)), report.FormatSize(total.Size), pct)
	}

	// Top directories
	fmt.Fprintln(w, "\nTop directories:\t\t")

	for i, dir := range rep.TopDirectories {
		pct := 0.0
		if rep.TotalSize > 0 {
			pct = 100.0 * dir.Size / rep.TotalSize
		}
		fmt.Fprintf(w, "  %d) '%s'\t%s (%.1f%%)\n",
			i+1, dir.Name, report.FormatSize(dir.Size), pct)
	}

	// Stats summary
	fmt.Fprintln(w, "\nStats:\t\t")
	fmt.Fprintf(w, "Total files:\t%s\n", humanize.Comma(int64(rep.TotalFiles)))
	fmt.Fprintf(w, "Total size:\t%s\n", report.FormatSize(rep.TotalSize))
	fmt.Fprintf(w, "Scan date:\t%s\n", rep.ScanDate.Format("2006-01-02 15:04"))

	return w.Flush()
}
