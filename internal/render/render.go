// Package render writes the aggregated report as a single self-contained
// HTML document with the derived views embedded as JSON for client-side
// charting.
package render

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/leolech14/map/internal/report"
)

// reportHTML contains the report document template.
//
//go:embed template.html
var reportHTML string

//nolint:gochecknoglobals // Parsed once at startup
var reportTemplate = template.Must(template.New("report").Parse(reportHTML))

// page is the data handed to the report template.
type page struct {
	ScanDate    string
	TotalSizeGB string
	TotalFiles  string
	Categories  template.JS
	TopDirs     template.JS
	Tree        template.JS
	Network     template.JS
}

// WriteHTML renders the report document to path and returns the path
// written. Rendering and write failures propagate to the caller.
func WriteHTML(rep *report.Report, path string) (string, error) {
	categories, err := embedJSON(rep.Categories)
	if err != nil {
		return "", err
	}

	topDirs, err := embedJSON(rep.TopDirectories)
	if err != nil {
		return "", err
	}

	tree, err := embedJSON(rep.Tree)
	if err != nil {
		return "", err
	}

	network, err := embedJSON(rep.Network)
	if err != nil {
		return "", err
	}

	data := page{
		ScanDate:    rep.ScanDate.Format("2006-01-02 15:04"),
		TotalSizeGB: fmt.Sprintf("%.1f", rep.TotalSize/1000),
		TotalFiles:  humanize.Comma(int64(rep.TotalFiles)),
		Categories:  categories,
		TopDirs:     topDirs,
		Tree:        tree,
		Network:     network,
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	return path, nil
}

// embedJSON marshals a view for literal inclusion inside the document's
// script block.
func embedJSON(v any) (template.JS, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding embedded data: %w", err)
	}

	return template.JS(data), nil //nolint:gosec // Marshaled from typed views, not user HTML
}
