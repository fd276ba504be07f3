package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leolech14/map/internal/config"
	"github.com/leolech14/map/internal/report"
	"github.com/leolech14/map/internal/scan"
)

func TestPrintSummary(t *testing.T) {
	cfg := config.Default()

	tree := &scan.Node{
		Name:      "home",
		Path:      "/home",
		Size:      300 << 20,
		FileCount: 1500,
		Category:  config.Other,
		Color:     cfg.Color(config.Other),
		Children: []*scan.Node{
			{
				Name:      "01_Projects",
				Path:      "/home/01_Projects",
				Size:      200 << 20,
				FileCount: 1000,
				Category:  config.Projects,
				Color:     cfg.Color(config.Projects),
				Children:  []*scan.Node{},
			},
		},
	}

	rep := report.Build(tree, 10, time.Date(2025, 7, 24, 15, 30, 0, 0, time.UTC))

	var buf bytes.Buffer
	require.NoError(t, PrintSummary(rep, &buf))

	out := buf.String()
	assert.Contains(t, out, "Categories:")
	assert.Contains(t, out, "projects:")
	assert.Contains(t, out, "Top directories:")
	assert.Contains(t, out, "'01_Projects'")
	assert.Contains(t, out, "Total files:")
	assert.Contains(t, out, "1,500")
	assert.Contains(t, out, "300MB")
	assert.Contains(t, out, "2025-07-24 15:30")
}
