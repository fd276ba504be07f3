package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.EqualValues(t, 100_000, cfg.MinSize)
	assert.Equal(t, 10, cfg.TopN)
	assert.True(t, cfg.ExcludesDir(".git"))
	assert.True(t, cfg.ExcludesDir("node_modules"))
	assert.False(t, cfg.ExcludesDir("src"))
	assert.Equal(t, "#718096", cfg.Color(Other))

	require.NoError(t, cfg.Validate())
}

func TestCategorize(t *testing.T) {
	cfg := Default()

	tests := []struct {
		name string
		want Category
	}{
		// Keyword rules, first match wins in table order
		{"My Projects", Projects},
		{"webapp", Projects},
		{"docs", Knowledge},
		{"scripts", Tools},
		{"images", Assets},
		{"src", Development},
		{"settings", ConfigDirs},
		{"Downloads", Temp},
		// "project" outranks "dev" because its rule comes first
		{"dev_projects", Projects},
		// Dotted names classify as config via the "." keyword
		{".config", ConfigDirs},
		{"archive.old", ConfigDirs},
		// Numeric prefixes
		{"01_Stuff", Projects},
		{"02_Stuff", Knowledge},
		{"03_Stuff", Tools},
		{"04_Stuff", Tools},
		{"05_Stuff", Assets},
		{"99_Stuff", Temp},
		// Fallback
		{"random", Other},
		{"2020", Other},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, cfg.Categorize(tc.name))
		})
	}
}

func TestCategorizeIsDeterministic(t *testing.T) {
	cfg := Default()

	for i := 0; i < 10; i++ {
		assert.Equal(t, Temp, cfg.Categorize("tmp_project_cache_x"))
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sysmap.yaml")

	content := `min_size: 500000
top: 5
categories:
  - category: projects
    keywords: [work]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.EqualValues(t, 500_000, cfg.MinSize)
	assert.Equal(t, 5, cfg.TopN)
	assert.Equal(t, Projects, cfg.Categorize("work"))
	// The custom rule table replaces the default one entirely
	assert.Equal(t, Other, cfg.Categorize("docs"))
	// Untouched fields keep their defaults
	assert.True(t, cfg.ExcludesDir(".git"))
	assert.Equal(t, "#F687B3", cfg.Color(Projects))
}

func TestLoadRejectsUnknownCategory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sysmap.yaml")

	content := `categories:
  - category: documents
    keywords: [docs]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "unknown category")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.MinSize = -1
	assert.ErrorContains(t, cfg.Validate(), "min_size")

	cfg = Default()
	cfg.TopN = 0
	assert.ErrorContains(t, cfg.Validate(), "top")

	cfg = Default()
	cfg.ExcludeFiles = []string{"[broken"}
	assert.ErrorContains(t, cfg.Validate(), "exclude pattern")

	cfg = Default()
	cfg.Colors = map[Category]string{"documents": "#FFFFFF"}
	assert.ErrorContains(t, cfg.Validate(), "color table")
}

func TestColorFallback(t *testing.T) {
	cfg := Default()
	delete(cfg.Colors, Temp)

	assert.Equal(t, cfg.Colors[Other], cfg.Color(Temp))
}
