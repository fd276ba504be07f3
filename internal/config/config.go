package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

// Category is one of the fixed semantic labels assigned to a directory
// based on its name.
type Category string

// The closed set of categories.
const (
	Projects    Category = "projects"
	Knowledge   Category = "knowledge"
	Tools       Category = "tools"
	Assets      Category = "assets"
	Development Category = "development"
	ConfigDirs  Category = "config"
	Temp        Category = "temp"
	Other       Category = "other"
)

// Categories lists every valid category.
//
//nolint:gochecknoglobals // Config constant
var Categories = []Category{
	Projects, Knowledge, Tools, Assets, Development, ConfigDirs, Temp, Other,
}

// Rule pairs a category with the lowercase name substrings that select it.
// Rules are tested in order; the first matching rule wins.
type Rule struct {
	// Category assigned when a keyword matches.
	Category Category `yaml:"category"`
	// Keywords are substrings matched against the lowercase directory name.
	Keywords []string `yaml:"keywords"`
}

// Config is the immutable run configuration. It is built once (defaults,
// optionally overlaid from a YAML file) and passed by value into each
// pipeline component.
type Config struct {
	// ExcludeDirs are directory names skipped entirely, matched exactly.
	ExcludeDirs []string `yaml:"exclude_dirs"`
	// ExcludeFiles are glob patterns matched against file base names.
	ExcludeFiles []string `yaml:"exclude_files"`
	// MinSize is the retention threshold in bytes: subdirectories whose
	// cumulative size falls below it are dropped from the result.
	MinSize int64 `yaml:"min_size"`
	// TopN is the number of directories kept in the ranking view.
	TopN int `yaml:"top"`
	// Rules is the ordered category keyword table.
	Rules []Rule `yaml:"categories"`
	// Colors maps each category to its display color.
	Colors map[Category]string `yaml:"colors"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		ExcludeDirs: []string{
			".git", ".cache", "node_modules", "__pycache__", ".pytest_cache",
			"venv", "env", ".env", ".venv", "Library", ".Trash",
			"Applications", "Pictures", "Movies", "Music",
		},
		ExcludeFiles: []string{"*.pyc", "*.pyo", ".DS_Store", "*.swp", "*.swo"},
		MinSize:      100 * humanize.KByte,
		TopN:         10,
		Rules: []Rule{
			{Category: Projects, Keywords: []string{"project", "app", "site", "client", "server"}},
			{Category: Knowledge, Keywords: []string{"knowledge", "docs", "wiki", "notes", "learning"}},
			{Category: Tools, Keywords: []string{"tools", "utils", "scripts", "automation"}},
			{Category: Assets, Keywords: []string{"assets", "images", "media", "resources"}},
			{Category: Development, Keywords: []string{"dev", "development", "code", "src"}},
			// The bare "." keyword classifies any dotted name as config
			// before the hidden-name fallback is consulted.
			{Category: ConfigDirs, Keywords: []string{".", "config", "settings", "preferences"}},
			{Category: Temp, Keywords: []string{"temp", "tmp", "cache", "inbox", "downloads"}},
		},
		Colors: map[Category]string{
			Projects:    "#F687B3",
			Knowledge:   "#63B3ED",
			Tools:       "#68D391",
			Assets:      "#F6E05E",
			Development: "#B794F4",
			ConfigDirs:  "#F6AD55",
			Temp:        "#FED7AA",
			Other:       "#718096",
		},
	}
}

// Load reads a YAML file and overlays it onto the default configuration.
// Fields absent from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file %q: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config file %q: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the configuration for internal consistency.
func (c Config) Validate() error {
	known := make(map[Category]struct{}, len(Categories))
	for _, cat := range Categories {
		known[cat] = struct{}{}
	}

	for _, rule := range c.Rules {
		if _, ok := known[rule.Category]; !ok {
			return fmt.Errorf("unknown category %q in rule table", rule.Category)
		}
	}

	for cat := range c.Colors {
		if _, ok := known[cat]; !ok {
			return fmt.Errorf("unknown category %q in color table", cat)
		}
	}

	for _, pattern := range c.ExcludeFiles {
		if _, err := filepath.Match(pattern, "probe"); err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
	}

	if c.MinSize < 0 {
		return fmt.Errorf("min_size cannot be negative: %d", c.MinSize)
	}

	if c.TopN <= 0 {
		return fmt.Errorf("top must be positive: %d", c.TopN)
	}

	return nil
}

// ExcludesDir reports whether a directory with the given name is skipped.
func (c Config) ExcludesDir(name string) bool {
	for _, excluded := range c.ExcludeDirs {
		if name == excluded {
			return true
		}
	}

	return false
}

// Categorize assigns a category to a directory name. Keyword rules are
// tested in table order with first match winning, followed by the
// hidden-name fallback, the numeric-prefix heuristics, and finally Other.
func (c Config) Categorize(name string) Category {
	lower := strings.ToLower(name)

	for _, rule := range c.Rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(lower, keyword) {
				return rule.Category
			}
		}
	}

	if strings.HasPrefix(name, ".") {
		return ConfigDirs
	}

	return categorizeNumeric(name)
}

// categorizeNumeric maps the numbered-directory convention (01_Projects,
// 02_Knowledge, ...) onto categories.
func categorizeNumeric(name string) Category {
	switch {
	case !hasNumericPrefix(name):
		return Other
	case strings.Contains(name, "01"):
		return Projects
	case strings.Contains(name, "02"):
		return Knowledge
	case strings.Contains(name, "03"), strings.Contains(name, "04"):
		return Tools
	case strings.Contains(name, "05"):
		return Assets
	case strings.Contains(name, "99"):
		return Temp
	default:
		return Other
	}
}

func hasNumericPrefix(name string) bool {
	for _, prefix := range []string{"01", "02", "03", "04", "05", "99"} {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}

	return false
}

// Color returns the display color for a category, falling back to the
// Other color when no entry exists.
func (c Config) Color(cat Category) string {
	if color, ok := c.Colors[cat]; ok {
		return color
	}

	return c.Colors[Other]
}
