// Package cli wires the scan, report and render stages behind the sysmap
// command-line surface.
package cli

import (
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/leolech14/map/internal/config"
)

// options holds the flag values for a single invocation.
type options struct {
	output     string
	depth      int
	minSize    string
	top        int
	configPath string
	gitignore  bool
	summary    bool
	open       bool
	verbose    bool
}

// NewRootCommand creates the sysmap root command.
func NewRootCommand(version string) *cobra.Command {
	var opt options

	cmd := &cobra.Command{
		Use:   "sysmap [flags] path",
		Short: "Generate an interactive file system visualization",
		Long: heredoc.Doc(`
			sysmap scans a directory tree, aggregates size and file-count
			statistics per subtree, classifies directories into semantic
			categories, and writes a static HTML report with charts, a
			zoomable treemap and a force-directed directory graph.

			The report is self-contained: the aggregated data is embedded
			in the document and rendered client-side when it is opened.
		`),
		Example: heredoc.Doc(`
			# Scan the home directory with defaults
			sysmap ~

			# Deeper scan with a custom output location
			sysmap --depth 5 --output /tmp/map.html ~/work

			# Open the report when done
			sysmap --open .
		`),
		Args:          cobra.ExactArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd, opt)
			if err != nil {
				return err
			}

			return run(args[0], cfg, opt)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opt.output, "output", "o", "",
		"Output HTML file path (default: <path>/system_map.html)")
	flags.IntVarP(&opt.depth, "depth", "d", 3, "Maximum directory depth to scan")
	flags.StringVar(&opt.minSize, "min-size", "0.1MB", "Minimum directory size to report (e.g. 500KB)")
	flags.IntVarP(&opt.top, "top", "t", 10, "Number of top directories to rank")
	flags.StringVarP(&opt.configPath, "config", "c", "",
		"YAML config file overriding categories, colors and exclusions")
	flags.BoolVar(&opt.gitignore, "gitignore", false, "Respect the .gitignore at the scan root")
	flags.BoolVarP(&opt.summary, "summary", "s", false, "Print a summary table after generation")
	flags.BoolVar(&opt.open, "open", false, "Open the generated report in the default browser")
	flags.BoolVarP(&opt.verbose, "verbose", "v", false, "Enable verbose output")
	flags.SortFlags = false

	return cmd
}

// buildConfig assembles the run configuration from defaults, an optional
// config file, and explicit flag overrides. Flags only override file
// values when set on the command line.
func buildConfig(cmd *cobra.Command, opt options) (config.Config, error) {
	cfg := config.Default()

	if opt.configPath != "" {
		loaded, err := config.Load(opt.configPath)
		if err != nil {
			return config.Config{}, err
		}

		cfg = loaded
	}

	if cmd.Flags().Changed("min-size") {
		size, err := humanize.ParseBytes(opt.minSize)
		if err != nil {
			return config.Config{}, fmt.Errorf("invalid min-size: %w", err)
		}

		cfg.MinSize = int64(size) //nolint:gosec // Size conversion from humanize is safe
	}

	if cmd.Flags().Changed("top") {
		cfg.TopN = opt.top
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	if opt.depth < 0 {
		return config.Config{}, errors.New("depth cannot be negative")
	}

	return cfg, nil
}
