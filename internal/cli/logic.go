package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/leolech14/map/internal/config"
	"github.com/leolech14/map/internal/render"
	"github.com/leolech14/map/internal/report"
	"github.com/leolech14/map/internal/scan"
)

// run executes the scan, aggregate and render stages in sequence.
func run(path string, cfg config.Config, opt options) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}

	root, err := expandHome(path)
	if err != nil {
		return err
	}

	step := func(format string, args ...any) {
		if opt.verbose {
			color.New(color.FgCyan).Fprintf(os.Stderr, format+"\n", args...)
		}
	}

	step("step 1: scanning %s", root)

	tree, err := scan.Run(cfg, scan.Options{
		Path:      root,
		Depth:     opt.depth,
		Gitignore: opt.gitignore,
		Verbose:   opt.verbose,
	})
	if err != nil {
		return err
	}

	step("step 2: aggregating scan data")

	rep := report.Build(tree, cfg.TopN, time.Now())

	output := opt.output
	if output == "" {
		output = filepath.Join(tree.Path, "system_map.html")
	}

	step("step 3: rendering report to %s", output)

	written, err := render.WriteHTML(rep, output)
	if err != nil {
		return err
	}

	color.New(color.FgGreen).Fprintln(os.Stdout, "System map generated successfully!")
	fmt.Fprintf(os.Stdout, "Output: %s\n", written)

	if opt.summary {
		if err := PrintSummary(rep, os.Stdout); err != nil {
			return err
		}
	}

	if opt.open {
		if err := openBrowser(written); err != nil {
			fmt.Fprintf(os.Stderr, "warning: opening report: %v\n", err)
		}
	}

	return nil
}

// expandHome resolves a leading "~" to the user's home directory.
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}

	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// openBrowser launches the platform viewer for the written report.
func openBrowser(path string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", path).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", path).Start()
	default:
		return exec.Command("xdg-open", path).Start()
	}
}
