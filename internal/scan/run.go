package scan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/leolech14/map/internal/config"
)

// ErrNotDirectory is returned when the scan root exists but is not a
// directory.
var ErrNotDirectory = errors.New("not a directory")

// ErrExcludedRoot is returned when the scan root's own name is in the
// exclusion set.
var ErrExcludedRoot = errors.New("root directory is excluded by configuration")

// logger provides conditional informational output. Warnings always print.
type logger struct {
	verbose bool
}

func (l logger) infof(format string, args ...any) {
	if l.verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

func (l logger) warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
}

// walker carries the per-run state of a traversal.
type walker struct {
	cfg    config.Config
	log    logger
	root   string
	ignore *ignore.GitIgnore
}

// Run walks the directory tree rooted at opt.Path and returns the tree of
// retained directory statistics.
//
// The traversal is strictly sequential: retention filtering needs a child's
// cumulative size before the parent can decide whether to keep it, so each
// subtree is fully aggregated bottom-up. Per-file stat failures are skipped
// silently; unreadable directories are logged and treated as empty from
// that point.
func Run(cfg config.Config, opt Options) (*Node, error) {
	log := logger{verbose: opt.Verbose}

	if opt.Path == "" {
		opt.Path = "."
	}

	root, err := filepath.Abs(filepath.Clean(opt.Path))
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("accessing path %q: %w", opt.Path, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("path %q: %w", opt.Path, ErrNotDirectory)
	}

	if cfg.ExcludesDir(filepath.Base(root)) {
		return nil, fmt.Errorf("path %q: %w", opt.Path, ErrExcludedRoot)
	}

	w := &walker{cfg: cfg, log: log, root: root}

	if opt.Gitignore {
		w.ignore = loadGitignore(root)
	}

	log.infof("scanning %s (depth %d)", root, opt.Depth)

	return w.walk(root, 0, opt.Depth), nil
}

// loadGitignore compiles the .gitignore at the scan root if one exists.
func loadGitignore(root string) *ignore.GitIgnore {
	path := filepath.Join(root, ".gitignore")

	if _, err := os.Stat(path); err != nil {
		return nil
	}

	matcher, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil
	}

	return matcher
}

// walk aggregates a single directory. depth is the node's own depth below
// the root; recursion into subdirectories stops once depth reaches maxDepth.
func (w *walker) walk(path string, depth, maxDepth int) *Node {
	name := filepath.Base(path)

	node := &Node{
		Name:     name,
		Path:     path,
		Children: []*Node{},
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		// Treat the directory as empty from here; whatever ReadDir
		// returned before failing is still processed below.
		w.log.warnf("cannot read directory %s: %v", path, err)
	}

	for _, entry := range entries {
		child := filepath.Join(path, entry.Name())

		if entry.IsDir() {
			if depth >= maxDepth {
				continue
			}

			if w.cfg.ExcludesDir(entry.Name()) {
				continue
			}

			if w.ignored(child) {
				continue
			}

			sub := w.walk(child, depth+1, maxDepth)
			if sub.Size >= w.cfg.MinSize {
				node.Children = append(node.Children, sub)
				node.Size += sub.Size
				node.FileCount += sub.FileCount
			}

			continue
		}

		if !entry.Type().IsRegular() {
			continue
		}

		if w.excludedFile(entry.Name()) || w.ignored(child) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			// Best effort: a file that vanished or cannot be
			// statted is simply left out of the totals.
			continue
		}

		node.Size += info.Size()
		node.FileCount++
	}

	node.Category = w.cfg.Categorize(name)
	node.Color = w.cfg.Color(node.Category)

	return node
}

// excludedFile reports whether a file base name matches any exclusion glob.
func (w *walker) excludedFile(name string) bool {
	for _, pattern := range w.cfg.ExcludeFiles {
		if matched, err := filepath.Match(pattern, name); err == nil && matched {
			return true
		}
	}

	return false
}

// ignored reports whether the path matches the root .gitignore, if any.
func (w *walker) ignored(path string) bool {
	if w.ignore == nil {
		return false
	}

	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}

	return w.ignore.MatchesPath(rel)
}
