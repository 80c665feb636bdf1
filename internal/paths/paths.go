package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Layout captures canonical locations under the destination root chosen for
// a run. Every relocated cache lives under PackagesDir.
type Layout struct {
	Root        string
	PackagesDir string
	LogsDir     string
}

// Resolve validates the operator-chosen destination root and derives the run
// layout. The root is the one input the run cannot proceed without.
func Resolve(root string) (Layout, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return Layout{}, fmt.Errorf("destination root is required")
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return Layout{}, fmt.Errorf("resolve destination root: %w", err)
	}

	return Layout{
		Root:        abs,
		PackagesDir: filepath.Join(abs, "packages"),
		LogsDir:     filepath.Join(abs, "pkgshift-logs"),
	}, nil
}

// EnsureLogsDir creates the logs directory for this run.
func (l Layout) EnsureLogsDir() error {
	if err := os.MkdirAll(l.LogsDir, 0o755); err != nil {
		return fmt.Errorf("create logs dir: %w", err)
	}
	return nil
}

// FileExists reports whether a path exists and is a regular file.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// DirExists reports whether a path exists and is a directory.
func DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

// FirstExistingDir returns the first path in candidates that exists as a
// directory, ok=false when none do. Stat errors count as "does not exist".
func FirstExistingDir(candidates []string) (string, bool) {
	for _, c := range candidates {
		if ok, err := DirExists(c); err == nil && ok {
			return c, true
		}
	}
	return "", false
}
