package toolchain

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const queryTimeout = 15 * time.Second

// EffectiveCachePath invokes the spec's query command and returns the cache
// path the tool-chain itself reports. The command's stderr and exit status
// surface as an error, never a panic or abort.
func EffectiveCachePath(ctx context.Context, spec Spec) (string, error) {
	if !spec.Queryable() {
		return "", fmt.Errorf("%s does not expose a cache-path query", spec.Name)
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, spec.QueryCommand[0], spec.QueryCommand[1:]...)
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("run %s: %w", strings.Join(spec.QueryCommand, " "), err)
	}

	path, err := parseCachePath(string(out))
	if err != nil {
		return "", fmt.Errorf("parse %s output: %w", strings.Join(spec.QueryCommand, " "), err)
	}
	return path, nil
}

// parseCachePath extracts a cache path from query output. The expected shape
// is a single line holding the path; a `key = "value"` line (npm config list
// style) is tolerated, warning and banner lines are skipped.
func parseCachePath(output string) (string, error) {
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "npm warn") {
			continue
		}
		if i := strings.Index(line, "="); i >= 0 {
			line = strings.TrimSpace(line[i+1:])
			line = strings.Trim(line, `"'`)
		}
		if line == "" || line == "null" || line == "undefined" {
			continue
		}
		return line, nil
	}
	return "", errors.New("no path in output")
}
