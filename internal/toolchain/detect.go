package toolchain

import (
	"os/exec"

	"github.com/bmatcuk/doublestar/v4"
)

// IsInstalled reports whether the tool-chain appears present on this host.
// It short-circuits on the first detection command that resolves on PATH or
// the first detection glob that matches an existing filesystem entry. Probe
// errors (permission denied, malformed pattern) count as "not found".
func IsInstalled(spec Spec) bool {
	for _, name := range spec.DetectCommands {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	for _, pattern := range spec.DetectPatterns() {
		matches, err := doublestar.FilepathGlob(pattern)
		if err == nil && len(matches) > 0 {
			return true
		}
	}
	return false
}

// DetectInstalled filters the provided specs down to those present on the
// host, preserving registry order.
func DetectInstalled(specs []Spec) []Spec {
	var installed []Spec
	for _, spec := range specs {
		if IsInstalled(spec) {
			installed = append(installed, spec)
		}
	}
	return installed
}
