package toolchain

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
)

// TargetPath renders the spec's target template under the destination root.
func (s Spec) TargetPath(root string) string {
	p := strings.ReplaceAll(s.TargetTemplate, "{root}", root)
	p = strings.ReplaceAll(p, "{user}", currentUser())
	return filepath.Clean(filepath.FromSlash(p))
}

// EnvValue renders the value written to the spec's environment variable:
// the value template with {target} substituted when one is defined, the
// target path otherwise.
func (s Spec) EnvValue(root string) string {
	target := s.TargetPath(root)
	if s.ValueTemplate == "" {
		return target
	}
	return strings.ReplaceAll(s.ValueTemplate, "{target}", target)
}

// LegacyPaths expands the spec's legacy cache templates against the current
// user's home directory, preserving order.
func (s Spec) LegacyPaths() []string {
	home := homeDir()
	out := make([]string, 0, len(s.LegacyTemplates))
	for _, tmpl := range s.LegacyTemplates {
		out = append(out, expandHome(tmpl, home))
	}
	return out
}

// DetectPatterns expands the spec's detection globs the same way.
func (s Spec) DetectPatterns() []string {
	home := homeDir()
	out := make([]string, 0, len(s.DetectGlobs))
	for _, tmpl := range s.DetectGlobs {
		out = append(out, expandHome(tmpl, home))
	}
	return out
}

func expandHome(tmpl, home string) string {
	p := strings.ReplaceAll(tmpl, "{home}", home)
	return filepath.FromSlash(p)
}

func homeDir() string {
	home, err := homedir.Dir()
	if err != nil {
		return "."
	}
	return home
}

func currentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		// Windows reports DOMAIN\name; only the short name belongs in a path.
		name := u.Username
		if i := strings.LastIndexByte(name, '\\'); i >= 0 {
			name = name[i+1:]
		}
		return name
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return os.Getenv("USERNAME")
}
