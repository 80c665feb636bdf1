package config

import (
	"os"
	"path/filepath"
	"testing"

	"pkgshift/internal/toolchain"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "pkgshift.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Version != 1 || cfg.Log.Level != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pkgshift.yaml")
	body := `
version: 1
target_root: /mnt/fast
disabled: [cargo, composer]
extra_legacy_paths:
  npm:
    - /opt/old-npm-cache
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TargetRoot != "/mnt/fast" {
		t.Fatalf("target_root = %q", cfg.TargetRoot)
	}
	if len(cfg.Disabled) != 2 || cfg.Log.Level != "debug" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadRejectsUnknownToolchain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pkgshift.yaml")
	if err := os.WriteFile(path, []byte("disabled: [homebrew]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for unknown tool-chain")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pkgshift.yaml")
	if err := os.WriteFile(path, []byte(":\n\t-"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestApplyFiltersAndExtends(t *testing.T) {
	cfg := Config{
		Disabled:         []string{"cargo"},
		ExtraLegacyPaths: map[string][]string{"npm": {"/opt/old-npm-cache"}},
	}

	specs := cfg.Apply(toolchain.Registry())

	for _, spec := range specs {
		if spec.Name == "cargo" {
			t.Fatal("disabled tool-chain not filtered")
		}
		if spec.Name == "npm" {
			last := spec.LegacyTemplates[len(spec.LegacyTemplates)-1]
			if last != "/opt/old-npm-cache" {
				t.Fatalf("extra legacy path not appended: %v", spec.LegacyTemplates)
			}
		}
	}
	if len(specs) != len(toolchain.Registry())-1 {
		t.Fatalf("got %d specs", len(specs))
	}
}

func TestApplyDoesNotMutateRegistry(t *testing.T) {
	cfg := Config{ExtraLegacyPaths: map[string][]string{"npm": {"/opt/extra"}}}
	before, _ := toolchain.Lookup("npm")
	n := len(before.LegacyTemplates)

	cfg.Apply(toolchain.Registry())

	after, _ := toolchain.Lookup("npm")
	if len(after.LegacyTemplates) != n {
		t.Fatal("Apply mutated the registry table")
	}
}
