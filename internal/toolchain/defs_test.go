package toolchain

import (
	"strings"
	"testing"
)

func TestRegistryShape(t *testing.T) {
	regs := Registry()
	if len(regs) == 0 {
		t.Fatal("registry is empty")
	}

	queryable := 0
	seen := map[string]bool{}
	for _, spec := range regs {
		if spec.Name == "" {
			t.Fatal("spec with empty name")
		}
		if seen[spec.Name] {
			t.Fatalf("duplicate spec %q", spec.Name)
		}
		seen[spec.Name] = true

		if spec.EnvVar == "" {
			t.Errorf("%s: no environment variable", spec.Name)
		}
		if !strings.Contains(spec.TargetTemplate, "{root}") {
			t.Errorf("%s: target template %q not parameterized by root", spec.Name, spec.TargetTemplate)
		}
		if len(spec.LegacyTemplates) == 0 {
			t.Errorf("%s: no legacy cache templates", spec.Name)
		}
		if spec.ValueTemplate != "" && !strings.Contains(spec.ValueTemplate, "{target}") {
			t.Errorf("%s: value template %q does not embed the target", spec.Name, spec.ValueTemplate)
		}
		if spec.Queryable() {
			queryable++
		}
	}

	if queryable != 1 {
		t.Fatalf("got %d queryable specs, want exactly 1", queryable)
	}
}

func TestRegistryReturnsCopy(t *testing.T) {
	a := Registry()
	a[0].Name = "mutated"
	if Registry()[0].Name == "mutated" {
		t.Fatal("Registry must not expose the internal table")
	}
}

func TestLookup(t *testing.T) {
	if _, ok := Lookup("npm"); !ok {
		t.Fatal("npm missing")
	}
	if _, ok := Lookup("brew"); ok {
		t.Fatal("unexpected spec for unknown name")
	}
}
