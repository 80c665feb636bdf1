package envstore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestProfileStoreMissingFile(t *testing.T) {
	st := &ProfileStore{Path: filepath.Join(t.TempDir(), "pkgshift.sh")}
	_, ok, err := st.Get("NPM_CONFIG_CACHE")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("missing file must mean no variable set")
	}
}

func TestProfileStoreRoundTrip(t *testing.T) {
	st := &ProfileStore{Path: filepath.Join(t.TempDir(), "pkgshift.sh")}

	if err := st.Set("NPM_CONFIG_CACHE", "/data/npm-cache"); err != nil {
		t.Fatal(err)
	}
	if err := st.Set("MAVEN_OPTS", "-Dmaven.repo.local=/data/maven-repo"); err != nil {
		t.Fatal(err)
	}

	v, ok, err := st.Get("MAVEN_OPTS")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if v != "-Dmaven.repo.local=/data/maven-repo" {
		t.Fatalf("got %q", v)
	}
}

func TestProfileStoreReplacesValue(t *testing.T) {
	st := &ProfileStore{Path: filepath.Join(t.TempDir(), "pkgshift.sh")}

	if err := st.Set("PIP_CACHE_DIR", "/old"); err != nil {
		t.Fatal(err)
	}
	if err := st.Set("PIP_CACHE_DIR", "/new"); err != nil {
		t.Fatal(err)
	}

	v, _, _ := st.Get("PIP_CACHE_DIR")
	if v != "/new" {
		t.Fatalf("got %q, want /new", v)
	}

	data, err := os.ReadFile(st.Path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(string(data), "PIP_CACHE_DIR") != 1 {
		t.Fatalf("variable duplicated in drop-in:\n%s", data)
	}
}

func TestProfileStoreFileShape(t *testing.T) {
	st := &ProfileStore{Path: filepath.Join(t.TempDir(), "etc", "profile.d", "pkgshift.sh")}

	if err := st.Set("GOMODCACHE", "/data/go-mod-cache"); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(st.Path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if !strings.HasPrefix(lines[0], "#") {
		t.Fatalf("expected managed-file header, got %q", lines[0])
	}
	if lines[1] != `export GOMODCACHE="/data/go-mod-cache"` {
		t.Fatalf("unexpected export line %q", lines[1])
	}
}
