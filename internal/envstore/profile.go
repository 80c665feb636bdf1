package envstore

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ProfileStore persists variables as export lines in a single shell drop-in,
// the closest Unix analogue to machine-scope environment variables. New
// shells pick the values up after login; the verifier treats a matching file
// entry as configured.
type ProfileStore struct {
	// Path of the drop-in script, /etc/profile.d/pkgshift.sh by default.
	Path string
}

const profileHeader = "# Managed by pkgshift. Manual edits to managed variables are overwritten."

// Get reads the variable from the drop-in file. A missing file means no
// variable is set.
func (p *ProfileStore) Get(name string) (string, bool, error) {
	entries, err := p.read()
	if err != nil {
		return "", false, err
	}
	for _, e := range entries {
		if e.name == name {
			return e.value, true, nil
		}
	}
	return "", false, nil
}

// Set writes or replaces the variable's export line, creating the drop-in
// (and its directory) on first use.
func (p *ProfileStore) Set(name, value string) error {
	entries, err := p.read()
	if err != nil {
		return err
	}

	replaced := false
	for i := range entries {
		if entries[i].name == name {
			entries[i].value = value
			replaced = true
		}
	}
	if !replaced {
		entries = append(entries, profileEntry{name: name, value: value})
	}

	return p.write(entries)
}

type profileEntry struct {
	name  string
	value string
}

func (p *ProfileStore) read() ([]profileEntry, error) {
	f, err := os.Open(p.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", p.Path, err)
	}
	defer f.Close()

	var entries []profileEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "export ") {
			continue
		}
		rest := strings.TrimPrefix(line, "export ")
		name, value, ok := strings.Cut(rest, "=")
		if !ok {
			continue
		}
		value = strings.Trim(value, `"`)
		entries = append(entries, profileEntry{name: strings.TrimSpace(name), value: value})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", p.Path, err)
	}
	return entries, nil
}

func (p *ProfileStore) write(entries []profileEntry) error {
	if err := os.MkdirAll(filepath.Dir(p.Path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(p.Path), err)
	}

	var b strings.Builder
	b.WriteString(profileHeader + "\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "export %s=%q\n", e.name, e.value)
	}

	if err := os.WriteFile(p.Path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", p.Path, err)
	}
	return nil
}
