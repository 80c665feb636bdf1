package envstore

// Store reads and writes persistent machine-scope environment variables.
// Writes require elevated privileges; callers surface a failed write rather
// than pre-checking for them.
type Store interface {
	// Get returns the persisted value and whether the variable is set.
	Get(name string) (string, bool, error)
	// Set persists the value at machine scope.
	Set(name, value string) error
}

// SetPersistent writes name=value through the store unless the persisted
// value already matches (the second identical call is a no-op). In dry-run
// mode the intended write is skipped. The returned flag reports whether a
// write happened or would have.
func SetPersistent(st Store, name, value string, dryRun bool) (bool, error) {
	current, ok, err := st.Get(name)
	if err == nil && ok && current == value {
		return false, nil
	}
	if dryRun {
		return true, nil
	}
	if err := st.Set(name, value); err != nil {
		return false, err
	}
	return true, nil
}
