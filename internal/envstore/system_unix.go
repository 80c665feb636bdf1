//go:build !windows

package envstore

// System returns the machine-scope store for this platform.
func System() Store {
	return &ProfileStore{Path: "/etc/profile.d/pkgshift.sh"}
}
