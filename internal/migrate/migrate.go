package migrate

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Outcome describes a single Migrate call.
type Outcome struct {
	// Copied is true when the cache was copied, or would have been in dry-run.
	Copied bool `json:"copied"`
	// SizeMismatch is set when the destination reproduced less than 99% of
	// the source bytes. The copy still counts; the mismatch is surfaced as a
	// warning, never rolled back.
	SizeMismatch bool  `json:"size_mismatch,omitempty"`
	SourceBytes  int64 `json:"source_bytes"`
	DestBytes    int64 `json:"dest_bytes"`
}

// Record identifies a legacy cache directory copied during this run. Records
// feed the end-of-run deletion offer and are never persisted.
type Record struct {
	Source string `json:"source"`
	Bytes  int64  `json:"bytes"`
}

// Migrate copies the legacy cache at source into dest. A missing or empty
// source is nothing to do, not an error. In dry-run mode the intended copy is
// reported without touching the filesystem. Filesystem errors during the copy
// are returned for the caller to report; the caller continues with the next
// tool-chain either way.
func Migrate(source, dest string, dryRun bool) (Outcome, error) {
	info, err := os.Stat(source)
	if err != nil || !info.IsDir() {
		return Outcome{}, nil
	}

	srcBytes, err := TreeSize(source)
	if err != nil {
		return Outcome{}, fmt.Errorf("size %s: %w", source, err)
	}
	if srcBytes == 0 {
		return Outcome{}, nil
	}

	if dryRun {
		return Outcome{Copied: true, SourceBytes: srcBytes}, nil
	}

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return Outcome{SourceBytes: srcBytes}, fmt.Errorf("create %s: %w", dest, err)
	}
	if err := copyTree(source, dest); err != nil {
		return Outcome{SourceBytes: srcBytes}, fmt.Errorf("copy %s -> %s: %w", source, dest, err)
	}

	destBytes, err := TreeSize(dest)
	if err != nil {
		return Outcome{Copied: true, SourceBytes: srcBytes}, fmt.Errorf("size %s: %w", dest, err)
	}

	return Outcome{
		Copied:       true,
		SizeMismatch: !sizeVerified(srcBytes, destBytes),
		SourceBytes:  srcBytes,
		DestBytes:    destBytes,
	}, nil
}

// sizeVerified applies the integrity check: the destination must hold at
// least 99% of the source bytes.
func sizeVerified(srcBytes, destBytes int64) bool {
	return destBytes*100 >= srcBytes*99
}

// TreeSize sums the sizes of all regular files under root.
func TreeSize(root string) (int64, error) {
	var total int64
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	return total, err
}

// copyTree recursively copies every file and subdirectory from src into dst,
// overwriting conflicting files.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if !d.Type().IsRegular() {
			// Sockets, devices, and symlinks have no place in a package cache.
			return nil
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst) // clean up partial
		return err
	}
	return out.Close()
}
