// Package writer exposes sinks for manifest emission.
package writer

import (
	"fmt"
	"os"
	"path/filepath"
)

// defaultMode is used when the target does not exist yet.
const defaultMode = os.FileMode(0o644)

// FileWriter writes manifest bytes to a filesystem path atomically.
type FileWriter struct {
	Path string
}

// WriteManifest replaces the file at the configured path via a temp file in
// the same directory followed by a rename. An existing target keeps its
// permission bits; a crash before the rename leaves it untouched.
func (w *FileWriter) WriteManifest(buf []byte) error {
	mode := defaultMode
	if fi, err := os.Stat(w.Path); err == nil {
		mode = fi.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(w.Path), ".manifestkit-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmp != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if err := tmp.Chmod(mode); err != nil {
		return fmt.Errorf("set temp file mode: %w", err)
	}
	if _, err := tmp.Write(buf); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	tmp = nil

	if err := os.Rename(tmpPath, w.Path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
