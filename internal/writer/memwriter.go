package writer

// MemWriter captures manifest bytes in memory, for tests and dry runs.
type MemWriter struct {
	Buf []byte
}

// WriteManifest stores a copy of the provided buffer.
func (w *MemWriter) WriteManifest(buf []byte) error {
	w.Buf = append(w.Buf[:0], buf...)
	return nil
}
