// Package pbtext parses and serializes the manifest text dialect.
//
// The document model is line-oriented: every physical line of the input is
// kept verbatim, entities point at the lines that define them, deletions mark
// lines dead, and insertions splice new lines at fixed anchors (section end
// markers, list closers). Serializing an unedited document therefore
// reproduces the input byte for byte, and edits can only land at well-defined
// structural positions, never at text found by pattern search.
package pbtext
