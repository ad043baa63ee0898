package manifest

import (
	"os"

	"manifestkit/internal/pbtext"
	"manifestkit/pkg/types"
)

// ParseFile parses a manifest file into a Document.
//
// Example:
//
//	doc, err := manifest.ParseFile("project.pbxproj")
//	if err != nil {
//	    log.Fatal(err)
//	}
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &types.Error{Kind: types.ErrKindIO, Msg: "read manifest " + path, Err: err}
	}
	return ParseBytes(data)
}

// ParseBytes parses manifest text into a Document. The document retains every
// input byte: serializing without edits reproduces the input exactly.
func ParseBytes(data []byte) (*Document, error) {
	d, err := pbtext.Parse(data)
	if err != nil {
		return nil, err
	}
	return &Document{d: d}, nil
}

// ParseString parses manifest text from a string.
func ParseString(text string) (*Document, error) {
	return ParseBytes([]byte(text))
}
