package manifest

import (
	"os"

	"gopkg.in/yaml.v3"

	"manifestkit/pkg/types"
)

// addOpWire mirrors types.AddOp for YAML decoding. Build is a pointer so an
// omitted field defaults to true: almost every registered artifact joins a
// build phase, and the explicit opt-out is the rare case (resources).
type addOpWire struct {
	Name  string   `yaml:"name"`
	Path  string   `yaml:"path"`
	Kind  string   `yaml:"kind"`
	Group []string `yaml:"group"`
	Build *bool    `yaml:"build"`
	Phase string   `yaml:"phase"`
}

type requestWire struct {
	Remove []types.RemoveOp `yaml:"remove"`
	Add    []addOpWire      `yaml:"add"`
}

// LoadRequest reads a declarative edit request from a YAML file.
//
// Example request:
//
//	remove:
//	  - name: Old.src
//	add:
//	  - name: B.src
//	    path: Models/B.src
//	    kind: sourcecode
//	    group: [Models]
func LoadRequest(path string) (types.EditRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.EditRequest{}, &types.Error{Kind: types.ErrKindIO, Msg: "read request " + path, Err: err}
	}
	return ParseRequest(data)
}

// ParseRequest decodes a YAML edit request.
func ParseRequest(data []byte) (types.EditRequest, error) {
	var wire requestWire
	if err := yaml.Unmarshal(data, &wire); err != nil {
		return types.EditRequest{}, &types.Error{Kind: types.ErrKindParse, Msg: "decode edit request", Err: err}
	}
	req := types.EditRequest{Remove: wire.Remove}
	for _, a := range wire.Add {
		op := types.AddOp{
			Name:      a.Name,
			Path:      a.Path,
			Kind:      a.Kind,
			GroupPath: a.Group,
			Build:     a.Build == nil || *a.Build,
			Phase:     a.Phase,
		}
		req.Add = append(req.Add, op)
	}
	return req, nil
}
