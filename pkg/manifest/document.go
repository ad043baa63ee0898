package manifest

import (
	"sort"

	"go.uber.org/zap"

	"manifestkit/internal/editor"
	"manifestkit/internal/pbtext"
	"manifestkit/internal/validate"
	"manifestkit/pkg/types"
)

// Document is a parsed manifest: the entity graph plus the verbatim text it
// came from. A Document is exclusively owned for the duration of one
// invocation; it is not safe for concurrent use.
type Document struct {
	d *pbtext.Document
}

// Serialize renders the document back to text. Unedited regions are
// reproduced byte for byte; edits appear only at structural insertion points.
func (m *Document) Serialize() []byte { return m.d.Serialize() }

// Validate checks referential integrity (unique definitions, wrapper and
// phase linkage, group placement, tree shape) over the full entity graph.
func (m *Document) Validate() error {
	if err := validate.AllInvariants(m.d); err != nil {
		if ve, ok := err.(*validate.ValidationError); ok {
			return &types.Error{Kind: ve.Kind(), Msg: ve.Error()}
		}
		return err
	}
	return nil
}

// Apply runs a declarative edit batch against the in-memory document.
// The file on disk is untouched; use the package-level Apply for load,
// edit, validate, and atomic write in one call.
func (m *Document) Apply(req types.EditRequest, opts types.EditOptions, logger *zap.Logger) (types.Summary, error) {
	ed, err := editor.New(m.d, opts, logger)
	if err != nil {
		return types.Summary{}, err
	}
	return ed.Apply(req)
}

// Stats summarizes table sizes, for inspection output.
type Stats struct {
	FileReferences int `json:"fileReferences"`
	Wrappers       int `json:"wrappers"`
	Groups         int `json:"groups"`
	Phases         int `json:"phases"`
}

// Stats returns table sizes for the parsed document.
func (m *Document) Stats() Stats {
	return Stats{
		FileReferences: len(m.d.FileRefs()),
		Wrappers:       len(m.d.Wrappers()),
		Groups:         len(m.d.Groups()),
		Phases:         len(m.d.Phases()),
	}
}

// FileReferences returns all file references sorted by display name.
func (m *Document) FileReferences() []types.FileReference {
	out := make([]types.FileReference, 0, len(m.d.FileRefs()))
	for _, fr := range m.d.FileRefs() {
		out = append(out, fr.FileReference)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Phases returns the build phases in document order.
func (m *Document) Phases() []types.BuildPhase {
	out := make([]types.BuildPhase, 0, len(m.d.Phases()))
	for _, p := range m.d.Phases() {
		out = append(out, types.BuildPhase{ID: p.ID, Name: p.Name, Entries: p.Entries()})
	}
	return out
}

// GroupNode is one node of the rendered group tree.
type GroupNode struct {
	Name   string       `json:"name"`
	Files  []string     `json:"files,omitempty"`
	Groups []*GroupNode `json:"groups,omitempty"`
}

// GroupTree renders the group hierarchy with file display names at each node,
// in document child order.
func (m *Document) GroupTree() *GroupNode {
	return m.groupNode(m.d.Root())
}

func (m *Document) groupNode(id types.ObjectID) *GroupNode {
	g, ok := m.d.GroupByID(id)
	if !ok {
		return &GroupNode{}
	}
	node := &GroupNode{Name: g.Name}
	for _, c := range g.Children() {
		if fr, isRef := m.d.FileRefByID(c); isRef {
			node.Files = append(node.Files, fr.Name)
			continue
		}
		if _, isGroup := m.d.GroupByID(c); isGroup {
			node.Groups = append(node.Groups, m.groupNode(c))
		}
	}
	return node
}
