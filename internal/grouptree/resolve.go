// Package grouptree resolves group paths against a parsed document.
//
// Resolution is by full path from the root, never by bare name: two groups
// sharing a leaf name in different branches are distinct targets, and an
// ambiguous bare-name match is not offered at all.
package grouptree

import (
	"fmt"
	"strings"

	"manifestkit/internal/pbtext"
	"manifestkit/pkg/types"
)

// Resolve walks path segment by segment from the root group and returns the
// group it lands on. An empty path resolves to the root. A segment that does
// not match any child group yields ErrUnknownGroup.
func Resolve(d *pbtext.Document, path []string) (*pbtext.GroupRec, error) {
	g, ok := d.GroupByID(d.Root())
	if !ok {
		return nil, &types.Error{Kind: types.ErrKindState, Msg: "document has no root group"}
	}
	for i, seg := range path {
		next, ok := child(d, g, seg)
		if !ok {
			return nil, unknown(path[:i+1])
		}
		g = next
	}
	return g, nil
}

// ResolveOrCreate resolves path, creating missing segments as empty child
// groups when create is true. Created groups are appended at the end of the
// parent's child list and of the group section.
func ResolveOrCreate(d *pbtext.Document, path []string, create bool, alloc Allocator) (*pbtext.GroupRec, error) {
	g, ok := d.GroupByID(d.Root())
	if !ok {
		return nil, &types.Error{Kind: types.ErrKindState, Msg: "document has no root group"}
	}
	for i, seg := range path {
		next, found := child(d, g, seg)
		if !found {
			if !create {
				return nil, unknown(path[:i+1])
			}
			if !g.HasChildList() {
				return nil, noChildList(g)
			}
			id, err := alloc.Allocate()
			if err != nil {
				return nil, err
			}
			next = d.AppendGroup(g, id, seg)
		}
		g = next
	}
	return g, nil
}

// Allocator is the identifier source used when auto-creating groups.
type Allocator interface {
	Allocate() (types.ObjectID, error)
}

// Missing returns the suffix of path that does not resolve, or nil when the
// whole path exists. Callers use it to decide how many identifiers an
// auto-creating edit will need before mutating anything.
func Missing(d *pbtext.Document, path []string) []string {
	g, ok := d.GroupByID(d.Root())
	if !ok {
		return path
	}
	for i, seg := range path {
		next, found := child(d, g, seg)
		if !found {
			return path[i:]
		}
		g = next
	}
	return nil
}

// PathOf returns the full path of a group, for diagnostics.
func PathOf(d *pbtext.Document, id types.ObjectID) []string {
	parent := make(map[types.ObjectID]types.ObjectID)
	for _, gid := range d.GroupOrder() {
		g, _ := d.GroupByID(gid)
		for _, c := range g.Children() {
			if _, isGroup := d.GroupByID(c); isGroup {
				parent[c] = gid
			}
		}
	}
	var segs []string
	for id != d.Root() {
		g, ok := d.GroupByID(id)
		if !ok {
			return nil
		}
		segs = append([]string{g.Name}, segs...)
		id, ok = parent[g.ID]
		if !ok {
			return nil
		}
	}
	return segs
}

func child(d *pbtext.Document, g *pbtext.GroupRec, name string) (*pbtext.GroupRec, bool) {
	for _, cid := range g.Children() {
		if cg, ok := d.GroupByID(cid); ok && cg.Name == name {
			return cg, true
		}
	}
	return nil, false
}

func unknown(path []string) error {
	return &types.Error{
		Kind: types.ErrKindUnknownGroup,
		Msg:  fmt.Sprintf("unknown group path %q", strings.Join(path, "/")),
	}
}

func noChildList(g *pbtext.GroupRec) error {
	return &types.Error{
		Kind: types.ErrKindState,
		Msg:  fmt.Sprintf("group %q has no child list to edit", g.Name),
	}
}
