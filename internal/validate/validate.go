// Package validate checks referential integrity of a parsed manifest.
// It runs after every batch of edits and before serialization; any violation
// aborts the write-back so an inconsistent document never reaches disk.
package validate

import (
	"fmt"

	"manifestkit/internal/pbtext"
	"manifestkit/pkg/types"
)

// ValidationError reports one invariant violation with the offending
// identifier where one applies.
type ValidationError struct {
	Check string
	Ref   types.ObjectID
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Ref != "" {
		return fmt.Sprintf("%s [%s]: %s", e.Check, e.Ref, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Check, e.Msg)
}

// Kind maps a validation failure onto the public error taxonomy.
func (e *ValidationError) Kind() types.ErrKind {
	if e.Check == "Definitions" {
		return types.ErrKindDuplicateID
	}
	return types.ErrKindDangling
}

// AllInvariants validates the full entity graph in one call.
// Returns the first violation encountered, or nil if all checks pass.
func AllInvariants(d *pbtext.Document) error {
	if err := Definitions(d); err != nil {
		return err
	}
	if err := WrapperLinks(d); err != nil {
		return err
	}
	if err := PhaseLinks(d); err != nil {
		return err
	}
	if err := GroupPlacement(d); err != nil {
		return err
	}
	return TreeShape(d)
}

// Definitions checks that no identifier is defined more than once.
func Definitions(d *pbtext.Document) error {
	if dups := d.DuplicateDefs(); len(dups) > 0 {
		return &ValidationError{
			Check: "Definitions",
			Ref:   dups[0],
			Msg:   "identifier defined more than once",
		}
	}
	return nil
}

// WrapperLinks checks that every build wrapper resolves to an existing file
// reference and that no file reference is wrapped more than once.
func WrapperLinks(d *pbtext.Document) error {
	wrapped := make(map[types.ObjectID]types.ObjectID)
	for id, w := range d.Wrappers() {
		if _, ok := d.FileRefByID(w.FileRef); !ok {
			return &ValidationError{
				Check: "WrapperLinks",
				Ref:   id,
				Msg:   fmt.Sprintf("wrapper references missing file reference %s", w.FileRef),
			}
		}
		if prev, dup := wrapped[w.FileRef]; dup {
			return &ValidationError{
				Check: "WrapperLinks",
				Ref:   w.FileRef,
				Msg:   fmt.Sprintf("file reference wrapped twice (%s and %s)", prev, id),
			}
		}
		wrapped[w.FileRef] = id
	}
	return nil
}

// PhaseLinks checks that every phase entry resolves to an existing wrapper
// and that every wrapper appears in exactly one phase entry list.
func PhaseLinks(d *pbtext.Document) error {
	seen := make(map[types.ObjectID]int)
	for _, p := range d.Phases() {
		for _, id := range p.Entries() {
			if _, ok := d.Wrappers()[id]; !ok {
				return &ValidationError{
					Check: "PhaseLinks",
					Ref:   id,
					Msg:   fmt.Sprintf("phase %q lists unknown wrapper", p.Name),
				}
			}
			seen[id]++
		}
	}
	for id, n := range seen {
		if n > 1 {
			return &ValidationError{
				Check: "PhaseLinks",
				Ref:   id,
				Msg:   fmt.Sprintf("wrapper listed in %d phase entries", n),
			}
		}
	}
	for id := range d.Wrappers() {
		if seen[id] == 0 {
			return &ValidationError{
				Check: "PhaseLinks",
				Ref:   id,
				Msg:   "wrapper not listed in any build phase",
			}
		}
	}
	return nil
}

// GroupPlacement checks that every group child resolves to a known record and
// that every file reference is placed in exactly one group.
func GroupPlacement(d *pbtext.Document) error {
	placed := make(map[types.ObjectID]int)
	for _, gid := range d.GroupOrder() {
		g, _ := d.GroupByID(gid)
		within := make(map[types.ObjectID]struct{})
		for _, c := range g.Children() {
			if _, dup := within[c]; dup {
				return &ValidationError{
					Check: "GroupPlacement",
					Ref:   c,
					Msg:   fmt.Sprintf("duplicate child entry in group %q", g.Name),
				}
			}
			within[c] = struct{}{}
			_, isRef := d.FileRefByID(c)
			_, isGroup := d.GroupByID(c)
			if !isRef && !isGroup {
				return &ValidationError{
					Check: "GroupPlacement",
					Ref:   c,
					Msg:   fmt.Sprintf("group %q lists unknown child", g.Name),
				}
			}
			placed[c]++
		}
	}
	for id := range d.FileRefs() {
		switch placed[id] {
		case 1:
		case 0:
			return &ValidationError{Check: "GroupPlacement", Ref: id, Msg: "file reference not placed in any group"}
		default:
			return &ValidationError{
				Check: "GroupPlacement",
				Ref:   id,
				Msg:   fmt.Sprintf("file reference placed in %d groups", placed[id]),
			}
		}
	}
	return nil
}

// TreeShape checks the group tree: a single root, every other group with
// exactly one parent, and no cycles.
func TreeShape(d *pbtext.Document) error {
	parents := make(map[types.ObjectID]int)
	for _, gid := range d.GroupOrder() {
		g, _ := d.GroupByID(gid)
		for _, c := range g.Children() {
			if _, isGroup := d.GroupByID(c); isGroup {
				parents[c]++
			}
		}
	}
	roots := 0
	for _, gid := range d.GroupOrder() {
		switch parents[gid] {
		case 0:
			roots++
		case 1:
		default:
			return &ValidationError{
				Check: "TreeShape",
				Ref:   gid,
				Msg:   fmt.Sprintf("group has %d parents", parents[gid]),
			}
		}
	}
	if len(d.GroupOrder()) > 0 && roots != 1 {
		return &ValidationError{
			Check: "TreeShape",
			Msg:   fmt.Sprintf("expected one root group, found %d", roots),
		}
	}

	// Cycle check: walk down from the root; every group must be reachable
	// exactly once. A cycle leaves its members unreached because each has a
	// parent inside the cycle.
	reached := make(map[types.ObjectID]struct{})
	var walk func(id types.ObjectID)
	walk = func(id types.ObjectID) {
		if _, ok := reached[id]; ok {
			return
		}
		reached[id] = struct{}{}
		g, ok := d.GroupByID(id)
		if !ok {
			return
		}
		for _, c := range g.Children() {
			if _, isGroup := d.GroupByID(c); isGroup {
				walk(c)
			}
		}
	}
	walk(d.Root())
	for _, gid := range d.GroupOrder() {
		if _, ok := reached[gid]; !ok {
			return &ValidationError{
				Check: "TreeShape",
				Ref:   gid,
				Msg:   "group unreachable from root (cycle or orphan)",
			}
		}
	}
	return nil
}
