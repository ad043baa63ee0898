// Package editor coordinates multi-table edits over a parsed manifest.
//
// An artifact registration touches four tables at once: the file reference,
// its build wrapper, the owning group's child list, and a build phase's entry
// list. The editor performs every fallible step (lookups, resolution,
// identifier allocation) before the first mutation, so each operation is
// all-or-nothing in memory.
package editor

import (
	"fmt"

	"go.uber.org/zap"

	"manifestkit/internal/grouptree"
	"manifestkit/internal/idgen"
	"manifestkit/internal/pbtext"
	"manifestkit/pkg/types"
)

// Editor applies add/remove operations to one document.
// Not safe for concurrent use; the document is single-owner for the session.
type Editor struct {
	doc   *pbtext.Document
	alloc *idgen.Allocator
	opts  types.EditOptions
	log   *zap.Logger
}

// New creates an editor for doc. The allocator is seeded with every
// identifier observed during parse. logger may be nil.
func New(doc *pbtext.Document, opts types.EditOptions, logger *zap.Logger) (*Editor, error) {
	if err := doc.RequireSections(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Editor{
		doc:   doc,
		alloc: idgen.New(doc.Observed()),
		opts:  opts,
		log:   logger,
	}, nil
}

// AddArtifact registers one artifact. It returns the created identifiers, or
// the existing ones with skipped=true when the same name and path are already
// fully linked (idempotent re-run).
func (e *Editor) AddArtifact(op types.AddOp) (created types.CreatedArtifact, skipped bool, err error) {
	if op.Name == "" || op.Path == "" {
		return created, false, &types.Error{Kind: types.ErrKindState, Msg: "add operation needs a name and a path"}
	}

	if existing, ok := e.doc.FileRefByName(op.Name); ok {
		if existing.Path == op.Path && e.fullyLinked(existing, op.Build) {
			e.log.Debug("artifact already registered", zap.String("name", op.Name), zap.String("id", string(existing.ID)))
			return e.artifactIDs(existing), true, nil
		}
		return created, false, &types.Error{
			Kind: types.ErrKindDuplicateName,
			Msg:  fmt.Sprintf("artifact %q already registered at %q", op.Name, existing.Path),
		}
	}

	// Resolve the target phase before touching anything.
	var phase *pbtext.PhaseRec
	if op.Build {
		phase, err = e.resolvePhase(op.Phase)
		if err != nil {
			return created, false, err
		}
	}

	// Plan group creation and allocate every identifier up front; after this
	// point no step can fail.
	missing := grouptree.Missing(e.doc, op.GroupPath)
	if len(missing) > 0 && !e.opts.CreateGroups {
		if _, rerr := grouptree.Resolve(e.doc, op.GroupPath); rerr != nil {
			return created, false, rerr
		}
	}
	// The deepest existing group on the path receives the first insertion,
	// either the new reference or the first auto-created group. A group parsed
	// from a single-line record has no list to splice into; reject it here so
	// the document is never mutated.
	attach, err := grouptree.Resolve(e.doc, op.GroupPath[:len(op.GroupPath)-len(missing)])
	if err != nil {
		return created, false, err
	}
	if !attach.HasChildList() {
		return created, false, &types.Error{
			Kind: types.ErrKindState,
			Msg:  fmt.Sprintf("group %q has no child list to edit", attach.Name),
		}
	}
	groupIDs, err := e.allocateN(len(missing))
	if err != nil {
		return created, false, err
	}
	fileID, err := e.alloc.Allocate()
	if err != nil {
		return created, false, err
	}
	var wrapID types.ObjectID
	if op.Build {
		if wrapID, err = e.alloc.Allocate(); err != nil {
			return created, false, err
		}
	}

	group, err := grouptree.ResolveOrCreate(e.doc, op.GroupPath, e.opts.CreateGroups, &fixedAlloc{ids: groupIDs})
	if err != nil {
		return created, false, err
	}

	e.doc.AppendFileRef(types.FileReference{ID: fileID, Name: op.Name, Path: op.Path, Kind: op.Kind})
	e.doc.AppendGroupChild(group, fileID, op.Name)
	if op.Build {
		e.doc.AppendWrapper(types.BuildFileWrapper{ID: wrapID, FileRef: fileID, PhaseName: phase.Name}, op.Name)
		e.doc.AppendPhaseEntry(phase, wrapID, op.Name)
	}

	e.log.Info("artifact registered",
		zap.String("name", op.Name),
		zap.String("fileRef", string(fileID)),
		zap.String("wrapper", string(wrapID)))
	return types.CreatedArtifact{Name: op.Name, FileRef: fileID, Wrapper: wrapID}, false, nil
}

// RemoveArtifact removes the artifact with the given display name, cascading
// to its wrapper, phase entries, and group placements. Removing an absent
// name is a no-op; a partially linked artifact is still fully cleaned.
func (e *Editor) RemoveArtifact(name string) (removed bool, err error) {
	fr, ok := e.doc.FileRefByName(name)
	if !ok {
		return false, nil
	}
	wrappers := e.doc.WrappersFor(fr.ID)

	e.doc.RemoveFileRef(fr.ID)
	for _, w := range wrappers {
		e.doc.RemoveWrapper(w.ID)
		for _, p := range e.doc.Phases() {
			e.doc.RemovePhaseEntry(p, w.ID)
		}
	}
	for _, gid := range e.doc.GroupOrder() {
		if g, ok := e.doc.GroupByID(gid); ok {
			e.doc.RemoveGroupChild(g, fr.ID)
		}
	}

	e.log.Info("artifact removed", zap.String("name", name), zap.String("fileRef", string(fr.ID)))
	return true, nil
}

// Apply runs a declarative batch: removes first, then adds, each in request
// order. Per-operation failures go into the summary; in strict mode the
// first failure aborts the batch.
func (e *Editor) Apply(req types.EditRequest) (types.Summary, error) {
	var sum types.Summary
	for _, op := range req.Remove {
		removed, err := e.RemoveArtifact(op.Name)
		if err != nil {
			sum.Errors = append(sum.Errors, types.OpError{Name: op.Name, Err: err.Error()})
			if e.opts.Strict {
				return sum, err
			}
			continue
		}
		if removed {
			sum.Removed = append(sum.Removed, op.Name)
		} else {
			sum.Skipped = append(sum.Skipped, op.Name)
		}
	}
	for _, op := range req.Add {
		created, skipped, err := e.AddArtifact(op)
		switch {
		case err != nil:
			sum.Errors = append(sum.Errors, types.OpError{Name: op.Name, Err: err.Error()})
			if e.opts.Strict {
				return sum, err
			}
		case skipped:
			sum.Skipped = append(sum.Skipped, op.Name)
		default:
			sum.Created = append(sum.Created, created)
		}
	}
	return sum, nil
}

// fullyLinked reports whether fr satisfies the per-artifact invariants:
// placed in exactly one group, and, when build inclusion is requested,
// wrapped exactly once with the wrapper in exactly one phase.
func (e *Editor) fullyLinked(fr *pbtext.FileRef, build bool) bool {
	placements := 0
	for _, gid := range e.doc.GroupOrder() {
		g, _ := e.doc.GroupByID(gid)
		for _, c := range g.Children() {
			if c == fr.ID {
				placements++
			}
		}
	}
	if placements != 1 {
		return false
	}
	if !build {
		return true
	}
	wrappers := e.doc.WrappersFor(fr.ID)
	if len(wrappers) != 1 {
		return false
	}
	entries := 0
	for _, p := range e.doc.Phases() {
		for _, id := range p.Entries() {
			if id == wrappers[0].ID {
				entries++
			}
		}
	}
	return entries == 1
}

// artifactIDs reports the identifiers already linked to an existing artifact.
func (e *Editor) artifactIDs(fr *pbtext.FileRef) types.CreatedArtifact {
	out := types.CreatedArtifact{Name: fr.Name, FileRef: fr.ID}
	if ws := e.doc.WrappersFor(fr.ID); len(ws) == 1 {
		out.Wrapper = ws[0].ID
	}
	return out
}

func (e *Editor) resolvePhase(name string) (*pbtext.PhaseRec, error) {
	if name == "" {
		name = e.opts.DefaultPhase
	}
	var p *pbtext.PhaseRec
	if name != "" {
		named, ok := e.doc.PhaseByName(name)
		if !ok {
			return nil, &types.Error{Kind: types.ErrKindNotFound, Msg: fmt.Sprintf("build phase %q not found", name)}
		}
		p = named
	} else {
		first, ok := e.doc.FirstPhase()
		if !ok {
			return nil, &types.Error{Kind: types.ErrKindNotFound, Msg: "document has no build phase"}
		}
		p = first
	}
	if !p.HasEntryList() {
		return nil, &types.Error{Kind: types.ErrKindState, Msg: fmt.Sprintf("build phase %q has no entry list to edit", p.Name)}
	}
	return p, nil
}

// allocateN draws n identifiers in one shot so group auto-creation cannot
// fail halfway through.
func (e *Editor) allocateN(n int) ([]types.ObjectID, error) {
	ids := make([]types.ObjectID, 0, n)
	for i := 0; i < n; i++ {
		id, err := e.alloc.Allocate()
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// fixedAlloc pops pre-allocated identifiers; it never fails.
type fixedAlloc struct{ ids []types.ObjectID }

func (f *fixedAlloc) Allocate() (types.ObjectID, error) {
	id := f.ids[0]
	f.ids = f.ids[1:]
	return id, nil
}
