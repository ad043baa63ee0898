package pbtext

import (
	"fmt"
	"strings"

	"manifestkit/pkg/types"
)

// line is one physical line of the manifest, retained verbatim so untouched
// regions round-trip byte for byte. Raw includes the original terminator.
type line struct {
	raw     string
	deleted bool
}

// FileRef is a parsed file reference record with its source line.
type FileRef struct {
	types.FileReference
	src *line
}

// Wrapper is a parsed build-inclusion record with its source line.
type Wrapper struct {
	types.BuildFileWrapper
	src *line
}

// childEntry is one identifier occurrence inside a child or entry list.
type childEntry struct {
	id  types.ObjectID
	src *line
}

// GroupRec is a parsed group record. closer anchors child insertions.
type GroupRec struct {
	ID       types.ObjectID
	Name     string
	children []childEntry
	closer   *line // the ");" closing the children list
}

// PhaseRec is a parsed build phase record. closer anchors entry insertions.
type PhaseRec struct {
	ID      types.ObjectID
	Name    string
	entries []childEntry
	closer  *line // the ");" closing the files list
}

// Document is the in-memory entity graph plus the verbatim line sequence it
// was parsed from. All mutation methods are infallible once their inputs have
// been validated; callers perform every check before the first mutation so an
// edit is all-or-nothing.
type Document struct {
	lines []*line

	fileRefs   map[types.ObjectID]*FileRef
	wrappers   map[types.ObjectID]*Wrapper
	groups     map[types.ObjectID]*GroupRec
	phases     []*PhaseRec
	groupOrder []types.ObjectID

	byName map[string]*FileRef

	observed map[types.ObjectID]struct{}
	dupDefs  []types.ObjectID

	// Insertion anchors: the "/* End ... section */" marker lines.
	wrapperAnchor *line
	fileRefAnchor *line
	groupAnchor   *line

	root types.ObjectID
}

// Serialize reconstructs the manifest text: original lines in original order,
// minus deletions, plus lines spliced in at their insertion points.
func (d *Document) Serialize() []byte {
	var b strings.Builder
	for _, ln := range d.lines {
		if ln.deleted {
			continue
		}
		b.WriteString(ln.raw)
	}
	return []byte(b.String())
}

// Observed returns every identifier seen anywhere in the document, including
// records in sections this package does not model. The set over-approximates:
// extra tokens only make the allocator more conservative.
func (d *Document) Observed() []types.ObjectID {
	ids := make([]types.ObjectID, 0, len(d.observed))
	for id := range d.observed {
		ids = append(ids, id)
	}
	return ids
}

// DuplicateDefs returns identifiers defined more than once, in document order.
func (d *Document) DuplicateDefs() []types.ObjectID { return d.dupDefs }

// Root returns the identifier of the top-level group: the first group in
// document order that is not a child of any other group.
func (d *Document) Root() types.ObjectID { return d.root }

// -----------------------------------------------------------------------------
// Lookups
// -----------------------------------------------------------------------------

// FileRefByName returns the file reference with the given display name.
func (d *Document) FileRefByName(name string) (*FileRef, bool) {
	fr, ok := d.byName[name]
	return fr, ok
}

// FileRefByID returns the file reference with the given identifier.
func (d *Document) FileRefByID(id types.ObjectID) (*FileRef, bool) {
	fr, ok := d.fileRefs[id]
	return fr, ok
}

// FileRefs returns all file references keyed by identifier.
func (d *Document) FileRefs() map[types.ObjectID]*FileRef { return d.fileRefs }

// Wrappers returns all build wrappers keyed by identifier.
func (d *Document) Wrappers() map[types.ObjectID]*Wrapper { return d.wrappers }

// WrappersFor returns every wrapper referencing the given file reference.
// A consistent document has at most one.
func (d *Document) WrappersFor(fileRef types.ObjectID) []*Wrapper {
	var out []*Wrapper
	for _, w := range d.wrappers {
		if w.FileRef == fileRef {
			out = append(out, w)
		}
	}
	return out
}

// GroupByID returns the group record with the given identifier.
func (d *Document) GroupByID(id types.ObjectID) (*GroupRec, bool) {
	g, ok := d.groups[id]
	return g, ok
}

// Groups returns all group records keyed by identifier.
func (d *Document) Groups() map[types.ObjectID]*GroupRec { return d.groups }

// GroupOrder returns group identifiers in document order.
func (d *Document) GroupOrder() []types.ObjectID { return d.groupOrder }

// HasChildList reports whether the group carries a children list that can
// receive appended entries. Groups collapsed onto a single line parse without
// one; editing such a group must be rejected before any mutation.
func (g *GroupRec) HasChildList() bool { return g.closer != nil }

// HasEntryList reports whether the phase carries a files list that can
// receive appended entries.
func (p *PhaseRec) HasEntryList() bool { return p.closer != nil }

// Children returns the ordered child identifiers of a group.
func (g *GroupRec) Children() []types.ObjectID {
	ids := make([]types.ObjectID, len(g.children))
	for i, c := range g.children {
		ids[i] = c.id
	}
	return ids
}

// Entries returns the ordered entry identifiers of a build phase.
func (p *PhaseRec) Entries() []types.ObjectID {
	ids := make([]types.ObjectID, len(p.entries))
	for i, e := range p.entries {
		ids[i] = e.id
	}
	return ids
}

// Phases returns build phases in document order.
func (d *Document) Phases() []*PhaseRec { return d.phases }

// PhaseByName returns the first phase with the given display name.
func (d *Document) PhaseByName(name string) (*PhaseRec, bool) {
	for _, p := range d.phases {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// FirstPhase returns the first build phase in document order.
func (d *Document) FirstPhase() (*PhaseRec, bool) {
	if len(d.phases) == 0 {
		return nil, false
	}
	return d.phases[0], true
}

// -----------------------------------------------------------------------------
// Mutations
// -----------------------------------------------------------------------------

// insertBefore splices new raw lines into the sequence ahead of anchor and
// returns the created line objects. The anchor must be a live line of the
// document; callers verify the target list closer exists before mutating.
func (d *Document) insertBefore(anchor *line, raws ...string) []*line {
	at := len(d.lines)
	for i, ln := range d.lines {
		if ln == anchor {
			at = i
			break
		}
	}
	created := make([]*line, len(raws))
	for i, raw := range raws {
		created[i] = &line{raw: raw}
	}
	d.lines = append(d.lines[:at], append(created, d.lines[at:]...)...)
	return created
}

// AppendFileRef appends a file reference record at the end of its section.
func (d *Document) AppendFileRef(fr types.FileReference) {
	raw := fmt.Sprintf("%s%s %s = {isa = %s; lastKnownFileType = %s; path = \"%s\"; sourceTree = \"<group>\"; };\n",
		RecordIndent, fr.ID, comment(fr.Name), IsaFileReference, fr.Kind, fr.Path)
	created := d.insertBefore(d.fileRefAnchor, raw)
	rec := &FileRef{FileReference: fr, src: created[0]}
	d.fileRefs[fr.ID] = rec
	d.byName[fr.Name] = rec
	d.observed[fr.ID] = struct{}{}
}

// AppendWrapper appends a build wrapper record at the end of its section.
// name is the display name of the wrapped file reference.
func (d *Document) AppendWrapper(w types.BuildFileWrapper, name string) {
	raw := fmt.Sprintf("%s%s %s = {isa = %s; fileRef = %s %s; };\n",
		RecordIndent, w.ID, comment(name+WrapperNameInfix+w.PhaseName), IsaBuildFile, w.FileRef, comment(name))
	created := d.insertBefore(d.wrapperAnchor, raw)
	d.wrappers[w.ID] = &Wrapper{BuildFileWrapper: w, src: created[0]}
	d.observed[w.ID] = struct{}{}
}

// AppendGroupChild appends an identifier at the end of a group's child list.
func (d *Document) AppendGroupChild(g *GroupRec, id types.ObjectID, name string) {
	raw := fmt.Sprintf("%s%s %s,\n", EntryIndent, id, comment(name))
	created := d.insertBefore(g.closer, raw)
	g.children = append(g.children, childEntry{id: id, src: created[0]})
}

// AppendPhaseEntry appends a wrapper identifier at the end of a phase's list.
func (d *Document) AppendPhaseEntry(p *PhaseRec, id types.ObjectID, name string) {
	raw := fmt.Sprintf("%s%s %s,\n", EntryIndent, id, comment(name+WrapperNameInfix+p.Name))
	created := d.insertBefore(p.closer, raw)
	p.entries = append(p.entries, childEntry{id: id, src: created[0]})
}

// AppendGroup creates an empty group record at the end of the group section
// and links it as the last child of parent.
func (d *Document) AppendGroup(parent *GroupRec, id types.ObjectID, name string) *GroupRec {
	raws := []string{
		fmt.Sprintf("%s%s %s = {\n", RecordIndent, id, comment(name)),
		fmt.Sprintf("%sisa = %s;\n", FieldIndent, IsaGroup),
		fmt.Sprintf("%s%s\n", FieldIndent, ChildListOpen),
		fmt.Sprintf("%s%s\n", FieldIndent, ListClose),
		fmt.Sprintf("%spath = %s;\n", FieldIndent, quoteIfNeeded(name)),
		fmt.Sprintf("%ssourceTree = \"<group>\";\n", FieldIndent),
		fmt.Sprintf("%s%s\n", RecordIndent, RecordClose),
	}
	created := d.insertBefore(d.groupAnchor, raws...)
	g := &GroupRec{ID: id, Name: name, closer: created[3]}
	d.groups[id] = g
	d.groupOrder = append(d.groupOrder, id)
	d.observed[id] = struct{}{}
	d.AppendGroupChild(parent, id, name)
	return g
}

// RemoveFileRef deletes a file reference record.
func (d *Document) RemoveFileRef(id types.ObjectID) {
	fr, ok := d.fileRefs[id]
	if !ok {
		return
	}
	fr.src.deleted = true
	delete(d.fileRefs, id)
	if d.byName[fr.Name] == fr {
		delete(d.byName, fr.Name)
	}
}

// RemoveWrapper deletes a build wrapper record.
func (d *Document) RemoveWrapper(id types.ObjectID) {
	w, ok := d.wrappers[id]
	if !ok {
		return
	}
	w.src.deleted = true
	delete(d.wrappers, id)
}

// RemoveGroupChild deletes every occurrence of id from a group's child list.
func (d *Document) RemoveGroupChild(g *GroupRec, id types.ObjectID) {
	kept := g.children[:0]
	for _, c := range g.children {
		if c.id == id {
			c.src.deleted = true
			continue
		}
		kept = append(kept, c)
	}
	g.children = kept
}

// RemovePhaseEntry deletes every occurrence of id from a phase's entry list.
func (d *Document) RemovePhaseEntry(p *PhaseRec, id types.ObjectID) {
	kept := p.entries[:0]
	for _, e := range p.entries {
		if e.id == id {
			e.src.deleted = true
			continue
		}
		kept = append(kept, e)
	}
	p.entries = kept
}

// -----------------------------------------------------------------------------
// Formatting helpers
// -----------------------------------------------------------------------------

func comment(text string) string {
	return CommentOpen + text + CommentClose
}

// quoteIfNeeded wraps a value in double quotes when it contains characters
// the bare-token form cannot carry.
func quoteIfNeeded(v string) string {
	if v == "" {
		return `""`
	}
	for _, r := range v {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '.', r == '_', r == '/':
		default:
			return `"` + v + `"`
		}
	}
	return v
}
