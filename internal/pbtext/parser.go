package pbtext

import (
	"fmt"
	"regexp"
	"strings"

	"manifestkit/pkg/types"
)

const idPat = `[0-9A-Za-z]{2,40}`

var (
	reInlineRecord = regexp.MustCompile(`^(` + idPat + `)(?: /\* (.+?) \*/)? = \{(.*)\};$`)
	reRecordHead   = regexp.MustCompile(`^(` + idPat + `)(?: /\* (.+?) \*/)? = \{$`)
	reListOpen     = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9]*) = \($`)
	reNestedOpen   = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9]*) = \{$`)
	reAttr         = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9]*) = (.+);$`)
	reEntry        = regexp.MustCompile(`^(` + idPat + `)(?: /\* (.+?) \*/)?,?$`)
	reBodyAttr     = regexp.MustCompile(`([A-Za-z][A-Za-z0-9]*) = ([^;]+);`)
	reHarvestRef   = regexp.MustCompile(`(` + idPat + `) /\*`)
	reHarvestAttr  = regexp.MustCompile(`= (` + idPat + `);`)
)

// Parse converts manifest text into a Document without losing a single byte
// of the input: every line is retained with its provenance, and entities
// reference the lines they came from.
func Parse(data []byte) (*Document, error) {
	d := &Document{
		fileRefs: make(map[types.ObjectID]*FileRef),
		wrappers: make(map[types.ObjectID]*Wrapper),
		groups:   make(map[types.ObjectID]*GroupRec),
		byName:   make(map[string]*FileRef),
		observed: make(map[types.ObjectID]struct{}),
	}
	d.lines = splitLines(data)

	p := &parser{d: d, defs: make(map[types.ObjectID]int)}
	if err := p.run(); err != nil {
		return nil, err
	}
	if !p.sawSection {
		return nil, types.ErrNotManifest
	}
	d.resolveRoot()
	return d, nil
}

// splitLines cuts raw bytes after each newline, preserving terminators.
func splitLines(data []byte) []*line {
	var lines []*line
	start := 0
	for i, b := range data {
		if b == '\n' {
			lines = append(lines, &line{raw: string(data[start : i+1])})
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, &line{raw: string(data[start:])})
	}
	return lines
}

type parser struct {
	d          *Document
	i          int
	section    string
	sawSection bool
	defs       map[types.ObjectID]int
}

func (p *parser) run() error {
	for p.i = 0; p.i < len(p.d.lines); p.i++ {
		ln := p.d.lines[p.i]
		t := strings.TrimSpace(ln.raw)
		p.harvest(t)

		switch {
		case isSectionBegin(t):
			p.section = sectionName(t, SectionBeginPrefix)
			p.sawSection = true

		case isSectionEnd(t):
			switch sectionName(t, SectionEndPrefix) {
			case IsaBuildFile:
				p.d.wrapperAnchor = ln
			case IsaFileReference:
				p.d.fileRefAnchor = ln
			case IsaGroup:
				p.d.groupAnchor = ln
			}
			p.section = ""

		case p.section != "":
			if m := reInlineRecord.FindStringSubmatch(t); m != nil {
				p.inlineRecord(ln, m)
				continue
			}
			if m := reRecordHead.FindStringSubmatch(t); m != nil {
				if err := p.blockRecord(ln, m); err != nil {
					return err
				}
			}
		}
	}
	if p.section != "" {
		return &types.Error{Kind: types.ErrKindParse, Msg: fmt.Sprintf("unterminated section %q", p.section)}
	}
	return nil
}

// harvest collects identifier-shaped tokens from any line so the allocator
// never reuses a token already present, even in unmodeled sections.
func (p *parser) harvest(t string) {
	for _, m := range reHarvestRef.FindAllStringSubmatch(t, -1) {
		p.d.observed[types.ObjectID(m[1])] = struct{}{}
	}
	for _, m := range reHarvestAttr.FindAllStringSubmatch(t, -1) {
		p.d.observed[types.ObjectID(m[1])] = struct{}{}
	}
}

func (p *parser) define(id types.ObjectID) {
	p.d.observed[id] = struct{}{}
	p.defs[id]++
	if p.defs[id] == 2 {
		p.d.dupDefs = append(p.d.dupDefs, id)
	}
}

// inlineRecord handles single-line records: wrappers and file references.
func (p *parser) inlineRecord(ln *line, m []string) {
	id := types.ObjectID(m[1])
	p.define(id)
	attrs := make(map[string]string)
	for _, am := range reBodyAttr.FindAllStringSubmatch(m[3], -1) {
		attrs[am[1]] = strings.TrimSpace(am[2])
	}
	p.dispatch(ln, id, m[2], attrs, nil, nil)
}

// blockRecord handles multi-line records, collecting scalar attributes and
// identifier lists until the closing brace. Nested brace-delimited values are
// skipped but their lines stay untouched for round-tripping.
func (p *parser) blockRecord(head *line, m []string) error {
	id := types.ObjectID(m[1])
	p.define(id)
	attrs := make(map[string]string)
	lists := make(map[string][]childEntry)
	closers := make(map[string]*line)

	for p.i++; p.i < len(p.d.lines); p.i++ {
		ln := p.d.lines[p.i]
		t := strings.TrimSpace(ln.raw)
		p.harvest(t)

		switch {
		case t == RecordClose:
			p.dispatch(head, id, m[2], attrs, lists, closers)
			return nil

		case reListOpen.MatchString(t):
			name := reListOpen.FindStringSubmatch(t)[1]
			entries, closer, err := p.scanList(name)
			if err != nil {
				return err
			}
			lists[name] = entries
			closers[name] = closer

		case reNestedOpen.MatchString(t):
			if err := p.skipNested(); err != nil {
				return err
			}

		default:
			if am := reAttr.FindStringSubmatch(t); am != nil {
				attrs[am[1]] = strings.TrimSpace(am[2])
			}
		}
	}
	return &types.Error{Kind: types.ErrKindParse, Msg: fmt.Sprintf("record %s: unexpected end of input", id)}
}

// scanList reads identifier entries until the closing ");". Entries without a
// trailing comma and interleaved blank lines are tolerated.
func (p *parser) scanList(name string) ([]childEntry, *line, error) {
	var entries []childEntry
	for p.i++; p.i < len(p.d.lines); p.i++ {
		ln := p.d.lines[p.i]
		t := strings.TrimSpace(ln.raw)
		p.harvest(t)

		if t == ListClose {
			return entries, ln, nil
		}
		if t == "" || strings.HasPrefix(t, "/*") {
			continue
		}
		if em := reEntry.FindStringSubmatch(t); em != nil {
			entries = append(entries, childEntry{id: types.ObjectID(em[1]), src: ln})
		}
	}
	return nil, nil, &types.Error{Kind: types.ErrKindParse, Msg: fmt.Sprintf("list %q: unexpected end of input", name)}
}

// skipNested consumes a nested brace-delimited value, tracking depth.
func (p *parser) skipNested() error {
	depth := 1
	for p.i++; p.i < len(p.d.lines); p.i++ {
		t := strings.TrimSpace(p.d.lines[p.i].raw)
		p.harvest(t)
		depth += strings.Count(t, "{") - strings.Count(t, "}")
		if depth <= 0 {
			return nil
		}
	}
	return &types.Error{Kind: types.ErrKindParse, Msg: "nested value: unexpected end of input"}
}

// dispatch materializes an entity from a scanned record based on its isa tag.
func (p *parser) dispatch(head *line, id types.ObjectID, comment string, attrs map[string]string, lists map[string][]childEntry, closers map[string]*line) {
	isa := attrs["isa"]
	switch {
	case isa == IsaBuildFile:
		ref, _, _ := strings.Cut(attrs["fileRef"], " ")
		_, phase := splitWrapperComment(comment)
		p.d.wrappers[id] = &Wrapper{
			BuildFileWrapper: types.BuildFileWrapper{ID: id, FileRef: types.ObjectID(ref), PhaseName: phase},
			src:              head,
		}

	case isa == IsaFileReference:
		name := comment
		if name == "" {
			name = unquote(attrs["name"])
		}
		kind := attrs["lastKnownFileType"]
		if kind == "" {
			kind = attrs["explicitFileType"]
		}
		fr := &FileRef{
			FileReference: types.FileReference{ID: id, Name: name, Path: unquote(attrs["path"]), Kind: kind},
			src:           head,
		}
		p.d.fileRefs[id] = fr
		if name != "" {
			p.d.byName[name] = fr
		}

	case isa == IsaGroup:
		name := unquote(attrs["name"])
		if name == "" {
			name = unquote(attrs["path"])
		}
		if name == "" {
			name = comment
		}
		p.d.groups[id] = &GroupRec{ID: id, Name: name, children: lists["children"], closer: closers["children"]}
		p.d.groupOrder = append(p.d.groupOrder, id)

	case strings.HasSuffix(isa, BuildPhaseSuffix):
		name := comment
		if name == "" {
			name = strings.TrimSuffix(strings.TrimPrefix(isa, "PBX"), BuildPhaseSuffix)
		}
		p.d.phases = append(p.d.phases, &PhaseRec{ID: id, Name: name, entries: lists["files"], closer: closers["files"]})
	}
}

// resolveRoot picks the first group, in document order, that no other group
// lists as a child.
func (d *Document) resolveRoot() {
	parented := make(map[types.ObjectID]struct{})
	for _, g := range d.groups {
		for _, c := range g.children {
			parented[c.id] = struct{}{}
		}
	}
	for _, id := range d.groupOrder {
		if _, ok := parented[id]; !ok {
			d.root = id
			return
		}
	}
}

// RequireSections reports whether the document carries the table sections an
// edit needs to target. Parsing without them is fine; editing is not.
func (d *Document) RequireSections() error {
	missing := ""
	switch {
	case d.wrapperAnchor == nil:
		missing = IsaBuildFile
	case d.fileRefAnchor == nil:
		missing = IsaFileReference
	case d.groupAnchor == nil:
		missing = IsaGroup
	}
	if missing != "" {
		return &types.Error{Kind: types.ErrKindState, Msg: fmt.Sprintf("document has no %s section", missing)}
	}
	return nil
}

func isSectionBegin(t string) bool {
	return strings.HasPrefix(t, SectionBeginPrefix) && strings.HasSuffix(t, SectionSuffix)
}

func isSectionEnd(t string) bool {
	return strings.HasPrefix(t, SectionEndPrefix) && strings.HasSuffix(t, SectionSuffix)
}

func sectionName(t, prefix string) string {
	return strings.TrimSuffix(strings.TrimPrefix(t, prefix), SectionSuffix)
}

// splitWrapperComment separates "B.src in Sources" into name and phase.
func splitWrapperComment(c string) (name, phase string) {
	if at := strings.LastIndex(c, WrapperNameInfix); at >= 0 {
		return c[:at], c[at+len(WrapperNameInfix):]
	}
	return c, ""
}

func unquote(v string) string {
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		v = v[1 : len(v)-1]
		v = strings.ReplaceAll(v, `\"`, `"`)
		v = strings.ReplaceAll(v, `\\`, `\`)
	}
	return v
}
