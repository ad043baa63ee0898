package types

import "fmt"

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindParse         ErrKind = iota // malformed manifest text
	ErrKindNotFound                     // missing record, group, or phase
	ErrKindDuplicateName                // display name already registered with a different path
	ErrKindDuplicateID                  // identifier defined more than once
	ErrKindDangling                     // reference to an identifier with no definition
	ErrKindUnknownGroup                 // group path did not resolve and auto-create is off
	ErrKindExhausted                    // identifier space exhausted
	ErrKindState                        // invalid operation for current state
	ErrKindIO                           // file read/write failure
)

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports kind equality so sentinels work with errors.Is even when a
// specific error carries extra context.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels commonly returned by implementations.
var (
	// ErrNotManifest indicates the input is not a recognizable manifest document.
	ErrNotManifest = &Error{Kind: ErrKindParse, Msg: "not a manifest document"}
	// ErrNotFound indicates a missing record, group, or build phase.
	ErrNotFound = &Error{Kind: ErrKindNotFound, Msg: "not found"}
	// ErrDuplicateName indicates an add for a display name already registered
	// under a different path.
	ErrDuplicateName = &Error{Kind: ErrKindDuplicateName, Msg: "display name already registered"}
	// ErrDuplicateID indicates an identifier defined more than once.
	ErrDuplicateID = &Error{Kind: ErrKindDuplicateID, Msg: "duplicate identifier definition"}
	// ErrDangling indicates a reference to an identifier with no definition.
	ErrDangling = &Error{Kind: ErrKindDangling, Msg: "dangling identifier reference"}
	// ErrUnknownGroup indicates an unresolved group path with auto-create disabled.
	ErrUnknownGroup = &Error{Kind: ErrKindUnknownGroup, Msg: "unknown group path"}
	// ErrIDSpaceExhausted indicates the allocator could not find a free identifier.
	ErrIDSpaceExhausted = &Error{Kind: ErrKindExhausted, Msg: "identifier space exhausted"}
)

// -----------------------------------------------------------------------------
// Core Identifiers & Entities
// -----------------------------------------------------------------------------

// ObjectID is an opaque fixed-width token identifying one record. Identifiers
// are unique document-wide: content records and build wrappers draw from the
// same pool because some manifest dialects share a single identifier space.
type ObjectID string

// IDWidth is the canonical identifier width in hex characters.
const IDWidth = 24

// FileReference names one source artifact and its location and kind.
// Exactly one exists per registered artifact.
type FileReference struct {
	ID   ObjectID
	Name string // display name, unique across the document
	Path string // logical path relative to the project root
	Kind string // artifact kind tag (stored verbatim in the record)
}

// BuildFileWrapper links a FileReference to participation in a build phase.
// A reference-only artifact (e.g. a resource that is not compiled) has none.
type BuildFileWrapper struct {
	ID        ObjectID
	FileRef   ObjectID
	PhaseName string // display name of the owning phase, used in record comments
}

// Group is a named node in the hierarchical organization tree. Children is an
// ordered sequence of FileReference or Group identifiers.
type Group struct {
	ID       ObjectID
	Name     string // display name ("" for the root group)
	Children []ObjectID
}

// BuildPhase is an ordered list of BuildFileWrapper references describing
// what gets processed, in what order.
type BuildPhase struct {
	ID      ObjectID
	Name    string
	Entries []ObjectID
}

// -----------------------------------------------------------------------------
// Options
// -----------------------------------------------------------------------------

// EditOptions controls SectionEditor behavior for a batch of operations.
type EditOptions struct {
	// CreateGroups auto-creates missing intermediate groups when resolving a
	// group path. Off by default: an unresolved path is ErrUnknownGroup.
	CreateGroups bool

	// Strict aborts the whole batch on the first per-operation failure.
	// Off by default: failures are collected per artifact in the summary and
	// the remaining operations still run.
	Strict bool

	// DefaultPhase names the build phase that receives wrappers when an add
	// operation does not name one. Empty selects the first phase in the
	// document.
	DefaultPhase string
}

// WriteOptions controls document write-back behavior.
type WriteOptions struct {
	// DryRun performs the full edit and validation but skips the write.
	DryRun bool
}

// -----------------------------------------------------------------------------
// Edit Requests & Summaries
// -----------------------------------------------------------------------------

// AddOp registers one artifact: a FileReference, its group placement, and
// (unless Build is false) a BuildFileWrapper appended to a build phase.
type AddOp struct {
	Name      string   `json:"name"             yaml:"name"`
	Path      string   `json:"path"             yaml:"path"`
	Kind      string   `json:"kind"             yaml:"kind"`
	GroupPath []string `json:"group"            yaml:"group"`
	Build     bool     `json:"build"            yaml:"build"`
	Phase     string   `json:"phase,omitempty"  yaml:"phase,omitempty"`
}

// RemoveOp removes one artifact by display name, cascading to every linked
// record. Removing an absent name is a no-op.
type RemoveOp struct {
	Name string `json:"name" yaml:"name"`
}

// EditRequest is a declarative batch: removes run first, then adds, each in
// the order given.
type EditRequest struct {
	Remove []RemoveOp `json:"remove,omitempty" yaml:"remove,omitempty"`
	Add    []AddOp    `json:"add,omitempty"    yaml:"add,omitempty"`
}

// CreatedArtifact reports the identifiers minted for one added artifact.
type CreatedArtifact struct {
	Name    string   `json:"name"`
	FileRef ObjectID `json:"fileRef"`
	Wrapper ObjectID `json:"wrapper,omitempty"` // empty for reference-only artifacts
}

// OpError reports one failed operation in a non-strict batch.
type OpError struct {
	Name string `json:"name"`
	Err  string `json:"error"`
}

// Summary is the machine-readable result of applying an edit request.
type Summary struct {
	Created []CreatedArtifact `json:"created,omitempty"`
	Removed []string          `json:"removed,omitempty"`
	Skipped []string          `json:"skipped,omitempty"` // idempotent no-ops
	Errors  []OpError         `json:"errors,omitempty"`
}

// Failed reports whether any operation in the batch failed.
func (s *Summary) Failed() bool { return len(s.Errors) > 0 }

// String renders a short human-readable result line.
func (s *Summary) String() string {
	return fmt.Sprintf("%d created, %d removed, %d skipped, %d failed",
		len(s.Created), len(s.Removed), len(s.Skipped), len(s.Errors))
}
