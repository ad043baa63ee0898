package manifest

import "manifestkit/pkg/types"

// Re-export commonly used types from pkg/types so users only need to import
// pkg/manifest.

// Core types.
type (
	ObjectID         = types.ObjectID
	FileReference    = types.FileReference
	BuildFileWrapper = types.BuildFileWrapper
	Group            = types.Group
	BuildPhase       = types.BuildPhase
)

// Request and summary types.
type (
	AddOp           = types.AddOp
	RemoveOp        = types.RemoveOp
	EditRequest     = types.EditRequest
	CreatedArtifact = types.CreatedArtifact
	OpError         = types.OpError
	Summary         = types.Summary
)

// Option types.
type (
	EditOptions  = types.EditOptions
	WriteOptions = types.WriteOptions
)

// Error types.
type (
	Error   = types.Error
	ErrKind = types.ErrKind
)

// Error kind constants.
const (
	ErrKindParse         = types.ErrKindParse
	ErrKindNotFound      = types.ErrKindNotFound
	ErrKindDuplicateName = types.ErrKindDuplicateName
	ErrKindDuplicateID   = types.ErrKindDuplicateID
	ErrKindDangling      = types.ErrKindDangling
	ErrKindUnknownGroup  = types.ErrKindUnknownGroup
	ErrKindExhausted     = types.ErrKindExhausted
	ErrKindState         = types.ErrKindState
	ErrKindIO            = types.ErrKindIO
)

// Common error sentinels.
var (
	ErrNotManifest      = types.ErrNotManifest
	ErrNotFound         = types.ErrNotFound
	ErrDuplicateName    = types.ErrDuplicateName
	ErrDuplicateID      = types.ErrDuplicateID
	ErrDangling         = types.ErrDangling
	ErrUnknownGroup     = types.ErrUnknownGroup
	ErrIDSpaceExhausted = types.ErrIDSpaceExhausted
)
