package manifest

import (
	"go.uber.org/zap"

	"manifestkit/internal/writer"
	"manifestkit/pkg/types"
)

// Options controls the high-level one-call operations.
type Options struct {
	// Edit configures the batch: group auto-creation, strict mode, default
	// build phase.
	Edit types.EditOptions

	// Write configures write-back, e.g. dry runs.
	Write types.WriteOptions

	// Logger receives structured operation logs. Nil means no logging.
	Logger *zap.Logger
}

// Apply loads the manifest at path, applies the edit request, validates the
// result, and writes it back atomically via temp file + rename. On any
// validation failure the file is left untouched.
//
// Example:
//
//	sum, err := manifest.Apply("project.pbxproj", manifest.EditRequest{
//	    Add: []manifest.AddOp{{
//	        Name: "B.src", Path: "Models/B.src", Kind: "sourcecode",
//	        GroupPath: []string{"Models"}, Build: true,
//	    }},
//	}, nil)
func Apply(path string, req types.EditRequest, opts *Options) (*types.Summary, error) {
	if opts == nil {
		opts = &Options{}
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	doc, err := ParseFile(path)
	if err != nil {
		return nil, err
	}

	sum, err := doc.Apply(req, opts.Edit, log)
	if err != nil {
		return &sum, err
	}

	if err := doc.Validate(); err != nil {
		log.Error("validation failed, write aborted", zap.Error(err))
		return &sum, err
	}

	if opts.Write.DryRun {
		log.Info("dry run, skipping write", zap.String("path", path))
		return &sum, nil
	}

	fw := &writer.FileWriter{Path: path}
	if err := fw.WriteManifest(doc.Serialize()); err != nil {
		return &sum, &types.Error{Kind: types.ErrKindIO, Msg: "write manifest " + path, Err: err}
	}
	log.Info("manifest written", zap.String("path", path), zap.String("result", sum.String()))
	return &sum, nil
}

// AddArtifact registers one artifact in the manifest at path.
// Returns the identifiers created (or the existing ones on an idempotent
// re-run).
func AddArtifact(path string, op types.AddOp, opts *Options) (*types.Summary, error) {
	return Apply(path, types.EditRequest{Add: []types.AddOp{op}}, opts)
}

// RemoveArtifact removes the named artifact and every linked record from the
// manifest at path. Removing an absent name succeeds without changing the
// document.
func RemoveArtifact(path string, name string, opts *Options) (*types.Summary, error) {
	return Apply(path, types.EditRequest{Remove: []types.RemoveOp{{Name: name}}}, opts)
}

// Validate parses the manifest at path and checks all integrity invariants
// without modifying anything.
func Validate(path string) error {
	doc, err := ParseFile(path)
	if err != nil {
		return err
	}
	return doc.Validate()
}
