/*
Package manifest provides a high-level API for structural edits of
cross-referenced project manifests.

A manifest is a text document made of linked tables: file references, build
wrappers, a group tree, and ordered build phases. Registering or removing an
artifact touches all of them at once, and this package keeps them mutually
consistent: edits are validated before anything reaches disk, and the write
is atomic.

# Quick Start

Register an artifact:

	sum, err := manifest.AddArtifact("project.pbxproj", manifest.AddOp{
	    Name:      "B.src",
	    Path:      "Models/B.src",
	    Kind:      "sourcecode",
	    GroupPath: []string{"Models"},
	    Build:     true,
	}, nil)

Remove one, cascading to every linked record:

	sum, err := manifest.RemoveArtifact("project.pbxproj", "B.src", nil)

Apply a declarative batch from YAML:

	req, err := manifest.LoadRequest("changes.yaml")
	if err != nil {
	    log.Fatal(err)
	}
	sum, err := manifest.Apply("project.pbxproj", req, nil)

# Guarantees

  - Round trip: parsing and serializing an unedited manifest reproduces the
    input byte for byte.
  - Idempotence: re-adding an already linked artifact and removing an absent
    one are no-ops, so batch runs can be replayed safely.
  - All-or-nothing: a failed operation leaves the in-memory document
    unmodified, and a validation failure leaves the file on disk untouched.
  - Crash safety: write-back goes through a temp file and an atomic rename.

# Error Handling

Errors carry stable kinds for programmatic handling:

	if errors.Is(err, manifest.ErrUnknownGroup) {
	    // create the group first, or enable EditOptions.CreateGroups
	}
*/
package manifest
