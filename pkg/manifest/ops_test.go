package manifest_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"manifestkit/pkg/manifest"
)

const fixture = `// !$*UTF8*$!
{
	objects = {

/* Begin PBXBuildFile section */
		BF001 /* A.src in Sources */ = {isa = PBXBuildFile; fileRef = SF001 /* A.src */; };
/* End PBXBuildFile section */

/* Begin PBXFileReference section */
		SF001 /* A.src */ = {isa = PBXFileReference; lastKnownFileType = sourcecode; path = "Models/A.src"; sourceTree = "<group>"; };
/* End PBXFileReference section */

/* Begin PBXGroup section */
		GR001 = {
			isa = PBXGroup;
			children = (
				GR002 /* Models */,
			);
			sourceTree = "<group>";
		};
		GR002 /* Models */ = {
			isa = PBXGroup;
			children = (
				SF001 /* A.src */,
			);
			path = Models;
			sourceTree = "<group>";
		};
/* End PBXGroup section */

/* Begin PBXSourcesBuildPhase section */
		PH001 /* Sources */ = {
			isa = PBXSourcesBuildPhase;
			files = (
				BF001 /* A.src in Sources */,
			);
			runOnlyForDeploymentPostprocessing = 0;
		};
/* End PBXSourcesBuildPhase section */
	};
}
`

func writeFixture(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "project.manifest")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func readBack(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func addB() manifest.AddOp {
	return manifest.AddOp{
		Name:      "B.src",
		Path:      "Models/B.src",
		Kind:      "sourcecode",
		GroupPath: []string{"Models"},
		Build:     true,
	}
}

func TestParse_RoundTrip(t *testing.T) {
	doc, err := manifest.ParseString(fixture)
	require.NoError(t, err)
	assert.Equal(t, fixture, string(doc.Serialize()),
		"an unedited document must serialize back byte for byte")
}

func TestParse_NotManifest(t *testing.T) {
	_, err := manifest.ParseString("package main\n\nfunc main() {}\n")
	require.Error(t, err)
	assert.True(t, errors.Is(err, manifest.ErrNotManifest))
}

func TestParseFile_Missing(t *testing.T) {
	_, err := manifest.ParseFile(filepath.Join(t.TempDir(), "nope.manifest"))
	require.Error(t, err)
	var terr *manifest.Error
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, manifest.ErrKindIO, terr.Kind)
}

func TestApply_EndToEnd(t *testing.T) {
	path := writeFixture(t, fixture)

	sum, err := manifest.Apply(path, manifest.EditRequest{Add: []manifest.AddOp{addB()}}, nil)
	require.NoError(t, err)
	require.Len(t, sum.Created, 1)
	assert.Equal(t, "B.src", sum.Created[0].Name)
	assert.NotEmpty(t, sum.Created[0].FileRef)
	assert.NotEmpty(t, sum.Created[0].Wrapper)

	// The written file contains the new records and still validates.
	out := readBack(t, path)
	assert.Contains(t, out, string(sum.Created[0].FileRef)+" /* B.src */")
	assert.Contains(t, out, string(sum.Created[0].Wrapper)+" /* B.src in Sources */")
	require.NoError(t, manifest.Validate(path))
}

func TestApply_Idempotent(t *testing.T) {
	path := writeFixture(t, fixture)

	_, err := manifest.AddArtifact(path, addB(), nil)
	require.NoError(t, err)
	after := readBack(t, path)

	sum, err := manifest.AddArtifact(path, addB(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"B.src"}, sum.Skipped)
	assert.Equal(t, after, readBack(t, path), "a skipped re-add must not rewrite anything")
}

func TestAddRemove_RestoresFile(t *testing.T) {
	path := writeFixture(t, fixture)

	_, err := manifest.AddArtifact(path, addB(), nil)
	require.NoError(t, err)
	_, err = manifest.RemoveArtifact(path, "B.src", nil)
	require.NoError(t, err)

	assert.Equal(t, fixture, readBack(t, path),
		"removing a just-added artifact must restore the original file bytes")
}

func TestApply_ValidationFailureLeavesFileUntouched(t *testing.T) {
	// A wrapper pointing at a missing reference parses fine but fails
	// validation, which must abort the write.
	broken := strings.Replace(fixture, "fileRef = SF001 /* A.src */", "fileRef = SF999 /* A.src */", 1)
	path := writeFixture(t, broken)

	_, err := manifest.Apply(path, manifest.EditRequest{Add: []manifest.AddOp{addB()}}, nil)
	require.Error(t, err)
	var terr *manifest.Error
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, manifest.ErrKindDangling, terr.Kind)
	assert.Equal(t, broken, readBack(t, path))
}

func TestApply_DryRun(t *testing.T) {
	path := writeFixture(t, fixture)

	opts := &manifest.Options{Write: manifest.WriteOptions{DryRun: true}}
	sum, err := manifest.Apply(path, manifest.EditRequest{Add: []manifest.AddOp{addB()}}, opts)
	require.NoError(t, err)
	assert.Len(t, sum.Created, 1)
	assert.Equal(t, fixture, readBack(t, path), "dry run must not touch the file")
}

func TestApply_StrictPropagatesError(t *testing.T) {
	path := writeFixture(t, fixture)

	bad := addB()
	bad.GroupPath = []string{"Nope"}
	opts := &manifest.Options{Edit: manifest.EditOptions{Strict: true}}
	_, err := manifest.Apply(path, manifest.EditRequest{Add: []manifest.AddOp{bad}}, opts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, manifest.ErrUnknownGroup))
	assert.Equal(t, fixture, readBack(t, path))
}

func TestValidate_Broken(t *testing.T) {
	broken := strings.Replace(fixture, "\t\t\t\tSF001 /* A.src */,\n", "", 1)
	path := writeFixture(t, broken)
	err := manifest.Validate(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, manifest.ErrDangling))
}

func TestStats(t *testing.T) {
	doc, err := manifest.ParseString(fixture)
	require.NoError(t, err)
	assert.Equal(t, manifest.Stats{FileReferences: 1, Wrappers: 1, Groups: 2, Phases: 1}, doc.Stats())
}

func TestFileReferences_Sorted(t *testing.T) {
	path := writeFixture(t, fixture)
	op := addB()
	op.Name = "0First.src"
	op.Path = "Models/0First.src"
	_, err := manifest.AddArtifact(path, op, nil)
	require.NoError(t, err)

	doc, err := manifest.ParseFile(path)
	require.NoError(t, err)
	refs := doc.FileReferences()
	require.Len(t, refs, 2)
	assert.Equal(t, "0First.src", refs[0].Name)
	assert.Equal(t, "A.src", refs[1].Name)
}

func TestGroupTree(t *testing.T) {
	doc, err := manifest.ParseString(fixture)
	require.NoError(t, err)

	root := doc.GroupTree()
	require.NotNil(t, root)
	assert.Empty(t, root.Name)
	require.Len(t, root.Groups, 1)
	models := root.Groups[0]
	assert.Equal(t, "Models", models.Name)
	assert.Equal(t, []string{"A.src"}, models.Files)
}
