package pbtext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"manifestkit/pkg/types"
)

func TestAppendFileRef(t *testing.T) {
	d := mustParse(t, sampleManifest)
	d.AppendFileRef(types.FileReference{ID: "SF002", Name: "B.src", Path: "Models/B.src", Kind: "sourcecode"})

	out := string(d.Serialize())
	want := "\t\tSF002 /* B.src */ = {isa = PBXFileReference; lastKnownFileType = sourcecode; path = \"Models/B.src\"; sourceTree = \"<group>\"; };\n/* End PBXFileReference section */"
	assert.Contains(t, out, want, "new record must land at the end of its section")

	fr, ok := d.FileRefByName("B.src")
	require.True(t, ok)
	assert.Equal(t, types.ObjectID("SF002"), fr.ID)
}

func TestAppendWrapperAndPhaseEntry(t *testing.T) {
	d := mustParse(t, sampleManifest)
	phase := d.Phases()[0]

	d.AppendWrapper(types.BuildFileWrapper{ID: "BF002", FileRef: "SF002", PhaseName: "Sources"}, "B.src")
	d.AppendPhaseEntry(phase, "BF002", "B.src")

	out := string(d.Serialize())
	assert.Contains(t, out, "\t\tBF002 /* B.src in Sources */ = {isa = PBXBuildFile; fileRef = SF002 /* B.src */; };\n/* End PBXBuildFile section */")
	assert.Equal(t, []types.ObjectID{"BF001", "BF002"}, phase.Entries(), "entry appends at the end of the list")
}

func TestAppendGroupChild_Order(t *testing.T) {
	d := mustParse(t, sampleManifest)
	models, _ := d.GroupByID("GR002")
	d.AppendGroupChild(models, "SF002", "B.src")

	assert.Equal(t, []types.ObjectID{"SF001", "SF002"}, models.Children())
	out := string(d.Serialize())
	a := strings.Index(out, "SF001 /* A.src */,")
	b := strings.Index(out, "SF002 /* B.src */,")
	assert.Greater(t, b, a, "appended child must follow existing children")
}

func TestAppendGroup(t *testing.T) {
	d := mustParse(t, sampleManifest)
	models, _ := d.GroupByID("GR002")

	sub := d.AppendGroup(models, "GR003", "Sub")
	require.NotNil(t, sub)
	assert.Equal(t, []types.ObjectID{"SF001", "GR003"}, models.Children())

	out := string(d.Serialize())
	assert.Contains(t, out, "\t\tGR003 /* Sub */ = {\n")
	assert.Contains(t, out, "\t\t\tpath = Sub;\n")

	// The created group is immediately usable as an insertion target.
	d.AppendGroupChild(sub, "SF002", "B.src")
	assert.Equal(t, []types.ObjectID{"SF002"}, sub.Children())

	reparsed := mustParse(t, string(d.Serialize()))
	g, ok := reparsed.GroupByID("GR003")
	require.True(t, ok)
	assert.Equal(t, "Sub", g.Name)
	assert.Equal(t, []types.ObjectID{"SF002"}, g.Children())
}

func TestRemoveCascadePrimitives(t *testing.T) {
	d := mustParse(t, sampleManifest)
	models, _ := d.GroupByID("GR002")
	phase := d.Phases()[0]

	d.RemoveFileRef("SF001")
	d.RemoveWrapper("BF001")
	d.RemovePhaseEntry(phase, "BF001")
	d.RemoveGroupChild(models, "SF001")

	assert.Empty(t, d.FileRefs())
	assert.Empty(t, d.Wrappers())
	assert.Empty(t, models.Children())
	assert.Empty(t, phase.Entries())

	out := string(d.Serialize())
	assert.NotContains(t, out, "SF001")
	assert.NotContains(t, out, "BF001")
	// Untouched structure survives removal.
	assert.Contains(t, out, "/* Begin PBXFileReference section */")
	assert.Contains(t, out, "GR002 /* Models */")
}

func TestInsertThenRemove_RestoresOriginalBytes(t *testing.T) {
	d := mustParse(t, sampleManifest)
	models, _ := d.GroupByID("GR002")
	phase := d.Phases()[0]

	d.AppendFileRef(types.FileReference{ID: "SF002", Name: "B.src", Path: "Models/B.src", Kind: "sourcecode"})
	d.AppendGroupChild(models, "SF002", "B.src")
	d.AppendWrapper(types.BuildFileWrapper{ID: "BF002", FileRef: "SF002", PhaseName: "Sources"}, "B.src")
	d.AppendPhaseEntry(phase, "BF002", "B.src")

	d.RemoveFileRef("SF002")
	d.RemoveGroupChild(models, "SF002")
	d.RemoveWrapper("BF002")
	d.RemovePhaseEntry(phase, "BF002")

	assert.Equal(t, sampleManifest, string(d.Serialize()))
}

func TestListAnchors(t *testing.T) {
	d := mustParse(t, sampleManifest)
	models, _ := d.GroupByID("GR002")
	assert.True(t, models.HasChildList())
	assert.True(t, d.Phases()[0].HasEntryList())

	// Single-line records parse without a list to append to.
	inline := "/* Begin PBXGroup section */\n\t\tGR001 = {isa = PBXGroup; children = (); sourceTree = \"<group>\"; };\n/* End PBXGroup section */\n"
	d2 := mustParse(t, inline)
	g, ok := d2.GroupByID("GR001")
	require.True(t, ok)
	assert.False(t, g.HasChildList())
}

func TestQuoteIfNeeded(t *testing.T) {
	cases := map[string]string{
		"Models":       "Models",
		"Models/Sub":   "Models/Sub",
		"My Group":     `"My Group"`,
		"":             `""`,
		"a+b":          `"a+b"`,
		"file.src":     "file.src",
		"under_score1": "under_score1",
	}
	for in, want := range cases {
		assert.Equal(t, want, quoteIfNeeded(in), "input %q", in)
	}
}
