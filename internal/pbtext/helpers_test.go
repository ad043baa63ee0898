package pbtext

// sampleManifest is a minimal but complete document: one artifact fully
// linked across all four tables, a root group, and one build phase.
const sampleManifest = `// !$*UTF8*$!
{
	archiveVersion = 1;
	classes = {
	};
	objectVersion = 56;
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
			buildActionMask = 2147483647;
			files = (
				BF001 /* A.src in Sources */,
			);
			runOnlyForDeploymentPostprocessing = 0;
		};
/* End PBXSourcesBuildPhase section */
	};
	rootObject = PR001 /* Project object */;
}
`

func mustParse(t interface {
	Helper()
	Fatalf(format string, args ...interface{})
}, text string) *Document {
	t.Helper()
	d, err := Parse([]byte(text))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return d
}
