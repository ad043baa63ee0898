package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testManifest = `// !$*UTF8*$!
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

// writeTestManifest creates a manifest file in a temp dir and returns its path.
func writeTestManifest(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "project.manifest")
	if err := os.WriteFile(path, []byte(testManifest), 0o644); err != nil {
		t.Fatalf("failed to create test manifest: %v", err)
	}
	return path
}

// resetFlags restores every global flag to its default between test cases.
func resetFlags() {
	verbose = false
	quiet = false
	jsonOut = false
	addKind = "sourcecode"
	addGroup = ""
	addPhase = ""
	addNoBuild = false
	addCreateGroups = false
	addDryRun = false
	removeDryRun = false
	applyStrict = false
	applyCreateGroups = false
	applyDryRun = false
	applyPhase = ""
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	return buf.String(), fnErr
}

// assertJSON checks that output is valid JSON
func assertJSON(t *testing.T, output string) {
	t.Helper()
	var result interface{}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}

// assertNotContains checks that output doesn't contain unwanted strings
func assertNotContains(t *testing.T, output string, unwanted []string) {
	t.Helper()
	for _, dont := range unwanted {
		if strings.Contains(output, dont) {
			t.Errorf("output contains unwanted string %q\nGot: %s", dont, output)
		}
	}
}
