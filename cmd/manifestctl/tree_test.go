package main

import "testing"

func TestTreeCommand(t *testing.T) {
	resetFlags()
	path := writeTestManifest(t)

	output, err := captureOutput(t, func() error {
		return runTree([]string{path})
	})
	if err != nil {
		t.Fatalf("runTree() error = %v", err)
	}
	assertContains(t, output, []string{"/\n", "Models/", "A.src"})
}

func TestTreeCommand_JSON(t *testing.T) {
	resetFlags()
	jsonOut = true
	path := writeTestManifest(t)

	output, err := captureOutput(t, func() error {
		return runTree([]string{path})
	})
	if err != nil {
		t.Fatalf("runTree() error = %v", err)
	}
	assertJSON(t, output)
	assertContains(t, output, []string{"Models", "A.src"})
}

func TestInfoCommand(t *testing.T) {
	resetFlags()
	path := writeTestManifest(t)

	output, err := captureOutput(t, func() error {
		return runInfo([]string{path})
	})
	if err != nil {
		t.Fatalf("runInfo() error = %v", err)
	}
	assertContains(t, output, []string{
		"File references: 1",
		"Build wrappers:  1",
		"Groups:          2",
		"Sources: 1 entries",
	})
	assertNotContains(t, output, []string{"Sources: 2"})
}
