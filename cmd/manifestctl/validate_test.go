package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateCommand(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(string) string
		wantErr     bool
		wantJSON    bool
		wantContain []string
	}{
		{
			name:        "valid manifest",
			wantContain: []string{"VALID", "Group tree well-formed"},
		},
		{
			name: "dangling wrapper",
			mutate: func(text string) string {
				return strings.Replace(text, "fileRef = SF001", "fileRef = SF999", 1)
			},
			wantErr:     true,
			wantContain: []string{"INVALID"},
		},
		{
			name:        "json output",
			wantJSON:    true,
			wantContain: []string{"\"valid\": true"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			jsonOut = tt.wantJSON

			text := testManifest
			if tt.mutate != nil {
				text = tt.mutate(text)
			}
			path := filepath.Join(t.TempDir(), "project.manifest")
			if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
				t.Fatalf("failed to write manifest: %v", err)
			}

			output, err := captureOutput(t, func() error {
				return runValidate([]string{path})
			})
			if (err != nil) != tt.wantErr {
				t.Fatalf("runValidate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantJSON {
				assertJSON(t, output)
			}
			assertContains(t, output, tt.wantContain)
		})
	}
}
