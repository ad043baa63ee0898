package manifest_test

import (
	"fmt"

	"manifestkit/pkg/manifest"
)

// Example shows registering one artifact in a manifest file.
func Example() {
	sum, err := manifest.AddArtifact("project.manifest", manifest.AddOp{
		Name:      "Parser.src",
		Path:      "Core/Parser.src",
		Kind:      "sourcecode",
		GroupPath: []string{"Core"},
		Build:     true,
	}, nil)
	if err != nil {
		fmt.Printf("add failed: %v\n", err)
		return
	}
	fmt.Println(sum.String())
}

// ExampleApply demonstrates a declarative batch: removes run before adds, so
// one request can replace an artifact in place.
func ExampleApply() {
	req := manifest.EditRequest{
		Remove: []manifest.RemoveOp{{Name: "Legacy.src"}},
		Add: []manifest.AddOp{{
			Name:      "Modern.src",
			Path:      "Core/Modern.src",
			Kind:      "sourcecode",
			GroupPath: []string{"Core"},
			Build:     true,
		}},
	}

	opts := &manifest.Options{
		Edit: manifest.EditOptions{CreateGroups: true},
	}
	if _, err := manifest.Apply("project.manifest", req, opts); err != nil {
		fmt.Printf("apply failed: %v\n", err)
	}
}

// ExampleValidate demonstrates a read-only integrity check.
func ExampleValidate() {
	if err := manifest.Validate("project.manifest"); err != nil {
		fmt.Printf("manifest is inconsistent: %v\n", err)
		return
	}
	fmt.Println("manifest is consistent")
}
