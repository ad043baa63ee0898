package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"manifestkit/pkg/manifest"
)

var (
	addKind         string
	addGroup        string
	addPhase        string
	addNoBuild      bool
	addCreateGroups bool
	addDryRun       bool
)

func init() {
	cmd := newAddCmd()
	cmd.Flags().StringVar(&addKind, "kind", "sourcecode", "Artifact kind tag")
	cmd.Flags().StringVar(&addGroup, "group", "", "Target group path, segments separated by '/'")
	cmd.Flags().StringVar(&addPhase, "phase", "", "Build phase name (default: first phase in the document)")
	cmd.Flags().BoolVar(&addNoBuild, "no-build", false, "Register the reference only, without a build phase entry")
	cmd.Flags().BoolVar(&addCreateGroups, "create-groups", false, "Auto-create missing intermediate groups")
	cmd.Flags().BoolVar(&addDryRun, "dry-run", false, "Edit and validate without writing")
	rootCmd.AddCommand(cmd)
}

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <manifest> <name> <path>",
		Short: "Register an artifact in the manifest",
		Long: `The add command registers one artifact: a file reference, its placement
in the group tree, and (unless --no-build) a build wrapper appended to a
build phase. Re-adding an already registered artifact is a no-op.

Example:
  manifestctl add project.pbxproj B.src Models/B.src --group Models
  manifestctl add project.pbxproj Icon.png Assets/Icon.png --group Assets --no-build
  manifestctl add project.pbxproj C.src Deep/Sub/C.src --group Deep/Sub --create-groups`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(args)
		},
	}
	return cmd
}

func runAdd(args []string) error {
	manifestPath := args[0]

	op := manifest.AddOp{
		Name:  args[1],
		Path:  args[2],
		Kind:  addKind,
		Build: !addNoBuild,
		Phase: addPhase,
	}
	if addGroup != "" {
		op.GroupPath = strings.Split(addGroup, "/")
	}

	opts := &manifest.Options{Logger: newLogger()}
	opts.Edit.CreateGroups = addCreateGroups
	opts.Write.DryRun = addDryRun

	sum, err := manifest.AddArtifact(manifestPath, op, opts)
	if err != nil {
		return fmt.Errorf("failed to add artifact: %w", err)
	}

	if jsonOut {
		return printJSON(sum)
	}

	printInfo("\nAdding to %s:\n", manifestPath)
	printInfo("  Name: %s\n", op.Name)
	printInfo("  Path: %s\n", op.Path)
	for _, c := range sum.Created {
		printInfo("  FileRef: %s\n", c.FileRef)
		if c.Wrapper != "" {
			printInfo("  Wrapper: %s\n", c.Wrapper)
		}
	}
	for range sum.Skipped {
		printInfo("  Already registered, nothing to do\n")
	}
	printInfo("\n✓ %s\n", sum.String())
	return nil
}
