package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"manifestkit/pkg/manifest"
)

var removeDryRun bool

func init() {
	cmd := newRemoveCmd()
	cmd.Flags().BoolVar(&removeDryRun, "dry-run", false, "Edit and validate without writing")
	rootCmd.AddCommand(cmd)
}

func newRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <manifest> <name>",
		Short: "Remove an artifact and every linked record",
		Long: `The remove command deletes the named artifact's file reference, its build
wrapper, the build phase entry, and the group placement in one cascade.
Removing a name that is not registered succeeds without changing anything.

Example:
  manifestctl remove project.pbxproj Old.src`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(args)
		},
	}
	return cmd
}

func runRemove(args []string) error {
	manifestPath := args[0]
	name := args[1]

	opts := &manifest.Options{Logger: newLogger()}
	opts.Write.DryRun = removeDryRun

	sum, err := manifest.RemoveArtifact(manifestPath, name, opts)
	if err != nil {
		return fmt.Errorf("failed to remove artifact: %w", err)
	}

	if jsonOut {
		return printJSON(sum)
	}

	if len(sum.Removed) > 0 {
		printInfo("\n✓ Removed %s from %s\n", name, manifestPath)
	} else {
		printInfo("\n✓ %s not registered in %s, nothing to do\n", name, manifestPath)
	}
	return nil
}
