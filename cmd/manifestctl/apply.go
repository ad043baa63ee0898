package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"manifestkit/pkg/manifest"
)

var (
	applyStrict       bool
	applyCreateGroups bool
	applyDryRun       bool
	applyPhase        string
)

func init() {
	cmd := newApplyCmd()
	cmd.Flags().BoolVar(&applyStrict, "strict", false, "Abort the batch on the first per-operation failure")
	cmd.Flags().BoolVar(&applyCreateGroups, "create-groups", false, "Auto-create missing intermediate groups")
	cmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "Edit and validate without writing")
	cmd.Flags().StringVar(&applyPhase, "phase", "", "Default build phase for add operations")
	rootCmd.AddCommand(cmd)
}

func newApplyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply <manifest> <request.yaml>",
		Short: "Apply a declarative edit request",
		Long: `The apply command runs a batch of remove and add operations described in a
YAML request file. Removes run first, then adds, each in request order.
Without --strict, per-artifact failures are reported in the summary and the
remaining operations still run; the result is only written when it passes
validation.

Example request:
  remove:
    - name: Old.src
  add:
    - name: B.src
      path: Models/B.src
      kind: sourcecode
      group: [Models]

Example:
  manifestctl apply project.pbxproj changes.yaml
  manifestctl apply project.pbxproj changes.yaml --strict --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(args)
		},
	}
	return cmd
}

func runApply(args []string) error {
	manifestPath := args[0]
	requestPath := args[1]

	req, err := manifest.LoadRequest(requestPath)
	if err != nil {
		return fmt.Errorf("failed to load request: %w", err)
	}

	opts := &manifest.Options{Logger: newLogger()}
	opts.Edit.Strict = applyStrict
	opts.Edit.CreateGroups = applyCreateGroups
	opts.Edit.DefaultPhase = applyPhase
	opts.Write.DryRun = applyDryRun

	sum, err := manifest.Apply(manifestPath, req, opts)
	if err != nil {
		return fmt.Errorf("failed to apply request: %w", err)
	}

	if jsonOut {
		if jsonErr := printJSON(sum); jsonErr != nil {
			return jsonErr
		}
	} else {
		printInfo("\nApplied %s to %s\n", requestPath, manifestPath)
		for _, c := range sum.Created {
			printInfo("  + %s (%s)\n", c.Name, c.FileRef)
		}
		for _, n := range sum.Removed {
			printInfo("  - %s\n", n)
		}
		for _, n := range sum.Skipped {
			printInfo("  = %s (no change)\n", n)
		}
		for _, e := range sum.Errors {
			printInfo("  ! %s: %s\n", e.Name, e.Err)
		}
		printInfo("\n✓ %s\n", sum.String())
	}

	if sum.Failed() {
		return fmt.Errorf("%d operation(s) failed", len(sum.Errors))
	}
	return nil
}
