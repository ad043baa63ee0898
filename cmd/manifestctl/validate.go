package main

import (
	"github.com/spf13/cobra"

	"manifestkit/pkg/manifest"
)

func init() {
	rootCmd.AddCommand(newValidateCmd())
}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <manifest>",
		Short: "Check manifest referential integrity",
		Long: `The validate command parses the manifest and checks every integrity
invariant: unique identifier definitions, wrapper and phase linkage, group
placement, and group tree shape. Nothing is modified.

Example:
  manifestctl validate project.pbxproj
  manifestctl validate project.pbxproj --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args)
		},
	}
	return cmd
}

func runValidate(args []string) error {
	manifestPath := args[0]

	err := manifest.Validate(manifestPath)

	result := map[string]interface{}{
		"file":  manifestPath,
		"valid": err == nil,
	}
	if err != nil {
		result["error"] = err.Error()
	}

	if jsonOut {
		if jsonErr := printJSON(result); jsonErr != nil {
			return jsonErr
		}
		return err
	}

	printInfo("\nValidating %s...\n\n", manifestPath)
	if err != nil {
		printInfo("  ✗ %v\n\nResult: ✗ INVALID\n", err)
		return err
	}
	printInfo("  ✓ Identifier definitions unique\n")
	printInfo("  ✓ Wrapper and phase linkage consistent\n")
	printInfo("  ✓ Every file reference placed in one group\n")
	printInfo("  ✓ Group tree well-formed\n")
	printInfo("\nResult: ✓ VALID\n")
	return nil
}
