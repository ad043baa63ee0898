package main

import (
	"github.com/spf13/cobra"

	"manifestkit/pkg/manifest"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <manifest>",
		Short: "Show manifest table sizes and build phases",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

func runInfo(args []string) error {
	doc, err := manifest.ParseFile(args[0])
	if err != nil {
		return err
	}

	stats := doc.Stats()
	if jsonOut {
		return printJSON(map[string]interface{}{
			"file":   args[0],
			"stats":  stats,
			"phases": doc.Phases(),
		})
	}

	printInfo("\n%s:\n", args[0])
	printInfo("  File references: %d\n", stats.FileReferences)
	printInfo("  Build wrappers:  %d\n", stats.Wrappers)
	printInfo("  Groups:          %d\n", stats.Groups)
	printInfo("  Build phases:    %d\n", stats.Phases)
	for _, p := range doc.Phases() {
		printInfo("    %s: %d entries\n", p.Name, len(p.Entries))
	}
	return nil
}
