package main

import (
	"github.com/spf13/cobra"

	"manifestkit/pkg/manifest"
)

func init() {
	rootCmd.AddCommand(newTreeCmd())
}

func newTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree <manifest>",
		Short: "Print the group hierarchy with its files",
		Long: `The tree command prints the group tree in document order, with the file
display names placed at each node.

Example:
  manifestctl tree project.pbxproj`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(args)
		},
	}
	return cmd
}

func runTree(args []string) error {
	doc, err := manifest.ParseFile(args[0])
	if err != nil {
		return err
	}

	root := doc.GroupTree()
	if jsonOut {
		return printJSON(root)
	}

	printNode(root, "")
	return nil
}

func printNode(n *manifest.GroupNode, indent string) {
	// The root group has no name; the bare slash stands in for it.
	printInfo("%s%s/\n", indent, n.Name)
	for _, f := range n.Files {
		printInfo("%s  %s\n", indent, f)
	}
	for _, g := range n.Groups {
		printNode(g, indent+"  ")
	}
}
