package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-spectra/spectra"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "Print the group and dataset tree of an HDF5 file",
		Long: `inspect walks an HDF5 file and prints every group and dataset with its
shape and attribute names. Use it to find the paths for a new field
mapping entry.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nodes, err := spectra.Inspect(args[0])
			out := cmd.OutOrStdout()
			for _, n := range nodes {
				indent := strings.Repeat("  ", depth(n.Path))
				switch {
				case n.Err != nil:
					fmt.Fprintf(out, "%s%s: ERROR %v\n", indent, n.Path, n.Err)
				case n.Dataset:
					fmt.Fprintf(out, "%sDataset %q shape=%v attrs=%v\n", indent, n.Path, n.Shape, n.Attrs)
				default:
					fmt.Fprintf(out, "%sGroup %q attrs=%v\n", indent, n.Path, n.Attrs)
				}
			}
			return err
		},
	}
}

func depth(path string) int {
	path = strings.Trim(path, "/")
	if path == "" {
		return 0
	}
	return strings.Count(path, "/") + 1
}
