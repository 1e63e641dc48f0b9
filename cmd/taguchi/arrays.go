package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-taguchi/pkg/catalog"
)

func newListArraysCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list-arrays",
		Short: "List the orthogonal arrays in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Available orthogonal arrays:")
			printArrays(out, a.orch.Catalog().All())
			return nil
		},
	}
}

func printArrays(out io.Writer, arrays []catalog.Descriptor) {
	for _, d := range arrays {
		fmt.Fprintf(out, "  %-5s (%4d runs, %4d cols, %d levels)\n", d.Name, d.Runs, d.Columns, d.Levels)
	}
}
