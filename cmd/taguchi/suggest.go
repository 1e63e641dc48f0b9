package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSuggestCommand(a *app) *cobra.Command {
	var (
		all   bool
		input string
	)

	cmd := &cobra.Command{
		Use:   "suggest <file>",
		Short: "Print the smallest array that fits a definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := a.request(cmd, args[0], input)
			if err != nil {
				return err
			}
			candidates, err := a.orch.Candidates(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !all {
				fmt.Fprintln(out, candidates[0].Name)
				return nil
			}
			fmt.Fprintln(out, "Arrays that fit, best first:")
			printArrays(out, candidates)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "List every array that fits, best first")
	cmd.Flags().StringVar(&input, "input", "", "Input syntax: tgu, yaml, json, hcl (default from extension)")
	return cmd
}
