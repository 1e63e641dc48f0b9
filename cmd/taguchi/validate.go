package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCommand(a *app) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a definition without generating runs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := a.request(cmd, args[0], input)
			if err != nil {
				return err
			}
			result, err := a.orch.Validate(cmd.Context(), req)
			if err != nil {
				return err
			}
			if !result.Valid {
				msg := "invalid definition"
				if len(result.Issues) > 0 {
					msg = result.Issues[0].Message
				}
				return errors.New("invalid definition " + args[0] + ": " + msg)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Valid .tgu file: %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Input syntax: tgu, yaml, json, hcl (default from extension)")
	return cmd
}
