package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-taguchi/pkg/tui"
)

func newNewCommand(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Build a definition interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			def, err := a.newBuilder(cmd.OutOrStdout()).Build(cmd.Context())
			if errors.Is(err, tui.ErrAborted) {
				return errors.New("aborted")
			}
			if err != nil {
				return err
			}

			text := def.Format()
			if output == "" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), text)
				return err
			}
			if err := os.WriteFile(output, []byte(text), 0o644); err != nil {
				return fmt.Errorf("write definition: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Definition written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the .tgu file here instead of stdout")
	return cmd
}
