package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-taguchi/pkg/render"
)

func newGenerateCommand(a *app) *cobra.Command {
	var (
		format string
		array  string
		output string
		input  string
		title  string
		indent bool
	)

	cmd := &cobra.Command{
		Use:   "generate <file>",
		Short: "Generate the experiment runs for a definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := a.request(cmd, args[0], input)
			if err != nil {
				return err
			}
			req.Array = array
			req.Renderer = format
			req.RenderOptions = render.RenderOptions{
				Indent: indent || a.cfg.Generate.Indent,
				Title:  title,
			}

			a.logger.Debug("generating runs", "source", args[0], "renderer", format, "array", array)
			out, err := a.orch.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			if err := os.WriteFile(output, out, 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Runs written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Output format: text, json, csv, yaml, html (default from config)")
	cmd.Flags().StringVar(&array, "array", "", "Use this array instead of the definition's choice")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write output to a file instead of stdout")
	cmd.Flags().StringVar(&input, "input", "", "Input syntax: tgu, yaml, json, hcl (default from extension)")
	cmd.Flags().StringVar(&title, "title", "", "Title for the html run sheet")
	cmd.Flags().BoolVar(&indent, "indent", false, "Pretty print structured output")
	return cmd
}
