package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-taguchi/internal/config"
	pkgdefinition "github.com/goliatone/go-taguchi/pkg/definition"
	"github.com/goliatone/go-taguchi/pkg/orchestrator"
	"github.com/goliatone/go-taguchi/pkg/tui"
)

// app carries state shared by every subcommand once the root pre-run has
// loaded configuration.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg    *config.Config
	logger *slog.Logger
	orch   *orchestrator.Orchestrator

	// newBuilder is swapped in tests to script the interactive session.
	newBuilder func(out io.Writer) *tui.Builder
}

func newApp() *app {
	return &app{
		newBuilder: func(out io.Writer) *tui.Builder {
			return tui.NewBuilder(tui.WithPromptDriver(tui.NewSurveyDriver(out)))
		},
	}
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "taguchi",
		Short:         "Design experiments on Taguchi orthogonal arrays",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log format: text or json")

	root.AddCommand(
		newGenerateCommand(a),
		newValidateCommand(a),
		newListArraysCommand(a),
		newSuggestCommand(a),
		newNewCommand(a),
		newServeCommand(a),
		newVersionCommand(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = cfg.Log.Logger(cmd.ErrOrStderr())
	a.orch = orchestrator.New(orchestrator.WithDefaultRenderer(cfg.Generate.Format))
	a.logger.Debug("config loaded", "path", a.configPath, "format", cfg.Generate.Format)
	return nil
}

// request turns a CLI argument into a pipeline request. "-" reads stdin and
// http(s) arguments are fetched.
func (a *app) request(cmd *cobra.Command, arg, input string) (orchestrator.Request, error) {
	format, err := pkgdefinition.ParseFormat(input)
	if err != nil {
		return orchestrator.Request{}, err
	}

	switch {
	case arg == "-":
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(cmd.InOrStdin()); err != nil {
			return orchestrator.Request{}, fmt.Errorf("read stdin: %w", err)
		}
		doc, err := pkgdefinition.NewDocument(pkgdefinition.SourceFromBytes("stdin", buf.Bytes()), buf.Bytes())
		if err != nil {
			return orchestrator.Request{}, err
		}
		return orchestrator.Request{Document: &doc, Format: format}, nil
	case strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://"):
		if _, err := url.ParseRequestURI(arg); err != nil {
			return orchestrator.Request{}, fmt.Errorf("invalid URL %q: %w", arg, err)
		}
		return orchestrator.Request{Source: pkgdefinition.SourceFromURL(arg), Format: format}, nil
	default:
		return orchestrator.Request{Source: pkgdefinition.SourceFromFile(arg), Format: format}, nil
	}
}
