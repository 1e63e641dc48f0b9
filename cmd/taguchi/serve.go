package main

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-taguchi/internal/server"
)

func newServeCommand(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			if strings.ToLower(a.cfg.Log.Level) != "debug" {
				gin.SetMode(gin.ReleaseMode)
			}

			router := server.SetupRouter(server.Options{
				Orchestrator:  a.orch,
				Logger:        a.logger,
				MaxBodyBytes:  a.cfg.Server.MaxBodyBytes,
				DefaultFormat: a.cfg.Generate.Format,
			})
			return server.ListenAndServe(cmd.Context(), addr, router, a.logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}
