package main

import (
	"github.com/spf13/cobra"

	"github.com/tair/catalog-mvc/internal/config"
	"github.com/tair/catalog-mvc/pkg/logger"
)

var cfg *config.Config

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "catalog",
		Short:         "Product catalog web application",
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = config.Load()
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}

			logger.Init(cfg.ServiceName, cfg.IsDevelopment())
			logger.SetLevel(cfg.LogLevel)
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")

	serve := serveCmd()
	root.AddCommand(serve, migrateCmd(), eventsCmd())

	// serve is the default command
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())
	return root
}
