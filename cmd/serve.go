package main

import (
	"fmt"

	"github.com/Shugur-Network/podreader/internal/application"
	"github.com/Shugur-Network/podreader/internal/config"
	"github.com/Shugur-Network/podreader/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the message page over HTTP",
		Long: `Serve the message page on / and /index.php, health probes on /health and
Prometheus metrics on a separate listener. Every page request opens its own
MySQL connection using the MYSQL_* variables as they are at that moment.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("addr") {
				cfg.Server.Addr, _ = flags.GetString("addr")
			}
			if flags.Changed("metrics-addr") {
				cfg.Metrics.Addr, _ = flags.GetString("metrics-addr")
			}

			ctx := cmd.Context()
			logger.Info("Starting podreader...", zap.String("version", config.Version))

			app, err := application.New(ctx, cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			if err := app.Start(); err != nil {
				return fmt.Errorf("failed to start: %w", err)
			}

			var serveErr error
			select {
			case <-ctx.Done():
				logger.Info("Shutdown signal received, initiating graceful shutdown...")
			case serveErr = <-app.Errors():
			}

			if err := app.Shutdown(); err != nil && serveErr == nil {
				serveErr = err
			}
			_ = logger.Shutdown()
			return serveErr
		},
	}
	cmd.Flags().String("addr", "", "Page listen address, overrides server.addr")
	cmd.Flags().String("metrics-addr", "", "Metrics listen address, overrides metrics.addr")
	return cmd
}
