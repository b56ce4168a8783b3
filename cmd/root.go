package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Shugur-Network/podreader/internal/config"
	"github.com/Shugur-Network/podreader/internal/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile string         // Path to custom config file (optional)
	envFile string         // dotenv file loaded before anything else (optional)
	cfg     *config.Config // Global reference to loaded configuration
)

// rootCmd defines the main CLI command for podreader
var rootCmd = &cobra.Command{
	Use:   "podreader",
	Short: "podreader lists stored messages and reports which pod served them",
	Long: `podreader connects to MySQL on every request, lists the messages table and
reports the pod and node that answered. It is meant to be deployed in several
regions to show which replica handled a request.`,
	Example: `
  podreader serve
  podreader serve --addr :8080 --metrics-addr :9090
  podreader render --env-file .env
  podreader config --config /path/to/config.yaml`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if envFile != "" {
			// Overload: the file is meant to win over a stale shell.
			if err := godotenv.Overload(envFile); err != nil {
				return fmt.Errorf("failed to load env file %s: %w", envFile, err)
			}
		}

		// Skip config loading for version command
		if cmd.Name() == "version" {
			return nil
		}

		var err error
		cfg, err = config.Load(cfgFile, nil)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		flags := cmd.Flags()
		if flags.Changed("log-level") {
			cfg.Logging.Level, _ = flags.GetString("log-level")
			if err := logger.UpdateLevel(cfg.Logging.Level); err != nil {
				return fmt.Errorf("invalid --log-level: %w", err)
			}
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		// Default behavior: show help when no subcommand is provided
		if err := cmd.Help(); err != nil {
			fmt.Fprintf(os.Stderr, "Error displaying help: %v\n", err)
		}
	},
}

// Execute runs the root command with the provided context
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// logToStderr moves console logging off stdout for commands whose stdout is
// the product.
func logToStderr(c *config.Config) error {
	if c.Logging.FilePath != "" {
		return nil
	}
	return logger.Init(
		logger.WithLevel(c.Logging.Level),
		logger.WithFormat(c.Logging.Format),
		logger.WithVersion(config.Version),
		logger.WithComponent("podreader"),
		logger.WithOutput(os.Stderr),
	)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to custom config file (optional)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Load environment variables from a dotenv file first")
	rootCmd.PersistentFlags().String("log-level", "info", "Logging level (debug, info, warn, error, fatal)")

	rootCmd.AddCommand(newServeCmd(), newRenderCmd(), newConfigCmd(), newVersionCmd())
}
