package main

import (
	"github.com/Shugur-Network/podreader/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Long: `Print the merged configuration (defaults, config file, PODREADER_* variables)
and whether each connection variable is set. Connection values themselves are
never printed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := logToStderr(cfg); err != nil {
				return err
			}
			return config.Dump(cmd.OutOrStdout(), cfg, config.NewEnv())
		},
	}
}
