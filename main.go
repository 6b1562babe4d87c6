package main

import (
	"fmt"
	"os"
	"topo/config"
	"topo/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries state shared by every subcommand.
type app struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "topo",
		Short: "Procedural topographic map generator",
		Long: `topo synthesizes a noise heightfield, traces iso-contours with marching
squares and renders them as a topographic map with streams, named lakes and
named peaks.

Settings come from a YAML config file (see "topo config init"), TOPO_*
environment variables and command line flags, in increasing precedence.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			if a.logLevel != "" {
				cfg.Logging.Level = a.logLevel
			}
			a.cfg = cfg

			a.logger, err = logging.New(cfg.Logging)
			if err != nil {
				return err
			}
			a.logger.Debug("config loaded", zap.String("path", a.configPath))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "topo.yaml", "Config file path")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	root.AddCommand(newGenerateCmd(a))
	root.AddCommand(newPreviewCmd(a))
	root.AddCommand(newConfigCmd(a))
	root.AddCommand(newFormatsCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
