package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"athletrack/backend/internal/config"
	"athletrack/backend/internal/logging"
)

var (
	configPath string
	cfg        config.Config
)

var rootCmd = &cobra.Command{
	Use:   "athletrack",
	Short: "AthleTrack fitness tracking backend",
	Long: `AthleTrack serves the REST API for logging workouts, sets and body
measurements, and computes personal records from the logged history.

COMMANDS:

  serve     Start the HTTP server (default)
  migrate   Apply the database schema and install the shared exercise library
  version   Print build information

CONFIGURATION:

  Settings are read from config.yaml in --config, overridden by environment
  variables such as DATABASE_DRIVER or JWT_SECRET. A .env file next to the
  config is loaded first when present.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("could not load config: %w", err)
		}

		logging.Setup(logging.LoggerSetupParams{
			LogFileName:   cfg.Log.File,
			LogToStdout:   cfg.Log.Stdout,
			LogLevel:      cfg.Log.Level,
			LogFormatJSON: cfg.Log.JSON,
		})
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".", "directory holding config.yaml and .env")
	rootCmd.AddCommand(serveCmd, migrateCmd, versionCmd)
}
