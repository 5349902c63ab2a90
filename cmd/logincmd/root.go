package main

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/logincmd/internal/config"
	"github.com/MrSnakeDoc/logincmd/internal/logger"
	"github.com/MrSnakeDoc/logincmd/internal/version"
)

// rootCmd serves when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "logincmd",
	Short: "Per-session login command scheduler",
	Long: `logincmd builds a plan of configured commands each time a character logs in
and dispatches them one per tick, honoring per-command delays and the
once-per-session policy. Configuration is read from LOGINCMD_* environment variables.`,
	Version:       version.String(),
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE:          runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(versionCmd)
}

// cliLogger keeps subcommand output readable: only warnings and errors are logged.
func cliLogger(cfg *config.Config) logger.Logger {
	level := "warn"
	if cfg.LogLevel == "debug" {
		level = "debug"
	}
	return logger.New(level, cfg.PrettyLog)
}
