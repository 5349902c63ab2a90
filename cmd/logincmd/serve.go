package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/logincmd/internal/app"
	"github.com/MrSnakeDoc/logincmd/internal/config"
	"github.com/MrSnakeDoc/logincmd/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the scheduler and its HTTP API (default)",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)
	defer func() { _ = loggerClient.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, loggerClient)
	if err != nil {
		loggerClient.Error("❌ logincmd failed to start", logger.Error(err))
		return err
	}
	return a.Run(ctx)
}
