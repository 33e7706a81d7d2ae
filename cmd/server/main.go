package main

import (
	"log/slog"
	"os"

	"userdesk/internal/server/app"
	"userdesk/internal/server/config"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	application, err := app.New(cfg, version, buildDate, logger)
	if err != nil {
		logger.Error("failed to init server", "error", err)
		os.Exit(1)
	}
	if err := application.Run(); err != nil {
		logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}
