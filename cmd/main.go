package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"rp_market/internal/application"
	"rp_market/internal/config"
	"rp_market/pkg/contextx"
	"rp_market/pkg/logx"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config.Load", logx.Error(err))
		os.Exit(1)
	}

	log, err := logx.NewLogger(logx.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		slog.Error("logx.NewLogger", logx.Error(err))
		os.Exit(1)
	}

	slog.SetDefault(log)

	ctx = contextx.WithLogger(ctx, log)

	if err := application.Run(ctx, cfg); err != nil {
		log.Error("application failed", logx.Error(err))
		os.Exit(1) //nolint:gocritic
	}
}
