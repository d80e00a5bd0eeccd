package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tribewave/internal/config"
	"tribewave/internal/observability"
	"tribewave/internal/server"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set environment variables directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	observability.Init(cfg.Env)

	srv, err := server.NewServer(cfg)
	if err != nil {
		slog.Error("server init failed", "err", err)
		os.Exit(1)
	}

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	if err := srv.StartContentWatcher(watchCtx); err != nil {
		slog.Warn("content watcher failed to start", "err", err)
	}

	go func() {
		slog.Info("listening", "port", cfg.Port)
		if err := srv.Start(); err != nil {
			slog.Error("server stopped", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown failed", "err", err)
	}
	slog.Info("server stopped cleanly")
}
