package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"tribewave/internal/config"
	"tribewave/internal/database"
	"tribewave/internal/observability"
	"tribewave/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	adminPassword := flag.String("admin-password", "changeme123", "password for the seeded admin account")
	demo := flag.Int("demo", 0, "also generate N demo posts/members per board and tribe")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	observability.Init(cfg.Env)

	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("database connection failed", "err", err)
		os.Exit(1)
	}

	if err := seed.Run(context.Background(), db, *adminPassword); err != nil {
		slog.Error("seed failed", "err", err)
		os.Exit(1)
	}
	if *demo > 0 {
		if err := seed.Demo(context.Background(), db, *demo); err != nil {
			slog.Error("demo seed failed", "err", err)
			os.Exit(1)
		}
		slog.Info("demo data generated", "per_group", *demo)
	}
	slog.Info("seed completed")
}
