package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/vetclinic/internal/app"
	"github.com/MrJamesThe3rd/vetclinic/internal/config"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := app.Open(ctx, cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	services := app.NewServices(db, cfg)

	if err := app.Serve(ctx, cfg, services.Handler(cfg)); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
