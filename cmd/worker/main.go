package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"bookclub-backend/internal/config"
	"bookclub-backend/pkg/logger"
)

// The worker consumes background tasks (badge grants) and hosts the
// scheduler for recurring jobs (counter reconciliation).
func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.App.Environment)

	w, err := newWorker(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize worker: %v", err)
	}
	defer w.Close()

	if err := w.Run(ctx); err != nil {
		log.Fatalf("worker error: %v", err)
	}
}
