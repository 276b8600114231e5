package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"itemdeck/internal/cache"
	"itemdeck/internal/catalog"
	"itemdeck/internal/config"
	"itemdeck/internal/storage"
	"itemdeck/internal/watcher"
)

func main() {
	cfg, err := config.Load()
	must(err)
	must(cfg.Require("ITEMS_API_BASE_URL", cfg.ItemsAPIBaseURL))

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	payloadCache, closeCache, err := cache.FromConfig(cfg)
	must(err)
	defer closeCache()

	var opts []catalog.ClientOption
	if payloadCache != nil {
		opts = append(opts, catalog.WithCache(payloadCache))
	}

	svc := watcher.NewService(db, cfg, logger, opts...)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger.Info("watching item api", "interval_sec", cfg.WatchIntervalSec, "auto_export", cfg.WatchAutoExport)
	must(svc.Run(ctx))
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
