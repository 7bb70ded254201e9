package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"homework_bot/internal/config"
	"homework_bot/internal/poller"
	"homework_bot/internal/practicum"
	"homework_bot/internal/storage"
	"homework_bot/internal/telegram"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "critical", true, "error", err)
		os.Exit(1)
	}

	log := newLogger(cfg.LogLevel)

	sender, err := telegram.New(cfg.TelegramToken, cfg.TelegramChatID, log)
	if err != nil {
		log.Error("create telegram sender", "error", err)
		os.Exit(1)
	}

	var journal storage.Journal = storage.Nop{}
	if cfg.HistoryDBPath != "" {
		if dir := filepath.Dir(cfg.HistoryDBPath); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				log.Error("create data directory", "path", dir, "error", err)
				os.Exit(1)
			}
		}
		store, err := storage.NewSQLite(cfg.HistoryDBPath)
		if err != nil {
			log.Error("open history database", "path", cfg.HistoryDBPath, "error", err)
			os.Exit(1)
		}
		journal = store
	}
	defer func() { _ = journal.Close() }()

	client := practicum.New(http.DefaultClient, cfg.Endpoint, cfg.PracticumToken)
	p := poller.New(client, sender, journal, log, cfg.PollInterval, cfg.PollJitter)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("starting homework poller", "endpoint", cfg.Endpoint, "interval", cfg.PollInterval)

	p.Run(ctx)

	log.Info("poller stopped")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
