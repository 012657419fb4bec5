package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/koenbroumels/zelf-bar-dienst/internal/api"
	"github.com/koenbroumels/zelf-bar-dienst/internal/config"
	"github.com/koenbroumels/zelf-bar-dienst/internal/service"
	"github.com/koenbroumels/zelf-bar-dienst/internal/storage"
	"github.com/koenbroumels/zelf-bar-dienst/internal/storage/bolt"
	"github.com/koenbroumels/zelf-bar-dienst/internal/storage/sqlite"
	"github.com/koenbroumels/zelf-bar-dienst/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	kv, err := openKV(cfg)
	if err != nil {
		slog.Error("failed to initialize storage", "backend", cfg.StorageBackend, "error", err)
		os.Exit(1)
	}
	store := storage.New(kv)
	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("failed to close store", "error", err)
		}
	}()
	slog.Info("storage initialized", "backend", cfg.StorageBackend, "path", cfg.DBPath)

	server := api.NewServer(
		service.NewSettingsService(store),
		service.NewItemService(store),
		service.NewPaymentService(store),
	)

	slog.Info("server starting", "address", cfg.ListenAddr, "url", fmt.Sprintf("http://localhost%s", cfg.ListenAddr))
	if err := http.ListenAndServe(cfg.ListenAddr, server.Router()); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func openKV(cfg *config.Config) (storage.KV, error) {
	switch cfg.StorageBackend {
	case config.BackendSQLite:
		return sqlite.New(cfg.DBPath)
	case config.BackendMemory:
		return storage.NewMemoryKV(), nil
	default:
		return bolt.New(cfg.DBPath)
	}
}
