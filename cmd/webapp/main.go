package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	pkgcache "github.com/hputnam/oddsboard/internal/pkg/cache"
	pkgconfig "github.com/hputnam/oddsboard/internal/pkg/config"
	"github.com/hputnam/oddsboard/internal/pkg/logging"
	"github.com/hputnam/oddsboard/internal/pkg/storage"
	"github.com/hputnam/oddsboard/internal/web"
)

const defaultConfigPath = "configs/oddsboard.yaml"

func main() {
	if err := run(); err != nil {
		slog.Error("Webapp failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", defaultConfigPath, "path to YAML config")
	flag.Parse()

	cfg, err := pkgconfig.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logging.Setup(cfg.Logging.Level, "webapp")

	store := storage.New(cfg.DataDir)
	resultCache := pkgcache.New(cfg.Cache.Size, cfg.Cache.TTL)
	server := web.New(cfg, store, resultCache)

	httpServer := &http.Server{
		Addr:         cfg.Web.Addr,
		Handler:      server,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Webapp listening", "addr", cfg.Web.Addr, "data_dir", cfg.DataDir)
		errCh <- httpServer.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case sig := <-sigCh:
		slog.Info("Received signal, shutting down", "signal", sig)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}
	return nil
}
