package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/FishBot_Go/internal/bootstrap"
	"github.com/osse101/FishBot_Go/internal/config"
)

// @title FishBot API
// @version 1.0
// @description Fishing progression and economy engine behind the chat bots.
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	bootstrap.SetupLogger(cfg)

	if err := run(cfg); err != nil {
		slog.Error("FishBot exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}

	cat, err := bootstrap.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		closeStore()
		return err
	}

	svc, err := bootstrap.InitializeServices(cfg, store, cat, bootstrap.InitializeEventSystem())
	if err != nil {
		closeStore()
		return err
	}

	jobs, err := bootstrap.InitializeJobs(cfg, svc)
	if err != nil {
		closeStore()
		return err
	}
	jobs.Scheduler.Start()

	srv := bootstrap.NewServer(cfg, svc, jobs)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:     srv,
		Jobs:       jobs,
		CloseStore: closeStore,
	})
	return serveErr
}
