package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/FishBot_Go/internal/server"
)

// ShutdownComponents holds everything that needs an orderly stop
type ShutdownComponents struct {
	Server     *server.Server
	Jobs       *Jobs
	CloseStore func()
}

// GracefulShutdown stops accepting requests, lets in-flight jobs finish,
// then releases the worker pool and storage. Errors are logged and the
// sequence continues.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.Jobs != nil {
		if err := c.Jobs.Scheduler.Stop(ctx); err != nil {
			slog.Error(LogMsgSchedulerStopFailed, "error", err)
		}
		c.Jobs.Pool.Release()
	}

	if c.CloseStore != nil {
		c.CloseStore()
		slog.Info(LogMsgStorageClosed)
	}

	slog.Info(LogMsgServerStopped)
}
