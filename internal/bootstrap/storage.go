package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/FishBot_Go/internal/config"
	"github.com/osse101/FishBot_Go/internal/database"
	"github.com/osse101/FishBot_Go/internal/database/postgres"
	"github.com/osse101/FishBot_Go/internal/repository"
	"github.com/osse101/FishBot_Go/internal/repository/memory"
)

// OpenStore connects the configured repository backend. The returned close
// func releases its resources and is never nil.
func OpenStore(ctx context.Context, cfg *config.Config) (repository.Store, func(), error) {
	switch cfg.Storage {
	case config.StorageMemory:
		slog.Warn(LogMsgStorageReady, "backend", config.StorageMemory, "persistent", false)
		return memory.NewStore(), func() {}, nil

	case config.StoragePostgres, "":
		pool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxIdleTime, cfg.DBMaxConnLife)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", ErrMsgConnectDatabase, err)
		}
		if cfg.RunMigrations {
			if _, err := database.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, nil, fmt.Errorf("%s: %w", ErrMsgMigrate, err)
			}
		}
		slog.Info(LogMsgStorageReady, "backend", config.StoragePostgres)
		return postgres.NewStore(pool), pool.Close, nil
	}

	return nil, nil, fmt.Errorf("%s: %q", ErrMsgUnknownStorage, cfg.Storage)
}
