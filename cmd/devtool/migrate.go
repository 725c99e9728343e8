package main

import (
	"context"

	"github.com/osse101/FishBot_Go/internal/database"
)

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string { return "migrate" }

func (c *MigrateCommand) Description() string {
	return "Apply the embedded database migrations"
}

func (c *MigrateCommand) Run(args []string) error {
	PrintHeader("Migrating database")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), 2, cfg.DBMaxIdleTime, cfg.DBMaxConnLife)
	if err != nil {
		return err
	}
	defer pool.Close()

	version, err := database.Migrate(ctx, pool)
	if err != nil {
		return err
	}
	PrintSuccess("Schema at version %d", version)
	return nil
}
