package main

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/FishBot_Go/internal/database"
)

const (
	waitForDBAttempts = 30
	waitForDBInterval = 2 * time.Second
)

type WaitForDBCommand struct{}

func (c *WaitForDBCommand) Name() string { return "wait-for-db" }

func (c *WaitForDBCommand) Description() string {
	return "Wait for database to be ready (with retries)"
}

func (c *WaitForDBCommand) Run(args []string) error {
	PrintHeader("Waiting for database...")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	for i := 0; i < waitForDBAttempts; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), waitForDBInterval)
		pool, err := database.NewPool(ctx, cfg.GetDBConnString(), 1, time.Minute, time.Minute)
		cancel()
		if err == nil {
			pool.Close()
			PrintSuccess("Database is ready")
			return nil
		}

		fmt.Printf("Database not ready (%d/%d): %v\n", i+1, waitForDBAttempts, err)
		time.Sleep(waitForDBInterval)
	}

	return fmt.Errorf("database failed to become ready after %d attempts", waitForDBAttempts)
}
