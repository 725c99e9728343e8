// Package dbtest starts a throwaway PostgreSQL container for integration tests.
package dbtest

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Image is the PostgreSQL image used by integration tests
const Image = "postgres:15-alpine"

// StartPostgres runs a container and returns its connection string and a
// terminate func. Docker being unavailable is reported as an error, never a panic.
func StartPostgres(ctx context.Context) (connStr string, terminate func(), err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("start postgres container: %v", r)
		}
	}()

	c, err := postgres.Run(ctx,
		Image,
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return "", nil, err
	}

	connStr, err = c.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = c.Terminate(ctx)
		return "", nil, err
	}
	return connStr, func() {
		if err := c.Terminate(context.Background()); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}, nil
}
