package main

import (
	"fmt"
	"net/http"
	"os"
	"time"
)

const (
	defaultAPIURL   = "http://localhost:8080"
	slowHealthCheck = time.Second
)

type HealthCheckCommand struct{}

func (c *HealthCheckCommand) Name() string { return "health-check" }

func (c *HealthCheckCommand) Description() string {
	return "Check the API readiness endpoint (optional base URL argument)"
}

func (c *HealthCheckCommand) Run(args []string) error {
	base := os.Getenv("API_URL")
	if len(args) > 0 {
		base = args[0]
	}
	if base == "" {
		base = defaultAPIURL
	}
	PrintHeader(fmt.Sprintf("Health Check (%s)", base))

	client := &http.Client{Timeout: 5 * time.Second}
	start := time.Now()
	resp, err := client.Get(base + "/readyz")
	if err != nil {
		return err
	}
	resp.Body.Close()
	duration := time.Since(start)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("readiness check returned %d", resp.StatusCode)
	}
	if duration > slowHealthCheck {
		PrintWarning("Health check passed but slow (%v)", duration)
	} else {
		PrintSuccess("Health check passed (response time: %v)", duration)
	}
	return nil
}
