package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "http://localhost:8080"

type HealthCheckCommand struct {
	client *http.Client
}

func (c *HealthCheckCommand) Name() string {
	return "health-check"
}

func (c *HealthCheckCommand) Description() string {
	return "Check liveness and readiness of a running server ([base-url])"
}

func (c *HealthCheckCommand) Run(args []string) error {
	baseURL := defaultBaseURL
	if len(args) > 0 {
		baseURL = strings.TrimRight(args[0], "/")
	}

	PrintHeader(fmt.Sprintf("Health Check (%s)", baseURL))

	for _, path := range []string{"/healthz", "/readyz"} {
		start := time.Now()
		if err := c.check(baseURL + path); err != nil {
			PrintError("%s failed: %v", path, err)
			return err
		}
		duration := time.Since(start)

		if duration > 1*time.Second {
			PrintWarning("%s slow response time (%v)", path, duration)
		} else {
			PrintSuccess("%s passed (response time: %v)", path, duration)
		}
	}
	return nil
}

func (c *HealthCheckCommand) check(url string) error {
	client := c.client
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}

	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
