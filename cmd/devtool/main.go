package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/osse101/pisle-planner/internal/cli"
	"github.com/osse101/pisle-planner/internal/config"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRegistry().Dispatch(os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, cli.ErrNoCommand) {
			PrintError("%v", err)
		}
		os.Exit(1)
	}
}

func newRegistry() *cli.Registry {
	r := cli.NewRegistry("devtool")
	r.Register(&MigrateCommand{})
	r.Register(&WaitForDBCommand{})
	r.Register(&HealthCheckCommand{})
	return r
}

// dbConnString prefers DB_URL and falls back to the app's DB_* settings
func dbConnString() (string, error) {
	if url := os.Getenv("DB_URL"); url != "" {
		return url, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	return cfg.GetDBConnString(), nil
}
