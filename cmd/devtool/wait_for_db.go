package main

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/pisle-planner/internal/database"
)

type WaitForDBCommand struct{}

func (c *WaitForDBCommand) Name() string {
	return "wait-for-db"
}

func (c *WaitForDBCommand) Description() string {
	return "Wait for database to be ready (with retries)"
}

func (c *WaitForDBCommand) Run(args []string) error {
	PrintHeader("Waiting for database...")

	connString, err := dbConnString()
	if err != nil {
		return err
	}

	maxRetries := 30
	retryInterval := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		pool, err := database.NewPool(context.Background(), connString, database.PoolConfig{MaxConns: 1})
		if err == nil {
			pool.Close()
			PrintSuccess("Database is ready")
			return nil
		}

		PrintInfo("Database not ready (%d/%d): %v", i+1, maxRetries, err)
		time.Sleep(retryInterval)
	}

	return fmt.Errorf("database failed to become ready after %d attempts", maxRetries)
}
