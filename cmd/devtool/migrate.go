package main

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/pisle-planner/internal/database"
)

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Apply or inspect the bundled database migrations (up, status)"
}

func (c *MigrateCommand) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("subcommand required: up, status")
	}
	subcmd := args[0]
	if subcmd != "up" && subcmd != "status" {
		return fmt.Errorf("unknown subcommand %q: expected up or status", subcmd)
	}

	connString, err := dbConnString()
	if err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, connString, database.PoolConfig{MaxConns: 2})
	if err != nil {
		return err
	}
	defer pool.Close()

	if subcmd == "up" {
		PrintHeader("Applying migrations")
		if err := database.Migrate(ctx, pool); err != nil {
			return err
		}
		PrintSuccess("Migrations applied")
		return nil
	}

	PrintHeader("Migration status")
	statuses, err := database.MigrationStatus(ctx, pool)
	if err != nil {
		return err
	}
	for _, s := range statuses {
		if s.AppliedAt.IsZero() {
			PrintWarning("%-40s pending", s.Source.Path)
		} else {
			PrintSuccess("%-40s applied %s", s.Source.Path, s.AppliedAt.Format(time.RFC3339))
		}
	}
	return nil
}
