package postgres

import (
	"context"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/pisle-planner/internal/database"
)

var (
	testPool          *pgxpool.Pool
	migrationsApplied bool
	migrationsMux     sync.Mutex
)

// ensureMigrations applies migrations once for all tests in the package
func ensureMigrations(t *testing.T) {
	t.Helper()

	migrationsMux.Lock()
	defer migrationsMux.Unlock()

	if migrationsApplied {
		return
	}

	if err := database.Migrate(context.Background(), testPool); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}

	migrationsApplied = true
}
