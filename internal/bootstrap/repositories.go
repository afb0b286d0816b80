package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/pisle-planner/internal/config"
	"github.com/osse101/pisle-planner/internal/database"
	"github.com/osse101/pisle-planner/internal/database/cache"
	"github.com/osse101/pisle-planner/internal/database/filestore"
	"github.com/osse101/pisle-planner/internal/database/postgres"
	"github.com/osse101/pisle-planner/internal/game"
	"github.com/osse101/pisle-planner/internal/repository"
)

// Storage holds the state repository used by the application together with
// the resources that must be released on shutdown.
type Storage struct {
	State  repository.State
	Pinger repository.Pinger
	// Pool is nil unless the postgres backend is selected
	Pool *pgxpool.Pool
}

// InitializeStorage opens the configured state backend, applies migrations
// when it is postgres, and fronts it with an LRU cache when CacheSize > 0.
func InitializeStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	var (
		state  repository.State
		pinger repository.Pinger
		pool   *pgxpool.Pool
		name   string
	)

	if cfg.UsesPostgres() {
		p, err := database.NewPool(ctx, cfg.GetDBConnString(), database.PoolConfig{
			MaxConns:        cfg.DBMaxConns,
			MaxConnIdleTime: cfg.DBMaxConnIdleTime,
			MaxConnLifetime: cfg.DBMaxConnLifetime,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
		}
		if err := database.Migrate(ctx, p); err != nil {
			p.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrateDB, err)
		}
		repo := postgres.NewStateRepository(p)
		state, pinger, pool, name = repo, repo, p, StoreNamePostgres
	} else {
		store, err := filestore.New(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenFileStore, err)
		}
		state, pinger, name = store, store, StoreNameFile
	}
	slog.Info(LogMsgStorageInitialized, "backend", name)

	if cfg.CacheSize > 0 {
		cached := cache.New(state, cfg.CacheSize, cfg.CacheTTL)
		state, pinger = cached, cached
		slog.Info(LogMsgCacheEnabled, "size", cfg.CacheSize, "ttl", cfg.CacheTTL)
	}

	return &Storage{State: state, Pinger: pinger, Pool: pool}, nil
}

// LoadTunables reads the optional game config file
func LoadTunables(cfg *config.Config) (game.Tunables, error) {
	tunables, err := game.Load(cfg.GameConfigPath)
	if err != nil {
		return game.Tunables{}, fmt.Errorf("%s: %w", ErrMsgFailedLoadTunables, err)
	}
	slog.Info(LogMsgTunablesLoaded, "path", cfg.GameConfigPath)
	return tunables, nil
}
