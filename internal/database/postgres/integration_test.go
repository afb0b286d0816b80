package postgres

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/osse101/pisle-planner/internal/database"
	"github.com/osse101/pisle-planner/internal/domain"
	"github.com/osse101/pisle-planner/internal/habitat"
)

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()
	if !testing.Short() {
		terminate = setupContainer(context.Background())
	}

	code := m.Run()

	if testPool != nil {
		testPool.Close()
	}
	if terminate != nil {
		terminate()
	}
	os.Exit(code)
}

func setupContainer(ctx context.Context) func() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic in setupContainer (likely Docker issue): %v\n", r)
		}
	}()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return func() {}
	}
	terminate := func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		return terminate
	}

	pool, err := database.NewPool(ctx, connStr, database.PoolConfig{MaxConns: 5})
	if err != nil {
		fmt.Printf("WARNING: Failed to connect: %v\n", err)
		return terminate
	}

	testPool = pool
	return terminate
}

func newTestRepo(t *testing.T) *StateRepository {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testPool == nil {
		t.Skip("Skipping integration test: database not available")
	}
	ensureMigrations(t)
	return NewStateRepository(testPool)
}

func sampleState(penguins int) domain.State {
	basis := habitat.NewCollection(map[habitat.Kind]habitat.Basis{
		habitat.FishingSpot:   {Level: 40, Gold: 1.25e15, Cost: 7.5e15, Hearts: 3e6, Multiplier: 5},
		habitat.AntarcticBase: {Level: 2, Gold: 4e12, Cost: 1.1e14, Hearts: 8e5, Multiplier: 1},
	})
	return domain.State{
		UpdatedAt:     time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Penguins:      penguins,
		InitBasis:     map[habitat.Kind]habitat.Input{},
		Basis:         &basis,
		Uncommitted:   &domain.Change{Type: domain.ChangeEvolve, Snapshot: &basis},
		UpgradeBudget: "2.00e",
	}
}

func TestStateRepository_Integration(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	t.Run("missing profile", func(t *testing.T) {
		st, err := repo.Load(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, st)
	})

	t.Run("save and load", func(t *testing.T) {
		want := sampleState(3)
		require.NoError(t, repo.Save(ctx, "alice", want))

		got, err := repo.Load(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, want, *got)
	})

	t.Run("save overwrites", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, "bob", sampleState(1)))
		require.NoError(t, repo.Save(ctx, "bob", sampleState(2)))

		got, err := repo.Load(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, 2, got.Penguins)

		var penguins int
		require.NoError(t, testPool.QueryRow(ctx, "SELECT penguins FROM planner_states WHERE profile = 'bob'").Scan(&penguins))
		assert.Equal(t, 2, penguins)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, "carol", sampleState(1)))
		require.NoError(t, repo.Delete(ctx, "carol"))
		require.NoError(t, repo.Delete(ctx, "carol"))

		got, err := repo.Load(ctx, "carol")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("corrupt document", func(t *testing.T) {
		_, err := testPool.Exec(ctx,
			`INSERT INTO planner_states (profile, document) VALUES ('dave', '{"penguins": -4, "basis": null}')`)
		require.NoError(t, err)

		_, err = repo.Load(ctx, "dave")
		assert.ErrorIs(t, err, domain.ErrCorruptState)
	})

	t.Run("invalid profile", func(t *testing.T) {
		_, err := repo.Load(ctx, "no spaces")
		assert.ErrorIs(t, err, domain.ErrInvalidProfile)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, repo.Ping(ctx))
	})
}

func TestStateRepository_ConcurrentSaves(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 1; i <= 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if err := repo.Save(ctx, "shared", sampleState(n)); err != nil {
				t.Errorf("save %d failed: %v", n, err)
			}
		}(i)
	}
	wg.Wait()

	got, err := repo.Load(ctx, "shared")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.GreaterOrEqual(t, got.Penguins, 1)
	assert.LessOrEqual(t, got.Penguins, 10)
}
