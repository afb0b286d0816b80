package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/pisle-planner/internal/domain"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Load(ctx context.Context, profile string) (*domain.State, error) {
	args := m.Called(ctx, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.State), args.Error(1)
}

func (m *mockRepo) Save(ctx context.Context, profile string, state domain.State) error {
	return m.Called(ctx, profile, state).Error(0)
}

func (m *mockRepo) Delete(ctx context.Context, profile string) error {
	return m.Called(ctx, profile).Error(0)
}

type pingingRepo struct {
	mockRepo
}

func (p *pingingRepo) Ping(ctx context.Context) error {
	return p.Called(ctx).Error(0)
}

func TestStore_LoadIsReadThrough(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	store := New(repo, 10, time.Minute)

	repo.On("Load", ctx, "alice").Return(&domain.State{Penguins: 2}, nil).Once()

	first, err := store.Load(ctx, "alice")
	require.NoError(t, err)
	second, err := store.Load(ctx, "alice")
	require.NoError(t, err)

	assert.Equal(t, 2, first.Penguins)
	assert.Equal(t, first, second)
	assert.NotSame(t, first, second, "callers get independent copies")
	repo.AssertExpectations(t)
}

func TestStore_CachesAbsence(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	store := New(repo, 10, time.Minute)

	repo.On("Load", ctx, "nobody").Return(nil, nil).Once()

	for i := 0; i < 3; i++ {
		st, err := store.Load(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, st)
	}
	repo.AssertExpectations(t)
}

func TestStore_LoadErrorIsNotCached(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	store := New(repo, 10, time.Minute)

	repo.On("Load", ctx, "bob").Return(nil, domain.ErrCorruptState).Twice()

	for i := 0; i < 2; i++ {
		_, err := store.Load(ctx, "bob")
		assert.ErrorIs(t, err, domain.ErrCorruptState)
	}
	assert.Equal(t, 0, store.Len())
	repo.AssertExpectations(t)
}

func TestStore_SaveFailureStillServesLatest(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	store := New(repo, 10, time.Minute)

	repo.On("Save", ctx, "carol", mock.Anything).Return(errors.New("database down"))

	err := store.Save(ctx, "carol", domain.State{Penguins: 5})
	assert.Error(t, err)

	st, err := store.Load(ctx, "carol")
	require.NoError(t, err)
	require.NotNil(t, st)
	assert.Equal(t, 5, st.Penguins)
	repo.AssertNotCalled(t, "Load", mock.Anything, mock.Anything)
}

func TestStore_DeleteEvicts(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	store := New(repo, 10, time.Minute)

	repo.On("Save", ctx, "dave", mock.Anything).Return(nil)
	repo.On("Delete", ctx, "dave").Return(nil)
	repo.On("Load", ctx, "dave").Return(nil, nil)

	require.NoError(t, store.Save(ctx, "dave", domain.State{Penguins: 1}))
	require.NoError(t, store.Delete(ctx, "dave"))

	st, err := store.Load(ctx, "dave")
	require.NoError(t, err)
	assert.Nil(t, st)
	repo.AssertExpectations(t)
}

func TestStore_StaleVersionIsDropped(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	store := New(repo, 10, time.Minute)

	store.lru.Add("erin", &entry{version: "0.1", state: &domain.State{Penguins: 99}})
	repo.On("Load", ctx, "erin").Return(&domain.State{Penguins: 1}, nil).Once()

	st, err := store.Load(ctx, "erin")
	require.NoError(t, err)
	assert.Equal(t, 1, st.Penguins)
}

func TestStore_Expiry(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	store := New(repo, 10, 20*time.Millisecond)

	repo.On("Load", ctx, "frank").Return(&domain.State{}, nil).Twice()

	_, err := store.Load(ctx, "frank")
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)
	_, err = store.Load(ctx, "frank")
	require.NoError(t, err)

	repo.AssertExpectations(t)
}

func TestStore_Ping(t *testing.T) {
	ctx := context.Background()

	assert.NoError(t, New(new(mockRepo), 1, time.Minute).Ping(ctx))

	repo := new(pingingRepo)
	repo.On("Ping", ctx).Return(errors.New("unreachable"))
	assert.Error(t, New(repo, 1, time.Minute).Ping(ctx))
}
