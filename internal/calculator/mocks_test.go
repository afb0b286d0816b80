package calculator

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/pisle-planner/internal/domain"
)

// MockRepository implements repository.State for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Load(ctx context.Context, profile string) (*domain.State, error) {
	args := m.Called(ctx, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.State), args.Error(1)
}

func (m *MockRepository) Save(ctx context.Context, profile string, state domain.State) error {
	args := m.Called(ctx, profile, state)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, profile string) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}
