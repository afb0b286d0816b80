package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/pisle-planner/internal/calculator"
	"github.com/osse101/pisle-planner/internal/domain"
)

// MockService mocks calculator.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Calculator() *calculator.Calculator {
	args := m.Called()
	return args.Get(0).(*calculator.Calculator)
}

func (m *MockService) Get(ctx context.Context, profile string) (domain.State, error) {
	args := m.Called(ctx, profile)
	return args.Get(0).(domain.State), args.Error(1)
}

func (m *MockService) Apply(ctx context.Context, profile, op string, t calculator.Transition) (domain.State, error) {
	args := m.Called(ctx, profile, op, t)
	return args.Get(0).(domain.State), args.Error(1)
}

func (m *MockService) Import(ctx context.Context, profile string, imported domain.State) (domain.State, bool, error) {
	args := m.Called(ctx, profile, imported)
	return args.Get(0).(domain.State), args.Bool(1), args.Error(2)
}

// MockPinger mocks repository.Pinger
type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
