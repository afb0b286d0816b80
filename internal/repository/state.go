package repository

import (
	"context"

	"github.com/osse101/pisle-planner/internal/domain"
)

// State defines the interface for planner state persistence.
// Load returns nil, nil when nothing is stored for the profile. A stored
// document that cannot be decoded is reported as domain.ErrCorruptState.
type State interface {
	Load(ctx context.Context, profile string) (*domain.State, error)
	Save(ctx context.Context, profile string, state domain.State) error
	Delete(ctx context.Context, profile string) error
}

// Pinger is implemented by stores that can report their readiness
type Pinger interface {
	Ping(ctx context.Context) error
}
