package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/pisle-planner/internal/domain"
	"github.com/osse101/pisle-planner/internal/exportstate"
)

// StateRepository implements repository.State on the planner_states table
type StateRepository struct {
	db    *pgxpool.Pool
	codec *exportstate.Codec
}

// NewStateRepository creates a new StateRepository
func NewStateRepository(db *pgxpool.Pool) *StateRepository {
	return &StateRepository{
		db:    db,
		codec: exportstate.NewCodec(),
	}
}

// Load returns the stored state for profile (returns nil, nil if not found)
func (r *StateRepository) Load(ctx context.Context, profile string) (*domain.State, error) {
	if err := domain.ValidateProfile(profile); err != nil {
		return nil, err
	}

	var doc []byte
	err := r.db.QueryRow(ctx, queryLoadState, profile).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrDatabaseError, ErrMsgFailedToLoadState, err)
	}

	st, err := r.codec.DecodeDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", profile, err)
	}
	return &st, nil
}

// Save upserts the state document for profile
func (r *StateRepository) Save(ctx context.Context, profile string, state domain.State) error {
	if err := domain.ValidateProfile(profile); err != nil {
		return err
	}

	doc, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToEncodeState, err)
	}

	updatedAt := state.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	if _, err := r.db.Exec(ctx, querySaveState, profile, doc, state.Penguins, updatedAt); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrDatabaseError, ErrMsgFailedToSaveState, err)
	}
	return nil
}

// Delete removes the stored state for profile, if any
func (r *StateRepository) Delete(ctx context.Context, profile string) error {
	if err := domain.ValidateProfile(profile); err != nil {
		return err
	}

	if _, err := r.db.Exec(ctx, queryDeleteState, profile); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrDatabaseError, ErrMsgFailedToDeleteState, err)
	}
	return nil
}

// Ping checks database connectivity
func (r *StateRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
