package calculator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/pisle-planner/internal/concurrency"
	"github.com/osse101/pisle-planner/internal/domain"
	"github.com/osse101/pisle-planner/internal/exportstate"
	"github.com/osse101/pisle-planner/internal/logger"
	"github.com/osse101/pisle-planner/internal/metrics"
	"github.com/osse101/pisle-planner/internal/repository"
)

// Service applies calculator transitions to persisted per-profile state
type Service interface {
	Calculator() *Calculator
	Get(ctx context.Context, profile string) (domain.State, error)
	Apply(ctx context.Context, profile, op string, t Transition) (domain.State, error)
	Import(ctx context.Context, profile string, imported domain.State) (domain.State, bool, error)
}

type service struct {
	calc  *Calculator
	repo  repository.State
	locks *concurrency.LockManager
	now   func() time.Time
}

// NewService creates a new calculator service
func NewService(calc *Calculator, repo repository.State) Service {
	return &service{
		calc:  calc,
		repo:  repo,
		locks: concurrency.NewLockManager(),
		now:   time.Now,
	}
}

func (s *service) Calculator() *Calculator {
	return s.calc
}

// Get returns the stored state, or an empty one for a new profile
func (s *service) Get(ctx context.Context, profile string) (domain.State, error) {
	if err := domain.ValidateProfile(profile); err != nil {
		return domain.State{}, err
	}

	st, err := s.load(ctx, profile)
	if err != nil {
		return domain.State{}, err
	}
	if st == nil {
		return domain.State{}, nil
	}
	return *st, nil
}

// Apply runs t against the profile's state under the profile lock. A failed
// write is logged and counted; the new state is still returned.
func (s *service) Apply(ctx context.Context, profile, op string, t Transition) (domain.State, error) {
	if err := domain.ValidateProfile(profile); err != nil {
		return domain.State{}, err
	}

	var result domain.State
	err := s.locks.WithLock(profile, func() error {
		current, err := s.load(ctx, profile)
		if err != nil {
			return err
		}
		if current == nil {
			current = &domain.State{}
		}

		next, err := t(*current)
		if err != nil {
			metrics.TransitionsRejected.WithLabelValues(op).Inc()
			return err
		}

		next.UpdatedAt = s.now().UTC()
		s.persist(ctx, profile, next)
		result = next
		return nil
	})
	if err != nil {
		return domain.State{}, err
	}

	metrics.TransitionsApplied.WithLabelValues(op).Inc()
	if op == OpSuggestUpgrades && result.Uncommitted != nil && result.Uncommitted.Plan != nil {
		metrics.PlansComputed.WithLabelValues(metrics.PlanKindUpgrade).Inc()
		metrics.UpgradeSteps.Add(float64(len(result.Uncommitted.Plan.Steps)))
	}
	logger.FromContext(ctx).Debug(LogMsgTransitionApplied, "profile", profile, "operation", op)
	return result, nil
}

// Import reconciles an imported state with the stored one. The more recent
// state wins; the returned flag reports whether the import replaced storage.
func (s *service) Import(ctx context.Context, profile string, imported domain.State) (domain.State, bool, error) {
	if err := domain.ValidateProfile(profile); err != nil {
		return domain.State{}, false, err
	}

	var (
		result   domain.State
		replaced bool
	)
	err := s.locks.WithLock(profile, func() error {
		local, err := s.load(ctx, profile)
		if err != nil {
			return err
		}

		candidate := imported.Clone()
		winner := exportstate.Reconcile(local, &candidate)
		if winner != &candidate {
			logger.FromContext(ctx).Info(LogMsgImportedStateStale,
				"profile", profile,
				"stored_at", local.UpdatedAt,
				"imported_at", imported.UpdatedAt)
			result = *local
			return nil
		}

		if candidate.UpdatedAt.IsZero() {
			candidate.UpdatedAt = s.now().UTC()
		}
		s.persist(ctx, profile, candidate)
		result, replaced = candidate, true
		return nil
	})
	if err != nil {
		return domain.State{}, false, err
	}

	if replaced {
		metrics.TransitionsApplied.WithLabelValues(OpImport).Inc()
		logger.FromContext(ctx).Info(LogMsgStateImported, "profile", profile)
	}
	return result, replaced, nil
}

func (s *service) load(ctx context.Context, profile string) (*domain.State, error) {
	st, err := s.repo.Load(ctx, profile)
	if errors.Is(err, domain.ErrCorruptState) {
		metrics.StateDecodeFailures.WithLabelValues(SourceStore).Inc()
		logger.FromContext(ctx).Warn(LogMsgStateLoadFailed, "profile", profile, "error", err)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load state for %s: %w", profile, err)
	}
	return st, nil
}

func (s *service) persist(ctx context.Context, profile string, st domain.State) {
	if err := s.repo.Save(ctx, profile, st); err != nil {
		metrics.PersistenceFailures.WithLabelValues(OpSave).Inc()
		logger.FromContext(ctx).Error(LogMsgStatePersistFailed, "profile", profile, "error", err)
	}
}
