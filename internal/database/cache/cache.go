// Package cache puts an in-memory LRU in front of a state repository.
package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/pisle-planner/internal/domain"
	"github.com/osse101/pisle-planner/internal/metrics"
	"github.com/osse101/pisle-planner/internal/repository"
)

// SchemaVersion is the version of the cached entry layout.
// Increment this when domain.State changes to drop old entries.
const SchemaVersion = "1.0"

type entry struct {
	version  string
	state    *domain.State // nil marks a profile known to be empty
	cachedAt time.Time
}

// Store is a read-through, write-through cache. Writes land in memory
// before they reach the backend, so a failed backend write still leaves
// the latest state readable until it expires.
type Store struct {
	next repository.State
	lru  *expirable.LRU[string, *entry]
}

// New wraps next with an LRU of the given size and TTL
func New(next repository.State, size int, ttl time.Duration) *Store {
	return &Store{
		next: next,
		lru:  expirable.NewLRU[string, *entry](size, nil, ttl),
	}
}

func (s *Store) Load(ctx context.Context, profile string) (*domain.State, error) {
	if e, ok := s.lru.Get(profile); ok {
		if e.version == SchemaVersion {
			metrics.StateCacheLookups.WithLabelValues(metrics.CacheResultHit).Inc()
			return cloneState(e.state), nil
		}
		s.lru.Remove(profile)
	}
	metrics.StateCacheLookups.WithLabelValues(metrics.CacheResultMiss).Inc()

	st, err := s.next.Load(ctx, profile)
	if err != nil {
		return nil, err
	}
	s.put(profile, st)
	return cloneState(st), nil
}

func (s *Store) Save(ctx context.Context, profile string, state domain.State) error {
	s.put(profile, &state)
	return s.next.Save(ctx, profile, state)
}

func (s *Store) Delete(ctx context.Context, profile string) error {
	s.lru.Remove(profile)
	return s.next.Delete(ctx, profile)
}

// Ping delegates to the backend when it supports readiness checks
func (s *Store) Ping(ctx context.Context) error {
	if p, ok := s.next.(repository.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Len reports the number of cached profiles
func (s *Store) Len() int {
	return s.lru.Len()
}

// Purge drops every cached entry
func (s *Store) Purge() {
	s.lru.Purge()
}

func (s *Store) put(profile string, st *domain.State) {
	s.lru.Add(profile, &entry{
		version:  SchemaVersion,
		state:    cloneState(st),
		cachedAt: time.Now(),
	})
}

func cloneState(st *domain.State) *domain.State {
	if st == nil {
		return nil
	}
	c := st.Clone()
	return &c
}
