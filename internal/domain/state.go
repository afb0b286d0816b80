package domain

import (
	"fmt"
	"time"

	"github.com/osse101/pisle-planner/internal/habitat"
	"github.com/osse101/pisle-planner/internal/planner"
)

// ChangeType identifies the kind of suggestion awaiting confirmation
type ChangeType string

const (
	ChangeUpgrade  ChangeType = "Upgrade"
	ChangeEvolve   ChangeType = "Evolve"
	ChangeResearch ChangeType = "Research"
)

// Change is a suggestion the player still has to carry out in game.
// Upgrade changes carry the plan; Evolve and Research carry the basis they
// were suggested against.
type Change struct {
	Type     ChangeType           `json:"type"`
	Plan     *planner.UpgradePlan `json:"plan,omitempty"`
	Snapshot *habitat.Collection  `json:"snapshot,omitempty"`
}

// State is everything the calculator remembers about one player.
// Basis is nil until the player finishes setup.
type State struct {
	UpdatedAt     time.Time                      `json:"updated_at"`
	Penguins      int                            `json:"penguins"`
	InitBasis     map[habitat.Kind]habitat.Input `json:"init_basis"`
	Basis         *habitat.Collection            `json:"basis"`
	Uncommitted   *Change                        `json:"uncommitted_change"`
	UpgradeBudget string                         `json:"upgrade_budget"`
}

// Configured reports whether setup has been completed
func (s State) Configured() bool {
	return s.Basis != nil
}

// Validate checks the cross-field rules a JSON schema cannot express: a
// pending change needs a configured basis and the payload of its type, and an
// upgrade plan must cover exactly the habitats in the basis.
func (s State) Validate() error {
	c := s.Uncommitted
	if c == nil {
		return nil
	}
	if s.Basis == nil {
		return fmt.Errorf("%w: %s", ErrCorruptState, ErrMsgChangeWithoutBasis)
	}

	switch c.Type {
	case ChangeUpgrade:
		if c.Plan == nil {
			return fmt.Errorf("%w: %s", ErrCorruptState, ErrMsgUpgradeWithoutPlan)
		}
		if !sameKinds(c.Plan.Final, *s.Basis) {
			return fmt.Errorf("%w: %s", ErrCorruptState, ErrMsgPlanHabitatsMismatch)
		}
	case ChangeEvolve, ChangeResearch:
		if c.Snapshot == nil {
			return fmt.Errorf("%w: %s change has no snapshot", ErrCorruptState, c.Type)
		}
	default:
		return fmt.Errorf("%w: unknown change type %q", ErrCorruptState, c.Type)
	}
	return nil
}

func sameKinds(a, b habitat.Collection) bool {
	if a.Len() != b.Len() {
		return false
	}
	for _, k := range a.Kinds() {
		if !b.Has(k) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy sharing no mutable storage with s
func (s State) Clone() State {
	out := s

	if s.InitBasis != nil {
		out.InitBasis = make(map[habitat.Kind]habitat.Input, len(s.InitBasis))
		for k, in := range s.InitBasis {
			out.InitBasis[k] = in
		}
	}

	if s.Basis != nil {
		b := *s.Basis
		out.Basis = &b
	}

	if s.Uncommitted != nil {
		c := s.Uncommitted.Clone()
		out.Uncommitted = &c
	}

	return out
}

// Clone returns a deep copy of the change
func (c Change) Clone() Change {
	out := c
	if c.Plan != nil {
		p := *c.Plan
		p.Steps = append([]planner.UpgradeStep(nil), c.Plan.Steps...)
		out.Plan = &p
	}
	if c.Snapshot != nil {
		snap := *c.Snapshot
		out.Snapshot = &snap
	}
	return out
}
