package calculator

import (
	"fmt"
	"sort"

	"github.com/osse101/pisle-planner/internal/domain"
	"github.com/osse101/pisle-planner/internal/habitat"
	"github.com/osse101/pisle-planner/internal/planner"
	"github.com/osse101/pisle-planner/internal/scale"
)

// Transition turns one state into the next. Implementations must not mutate
// their argument.
type Transition func(domain.State) (domain.State, error)

// Calculator holds the pure state transitions behind every player action
type Calculator struct {
	engine *planner.Engine
}

// New creates a calculator backed by the given planner engine
func New(engine *planner.Engine) *Calculator {
	return &Calculator{engine: engine}
}

// Engine exposes the planner used by this calculator
func (c *Calculator) Engine() *planner.Engine {
	return c.engine
}

// Unlock adds an empty setup row for k
func (c *Calculator) Unlock(s domain.State, k habitat.Kind) (domain.State, error) {
	if s.Configured() {
		return s, domain.ErrAlreadyConfigured
	}
	if !k.Valid() {
		return s, fmt.Errorf("%w: %d", habitat.ErrUnknownHabitat, int(k))
	}

	out := s.Clone()
	if out.InitBasis == nil {
		out.InitBasis = make(map[habitat.Kind]habitat.Input)
	}
	if _, ok := out.InitBasis[k]; !ok {
		out.InitBasis[k] = habitat.Input{}
	}
	return out, nil
}

// SetInput merges the non-empty fields of in into the setup row for k,
// unlocking the row if needed
func (c *Calculator) SetInput(s domain.State, k habitat.Kind, in habitat.Input) (domain.State, error) {
	out, err := c.Unlock(s, k)
	if err != nil {
		return s, err
	}
	out.InitBasis[k] = out.InitBasis[k].Merge(in)
	return out, nil
}

// Save validates every setup row and turns them into the committed basis.
// Problems are reported per "<habitat>.<field>".
func (c *Calculator) Save(s domain.State) (domain.State, error) {
	if s.Configured() {
		return s, domain.ErrAlreadyConfigured
	}
	if len(s.InitBasis) == 0 {
		return s, domain.ErrNothingToSave
	}

	basis, err := habitat.ParseInputs(s.InitBasis)
	if err != nil {
		return s, err
	}

	out := s.Clone()
	out.InitBasis = map[habitat.Kind]habitat.Input{}
	out.Basis = &basis
	out.Uncommitted = nil
	return out, nil
}

// Reset discards setup rows and the committed basis. Penguins are kept.
func (c *Calculator) Reset(s domain.State) (domain.State, error) {
	out := s.Clone()
	out.InitBasis = map[habitat.Kind]habitat.Input{}
	out.Basis = nil
	out.Uncommitted = nil
	return out, nil
}

// StartEdit moves the committed basis back into editable setup rows
func (c *Calculator) StartEdit(s domain.State) (domain.State, error) {
	if !s.Configured() {
		return s, domain.ErrNotConfigured
	}

	out := s.Clone()
	out.InitBasis = make(map[habitat.Kind]habitat.Input, out.Basis.Len())
	for _, k := range out.Basis.Kinds() {
		b, _ := out.Basis.Get(k)
		out.InitBasis[k] = habitat.FormatInput(b)
	}
	out.Basis = nil
	out.Uncommitted = nil
	return out, nil
}

// SuggestUpgrades plans how to spend budget (short notation) and parks the
// plan as an uncommitted Upgrade change
func (c *Calculator) SuggestUpgrades(s domain.State, budget string) (domain.State, error) {
	if !s.Configured() {
		return s, domain.ErrNotConfigured
	}

	amount, err := scale.ParseNumber(budget)
	if err != nil {
		return s, habitat.FieldErrors{FieldBudget: "must look like 23.81g"}
	}

	plan, err := c.engine.SpendGold(amount, *s.Basis)
	if err != nil {
		return s, err
	}

	out := s.Clone()
	out.UpgradeBudget = budget
	out.Uncommitted = &domain.Change{Type: domain.ChangeUpgrade, Plan: plan}
	return out, nil
}

// SuggestEvolve parks an Evolve change against the current basis
func (c *Calculator) SuggestEvolve(s domain.State) (domain.State, error) {
	return c.suggestSnapshot(s, domain.ChangeEvolve)
}

// SuggestResearch parks a Research change against the current basis
func (c *Calculator) SuggestResearch(s domain.State) (domain.State, error) {
	return c.suggestSnapshot(s, domain.ChangeResearch)
}

func (c *Calculator) suggestSnapshot(s domain.State, t domain.ChangeType) (domain.State, error) {
	if !s.Configured() {
		return s, domain.ErrNotConfigured
	}

	out := s.Clone()
	snapshot := *out.Basis
	out.Uncommitted = &domain.Change{Type: t, Snapshot: &snapshot}
	return out, nil
}

// Cancel drops the uncommitted change, if any
func (c *Calculator) Cancel(s domain.State) (domain.State, error) {
	out := s.Clone()
	out.Uncommitted = nil
	return out, nil
}

func pending(s domain.State, t domain.ChangeType) error {
	if !s.Configured() {
		return domain.ErrNotConfigured
	}
	if s.Uncommitted == nil {
		return domain.ErrNoPendingChange
	}
	if s.Uncommitted.Type != t {
		return fmt.Errorf("%w: pending %s, got %s", domain.ErrChangeMismatch, s.Uncommitted.Type, t)
	}
	return nil
}

// CommitUpgrade applies the pending upgrade plan
func (c *Calculator) CommitUpgrade(s domain.State) (domain.State, error) {
	if err := pending(s, domain.ChangeUpgrade); err != nil {
		return s, err
	}
	if err := s.Validate(); err != nil {
		return s, err
	}

	out := s.Clone()
	final := out.Uncommitted.Plan.Final
	for _, k := range final.Kinds() {
		b, _ := final.Get(k)
		out.Basis.Set(k, b)
	}
	out.Uncommitted = nil
	return out, nil
}

// CommitEvolve records an evolution: the old multiplier is folded into gold
// and the new heart cost and multiplier are stored
func (c *Calculator) CommitEvolve(s domain.State, u EvolveUpdate) (domain.State, error) {
	if err := pending(s, domain.ChangeEvolve); err != nil {
		return s, err
	}

	b, ok := s.Basis.Get(u.Habitat)
	if !ok {
		return s, fmt.Errorf("%w: %s", domain.ErrHabitatLocked, u.Habitat)
	}

	b.Hearts = u.Hearts
	b.Gold *= b.Multiplier
	b.Multiplier = u.Multiplier
	if err := b.Validate(); err != nil {
		return s, err
	}

	out := s.Clone()
	out.Basis.Set(u.Habitat, b)
	out.Uncommitted = nil
	return out, nil
}

// CommitResearch rescales gold and cost of every habitat. With an update the
// factors come from the Fishing Spot's new figures; without one the tunable
// research factors apply.
func (c *Calculator) CommitResearch(s domain.State, u *ResearchUpdate) (domain.State, error) {
	if err := pending(s, domain.ChangeResearch); err != nil {
		return s, err
	}

	tun := c.engine.Tunables()
	goldFactor, costFactor := tun.ResearchGoldFactor, tun.ResearchCostFactor
	if u != nil {
		ref, ok := s.Basis.Get(habitat.FishingSpot)
		if !ok {
			return s, fmt.Errorf("%w: %s", domain.ErrHabitatLocked, habitat.FishingSpot)
		}
		if ref.Gold <= 0 {
			return s, fmt.Errorf("%w: %s produces no gold", habitat.ErrInvalidBasis, habitat.FishingSpot)
		}
		goldFactor = u.Gold / ref.Gold
		costFactor = u.Cost / ref.Cost
	}

	out := s.Clone()
	for _, k := range out.Basis.Kinds() {
		b, _ := out.Basis.Get(k)
		b.Gold *= goldFactor
		b.Cost *= costFactor
		if err := b.Validate(); err != nil {
			return s, fmt.Errorf("%s: %w", k, err)
		}
		out.Basis.Set(k, b)
	}
	out.Uncommitted = nil
	return out, nil
}

// AddPenguin counts one more penguin, scaling every habitat's gold
func (c *Calculator) AddPenguin(s domain.State) (domain.State, error) {
	if !s.Configured() {
		return s, domain.ErrNotConfigured
	}

	factor := c.engine.Tunables().PenguinIncreaseFactor
	out := s.Clone()
	out.Penguins++
	for _, k := range out.Basis.Kinds() {
		b, _ := out.Basis.Get(k)
		b.Gold *= factor
		out.Basis.Set(k, b)
	}
	out.Uncommitted = nil
	return out, nil
}

// Ranking returns the evolve ranking (worst value per heart first)
func (c *Calculator) Ranking(s domain.State) ([]habitat.Metrics, error) {
	if !s.Configured() {
		return nil, domain.ErrNotConfigured
	}
	return c.engine.SpendHearts(*s.Basis), nil
}

// PenguinPrice estimates the gold value of one more penguin
func (c *Calculator) PenguinPrice(s domain.State) (float64, error) {
	if !s.Configured() {
		return 0, domain.ErrNotConfigured
	}
	return c.engine.PenguinPrice(*s.Basis)
}

// UnlockedKinds lists the setup rows in enumeration order
func UnlockedKinds(s domain.State) []habitat.Kind {
	kinds := make([]habitat.Kind, 0, len(s.InitBasis))
	for k := range s.InitBasis {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// CommitInput carries the in-game figures needed to confirm a pending change.
// Upgrade changes need neither field; Evolve requires Evolve.
type CommitInput struct {
	Evolve   *EvolveUpdate
	Research *ResearchUpdate
}

// Commit confirms whichever change is pending
func (c *Calculator) Commit(s domain.State, in CommitInput) (domain.State, error) {
	if !s.Configured() {
		return s, domain.ErrNotConfigured
	}
	if s.Uncommitted == nil {
		return s, domain.ErrNoPendingChange
	}

	switch s.Uncommitted.Type {
	case domain.ChangeUpgrade:
		return c.CommitUpgrade(s)
	case domain.ChangeEvolve:
		if in.Evolve == nil {
			return s, habitat.FieldErrors{FieldHabitat: "evolved habitat is required"}
		}
		return c.CommitEvolve(s, *in.Evolve)
	case domain.ChangeResearch:
		return c.CommitResearch(s, in.Research)
	default:
		return s, fmt.Errorf("%w: %s", domain.ErrChangeMismatch, s.Uncommitted.Type)
	}
}
