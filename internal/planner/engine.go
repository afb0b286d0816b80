package planner

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/osse101/pisle-planner/internal/game"
	"github.com/osse101/pisle-planner/internal/habitat"
)

var (
	ErrInvalidBudget = errors.New(ErrMsgInvalidBudget)
	ErrNoHabitats    = errors.New(ErrMsgNoHabitats)
)

// Engine provides the pure planning routines (no I/O, no shared state)
type Engine struct {
	tunables game.Tunables
}

// NewEngine creates an engine using the given tunables
func NewEngine(tunables game.Tunables) *Engine {
	return &Engine{tunables: tunables}
}

// NewDefaultEngine creates an engine with the built-in tunables
func NewDefaultEngine() *Engine {
	return NewEngine(game.Defaults())
}

// Tunables returns the constants this engine runs with
func (e *Engine) Tunables() game.Tunables {
	return e.tunables
}

// Derive computes metrics with the engine's habitat table
func (e *Engine) Derive(k habitat.Kind, b habitat.Basis) habitat.Metrics {
	return e.tunables.Table.Derive(k, b)
}

// UpgradeStep is one simulated upgrade
type UpgradeStep struct {
	Habitat   habitat.Kind `json:"habitat"`
	FromLevel int          `json:"from_level"`
	ToLevel   int          `json:"to_level"`
	Cost      float64      `json:"cost"`
}

// UpgradePlan is the outcome of SpendGold. Original and Final never share state.
type UpgradePlan struct {
	Original  habitat.Collection `json:"original"`
	Final     habitat.Collection `json:"final"`
	Steps     []UpgradeStep      `json:"steps"`
	Budget    float64            `json:"budget"`
	Spent     float64            `json:"spent"`
	Remaining float64            `json:"remaining"`
}

// Levels returns the number of levels gained per habitat, omitting untouched ones
func (p *UpgradePlan) Levels() map[habitat.Kind]int {
	levels := make(map[habitat.Kind]int)
	for _, step := range p.Steps {
		levels[step.Habitat] += step.ToLevel - step.FromLevel
	}
	return levels
}

// SpendGold repeatedly buys the single upgrade with the best gold-per-second
// per cost until the budget runs out. When the best upgrade is unaffordable
// the simulation stops; no cheaper alternative is substituted.
func (e *Engine) SpendGold(budget float64, basis habitat.Collection) (*UpgradePlan, error) {
	if math.IsNaN(budget) || math.IsInf(budget, 0) || budget < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBudget, budget)
	}
	if err := basis.Validate(); err != nil {
		return nil, err
	}

	plan := &UpgradePlan{
		Original: basis,
		Final:    basis,
		Steps:    []UpgradeStep{},
		Budget:   budget,
	}

	goldLeft := budget
	kinds := basis.Kinds()
	for goldLeft > 0 && len(kinds) > 0 {
		best, found := e.bestPerCost(plan.Final, kinds)
		if !found {
			panic("planner: no upgrade candidate in a non-empty collection")
		}

		// best is too expensive, stop here
		if best.Cost > goldLeft {
			break
		}

		current, _ := plan.Final.Get(best.Habitat)
		goldLeft -= current.Cost
		plan.Steps = append(plan.Steps, UpgradeStep{
			Habitat:   best.Habitat,
			FromLevel: current.Level,
			ToLevel:   current.Level + 1,
			Cost:      current.Cost,
		})

		current.Level++
		current.Cost *= e.tunables.CostIncreaseFactor
		current.Gold *= e.tunables.GoldIncreaseFactor
		plan.Final.Set(best.Habitat, current)
	}

	plan.Remaining = goldLeft
	plan.Spent = budget - goldLeft
	return plan, nil
}

// bestPerCost returns the habitat with the strictly greatest gold per second
// per cost; ties go to the first kind in enumeration order.
func (e *Engine) bestPerCost(c habitat.Collection, kinds []habitat.Kind) (habitat.Metrics, bool) {
	var best habitat.Metrics
	found := false
	for _, k := range kinds {
		b, _ := c.Get(k)
		m := e.Derive(k, b)
		if !found || m.GoldPerSecondPerCost > best.GoldPerSecondPerCost {
			best = m
			found = true
		}
	}
	return best, found
}

// SpendHearts ranks every unlocked habitat by gold per second per heart,
// lowest first. Equal ratios keep enumeration order.
func (e *Engine) SpendHearts(basis habitat.Collection) []habitat.Metrics {
	kinds := basis.Kinds()
	all := make([]habitat.Metrics, 0, len(kinds))
	for _, k := range kinds {
		b, _ := basis.Get(k)
		all = append(all, e.Derive(k, b))
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].GoldPerSecondPerHeart < all[j].GoldPerSecondPerHeart
	})
	return all
}

// Best returns the highest-value entry of a SpendHearts ranking
func Best(ranking []habitat.Metrics) (habitat.Metrics, bool) {
	if len(ranking) == 0 {
		return habitat.Metrics{}, false
	}
	return ranking[len(ranking)-1], true
}

// PenguinPrice estimates how much gold one more penguin is worth: the extra
// gold per second a penguin adds, bought at the best current upgrade ratio.
func (e *Engine) PenguinPrice(basis habitat.Collection) (float64, error) {
	if err := basis.Validate(); err != nil {
		return 0, err
	}

	kinds := basis.Kinds()
	if len(kinds) == 0 {
		return 0, ErrNoHabitats
	}

	totalGoldPerSecond := 0.0
	for _, k := range kinds {
		b, _ := basis.Get(k)
		totalGoldPerSecond += e.Derive(k, b).GoldPerSecond
	}

	best, _ := e.bestPerCost(basis, kinds)
	if best.GoldPerSecondPerCost == 0 {
		return 0, nil
	}
	extra := totalGoldPerSecond*e.tunables.PenguinIncreaseFactor - totalGoldPerSecond
	return extra / best.GoldPerSecondPerCost, nil
}
