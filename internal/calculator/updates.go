package calculator

import (
	"github.com/osse101/pisle-planner/internal/habitat"
	"github.com/osse101/pisle-planner/internal/scale"
)

// EvolveUpdate is what the player reads off the game after evolving a habitat
type EvolveUpdate struct {
	Habitat    habitat.Kind `json:"habitat"`
	Hearts     float64      `json:"hearts"`
	Multiplier float64      `json:"multiplier"`
}

// ResearchUpdate carries the Fishing Spot gold and cost shown after research
type ResearchUpdate struct {
	Gold float64 `json:"gold"`
	Cost float64 `json:"cost"`
}

// ParseEvolveUpdate validates the raw evolve inputs
func ParseEvolveUpdate(kind, hearts, multiplier string) (EvolveUpdate, error) {
	var u EvolveUpdate
	errs := habitat.FieldErrors{}

	k, err := habitat.ParseKind(kind)
	if err != nil {
		errs[FieldHabitat] = err.Error()
	}
	u.Habitat = k

	h, err := scale.ParseNumber(hearts)
	if err != nil || h <= 0 {
		errs[FieldHearts] = "must look like 1.00d"
	}
	u.Hearts = h

	m, err := scale.ParseMultiplier(multiplier)
	if err != nil {
		errs[habitat.FieldMultiplier] = "must be a percentage of at least 100%"
	}
	u.Multiplier = m

	if len(errs) > 0 {
		return EvolveUpdate{}, errs
	}
	return u, nil
}

// ParseResearchUpdate validates the raw research inputs
func ParseResearchUpdate(gold, cost string) (ResearchUpdate, error) {
	var u ResearchUpdate
	errs := habitat.FieldErrors{}

	g, err := scale.ParseNumber(gold)
	if err != nil || g <= 0 {
		errs[FieldGold] = "must look like 23.81g"
	}
	u.Gold = g

	c, err := scale.ParseNumber(cost)
	if err != nil || c <= 0 {
		errs[FieldCost] = "must look like 23.81g"
	}
	u.Cost = c

	if len(errs) > 0 {
		return ResearchUpdate{}, errs
	}
	return u, nil
}
