package habitat

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidBasis = errors.New(ErrMsgInvalidBasis)

// Basis is the mutable numeric state of one habitat
type Basis struct {
	Level      int     `json:"level"`
	Gold       float64 `json:"gold"`       // gold produced per rate seconds
	Cost       float64 `json:"cost"`       // gold price of the next upgrade
	Hearts     float64 `json:"hearts"`     // heart price to evolve
	Multiplier float64 `json:"multiplier"` // evolution multiplier as a ratio, 3 = 300%
}

// Validate enforces the boundary rules for a basis: every field finite,
// level at least one, positive cost and hearts, multiplier of at least 1.
func (b Basis) Validate() error {
	if b.Level < 1 {
		return fmt.Errorf("%w: level must be at least 1, got %d", ErrInvalidBasis, b.Level)
	}

	checks := []struct {
		field string
		value float64
		min   float64
		open  bool
	}{
		{FieldGold, b.Gold, 0, false},
		{FieldCost, b.Cost, 0, true},
		{FieldHearts, b.Hearts, 0, true},
		{FieldMultiplier, b.Multiplier, 1, false},
	}
	for _, c := range checks {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return fmt.Errorf("%w: %s must be finite", ErrInvalidBasis, c.field)
		}
		if c.value < c.min || (c.open && c.value == c.min) {
			return fmt.Errorf("%w: %s out of range (%v)", ErrInvalidBasis, c.field, c.value)
		}
	}
	return nil
}
