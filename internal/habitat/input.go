package habitat

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/osse101/pisle-planner/internal/scale"
)

var ErrInvalidInput = errors.New(ErrMsgInvalidInput)

// Input is a habitat row as typed by the player, before validation
type Input struct {
	Level      string `json:"level" yaml:"level"`
	Gold       string `json:"gold" yaml:"gold"`
	Cost       string `json:"cost" yaml:"cost"`
	Hearts     string `json:"hearts" yaml:"hearts"`
	Multiplier string `json:"multiplier" yaml:"multiplier"`
}

// FieldErrors maps a field name to a user-facing problem description
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return ErrMsgInvalidInput + ": " + strings.Join(parts, ", ")
}

func (fe FieldErrors) Unwrap() error {
	return ErrInvalidInput
}

// ParseLevel accepts a positive integer
func ParseLevel(s string) (int, error) {
	level, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || level < 1 {
		return 0, fmt.Errorf("%w: level %q", ErrInvalidInput, s)
	}
	return level, nil
}

// Parse validates every field. All problems are reported at once.
func (in Input) Parse() (Basis, error) {
	var b Basis
	errs := FieldErrors{}

	level, err := ParseLevel(in.Level)
	if err != nil {
		errs[FieldLevel] = "must be a whole number of at least 1"
	}
	b.Level = level

	shortFields := []struct {
		name  string
		raw   string
		value *float64
	}{
		{FieldGold, in.Gold, &b.Gold},
		{FieldCost, in.Cost, &b.Cost},
		{FieldHearts, in.Hearts, &b.Hearts},
	}
	for _, f := range shortFields {
		v, err := scale.ParseNumber(f.raw)
		if err != nil {
			errs[f.name] = "must look like 23.81g"
			continue
		}
		*f.value = v
	}

	multiplier, err := scale.ParseMultiplier(in.Multiplier)
	if err != nil {
		errs[FieldMultiplier] = "must be a percentage of at least 100%"
	}
	b.Multiplier = multiplier

	if len(errs) > 0 {
		return Basis{}, errs
	}
	if err := b.Validate(); err != nil {
		return Basis{}, err
	}
	return b, nil
}

// Merge overlays the non-empty fields of update onto in
func (in Input) Merge(update Input) Input {
	if update.Level != "" {
		in.Level = update.Level
	}
	if update.Gold != "" {
		in.Gold = update.Gold
	}
	if update.Cost != "" {
		in.Cost = update.Cost
	}
	if update.Hearts != "" {
		in.Hearts = update.Hearts
	}
	if update.Multiplier != "" {
		in.Multiplier = update.Multiplier
	}
	return in
}

// FormatInput renders a basis back into editable strings
func FormatInput(b Basis) Input {
	return Input{
		Level:      strconv.Itoa(b.Level),
		Gold:       scale.Format(b.Gold),
		Cost:       scale.Format(b.Cost),
		Hearts:     scale.Format(b.Hearts),
		Multiplier: scale.FormatMultiplier(b.Multiplier),
	}
}

// ParseInputs validates a set of rows into a collection. Problems are
// reported per "<habitat>.<field>".
func ParseInputs(rows map[Kind]Input) (Collection, error) {
	var c Collection
	errs := FieldErrors{}
	for k, in := range rows {
		b, err := in.Parse()
		var fe FieldErrors
		switch {
		case errors.As(err, &fe):
			for field, msg := range fe {
				errs[k.String()+"."+field] = msg
			}
		case err != nil:
			errs[k.String()] = err.Error()
		default:
			c.Set(k, b)
		}
	}
	if len(errs) > 0 {
		return Collection{}, errs
	}
	return c, nil
}
