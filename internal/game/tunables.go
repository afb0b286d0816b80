package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/osse101/pisle-planner/internal/habitat"
)

// Default growth factors observed in game
const (
	CostIncreaseFactor    = 1.2
	GoldIncreaseFactor    = 1.1
	PenguinIncreaseFactor = 1.5
	ResearchGoldFactor    = 1.25
	ResearchCostFactor    = 0.8
)

// Tunables are the game-wide constants consumed by the planner
type Tunables struct {
	CostIncreaseFactor    float64
	GoldIncreaseFactor    float64
	PenguinIncreaseFactor float64
	ResearchGoldFactor    float64
	ResearchCostFactor    float64
	Table                 habitat.Table
}

// Defaults returns the built-in tunables
func Defaults() Tunables {
	return Tunables{
		CostIncreaseFactor:    CostIncreaseFactor,
		GoldIncreaseFactor:    GoldIncreaseFactor,
		PenguinIncreaseFactor: PenguinIncreaseFactor,
		ResearchGoldFactor:    ResearchGoldFactor,
		ResearchCostFactor:    ResearchCostFactor,
		Table:                 habitat.DefaultTable,
	}
}

// fileConfig mirrors the YAML document; nil fields keep their defaults
type fileConfig struct {
	CostIncreaseFactor    *float64           `yaml:"cost_increase_factor"`
	GoldIncreaseFactor    *float64           `yaml:"gold_increase_factor"`
	PenguinIncreaseFactor *float64           `yaml:"penguin_increase_factor"`
	ResearchGoldFactor    *float64           `yaml:"research_gold_factor"`
	ResearchCostFactor    *float64           `yaml:"research_cost_factor"`
	Rates                 map[string]float64 `yaml:"rates"`
}

// Load reads tunable overrides from a YAML file. An empty path returns Defaults.
func Load(path string) (Tunables, error) {
	if path == "" {
		return Defaults(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Tunables{}, fmt.Errorf("failed to read game config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse applies YAML overrides on top of Defaults
func Parse(data []byte) (Tunables, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Tunables{}, fmt.Errorf("failed to parse game config: %w", err)
	}

	t := Defaults()
	override(&t.CostIncreaseFactor, fc.CostIncreaseFactor)
	override(&t.GoldIncreaseFactor, fc.GoldIncreaseFactor)
	override(&t.PenguinIncreaseFactor, fc.PenguinIncreaseFactor)
	override(&t.ResearchGoldFactor, fc.ResearchGoldFactor)
	override(&t.ResearchCostFactor, fc.ResearchCostFactor)

	rates := make(map[habitat.Kind]float64, len(fc.Rates))
	for name, rate := range fc.Rates {
		k, err := habitat.ParseKind(name)
		if err != nil {
			return Tunables{}, fmt.Errorf("game config rates: %w", err)
		}
		if rate <= 0 {
			return Tunables{}, fmt.Errorf("game config rates: %s must be positive", k)
		}
		rates[k] = rate
	}
	t.Table = t.Table.WithRates(rates)

	if err := t.Validate(); err != nil {
		return Tunables{}, err
	}
	return t, nil
}

// Validate rejects factors that would stall or reverse the simulation
func (t Tunables) Validate() error {
	if t.CostIncreaseFactor <= 1 {
		return fmt.Errorf("cost_increase_factor must be greater than 1, got %v", t.CostIncreaseFactor)
	}
	if t.GoldIncreaseFactor <= 0 {
		return fmt.Errorf("gold_increase_factor must be positive, got %v", t.GoldIncreaseFactor)
	}
	if t.PenguinIncreaseFactor <= 1 {
		return fmt.Errorf("penguin_increase_factor must be greater than 1, got %v", t.PenguinIncreaseFactor)
	}
	if t.ResearchGoldFactor <= 0 || t.ResearchCostFactor <= 0 {
		return fmt.Errorf("research factors must be positive")
	}
	return nil
}

func override(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
