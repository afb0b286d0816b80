package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/osse101/pisle-planner/internal/domain"
	"github.com/osse101/pisle-planner/internal/exportstate"
	"github.com/osse101/pisle-planner/internal/habitat"
	"github.com/osse101/pisle-planner/internal/planner"
	"github.com/osse101/pisle-planner/internal/scale"
)

var errMissingToken = errors.New("usage: pisle import <token|url>")

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// UpgradeCommand spends a gold budget on the best upgrades
type UpgradeCommand struct {
	engine *planner.Engine
	out    *output
}

func (c *UpgradeCommand) Name() string {
	return "upgrade"
}

func (c *UpgradeCommand) Description() string {
	return "Spend a gold budget on the best upgrades (-budget 1.5j -basis file)"
}

func (c *UpgradeCommand) Run(args []string) error {
	fs := newFlagSet(c.Name())
	budgetStr := fs.String("budget", "", "gold to spend, short notation allowed")
	basisPath := basisFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	budget, err := scale.ParseNumber(*budgetStr)
	if err != nil {
		return fmt.Errorf("budget: %w", err)
	}
	basis, err := loadBasis(*basisPath)
	if err != nil {
		return err
	}

	plan, err := c.engine.SpendGold(budget, basis)
	if err != nil {
		return err
	}

	c.out.printf("Budget %s\n", c.out.amount(plan.Budget))
	for _, step := range plan.Steps {
		c.out.printf("  %-16s %d -> %d  cost %s\n",
			step.Habitat.Name(), step.FromLevel, step.ToLevel, scale.Format(step.Cost))
	}
	if len(plan.Steps) == 0 {
		c.out.printf("  nothing affordable\n")
	}
	c.out.printf("Spent %s, remaining %s\n", c.out.amount(plan.Spent), c.out.amount(plan.Remaining))
	c.out.printf("Result:\n")
	c.out.basis(plan.Final)
	return nil
}

// EvolveCommand ranks habitats by gold per heart
type EvolveCommand struct {
	engine *planner.Engine
	out    *output
}

func (c *EvolveCommand) Name() string {
	return "evolve"
}

func (c *EvolveCommand) Description() string {
	return "Rank habitats by gold per heart (-basis file)"
}

func (c *EvolveCommand) Run(args []string) error {
	fs := newFlagSet(c.Name())
	basisPath := basisFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	basis, err := loadBasis(*basisPath)
	if err != nil {
		return err
	}

	ranking := c.engine.SpendHearts(basis)
	c.out.printf("Ranking (worst to best):\n")
	for _, m := range ranking {
		c.out.metrics(m)
	}
	if best, ok := planner.Best(ranking); ok {
		c.out.printf("Evolve next: %s\n", best.Habitat.Name())
	}
	return nil
}

// PenguinCommand prices one more penguin
type PenguinCommand struct {
	engine *planner.Engine
	out    *output
}

func (c *PenguinCommand) Name() string {
	return "penguin"
}

func (c *PenguinCommand) Description() string {
	return "Estimate the gold value of one more penguin (-basis file)"
}

func (c *PenguinCommand) Run(args []string) error {
	fs := newFlagSet(c.Name())
	basisPath := basisFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	basis, err := loadBasis(*basisPath)
	if err != nil {
		return err
	}

	price, err := c.engine.PenguinPrice(basis)
	if err != nil {
		return err
	}
	c.out.printf("Penguin price: %s\n", c.out.amount(price))
	return nil
}

// ExportCommand turns a basis file into a shareable state URL
type ExportCommand struct {
	out *output
	now func() time.Time
}

func (c *ExportCommand) Name() string {
	return "export"
}

func (c *ExportCommand) Description() string {
	return "Print a shareable state URL for a basis (-basis file)"
}

func (c *ExportCommand) Run(args []string) error {
	fs := newFlagSet(c.Name())
	basisPath := basisFlag(fs)
	penguins := fs.Int("penguins", 0, "penguins bought so far")
	if err := fs.Parse(args); err != nil {
		return err
	}

	basis, err := loadBasis(*basisPath)
	if err != nil {
		return err
	}

	now := time.Now
	if c.now != nil {
		now = c.now
	}

	rows := make(map[habitat.Kind]habitat.Input, basis.Len())
	for _, k := range basis.Kinds() {
		b, _ := basis.Get(k)
		rows[k] = habitat.FormatInput(b)
	}
	state := domain.State{
		UpdatedAt: now().UTC(),
		Penguins:  *penguins,
		InitBasis: rows,
		Basis:     &basis,
	}

	u, err := exportstate.ExportURL(state)
	if err != nil {
		return err
	}
	c.out.printf("%s\n", u)
	return nil
}

// ImportCommand decodes a shared token or URL and prints the state
type ImportCommand struct {
	engine *planner.Engine
	out    *output
}

func (c *ImportCommand) Name() string {
	return "import"
}

func (c *ImportCommand) Description() string {
	return "Decode a shared state token or URL"
}

func (c *ImportCommand) Run(args []string) error {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return errMissingToken
	}

	state, err := decodeShared(args[0])
	if err != nil {
		return err
	}

	c.out.printf("Updated: %s\n", state.UpdatedAt.Format(time.RFC3339))
	c.out.printf("Penguins: %d\n", state.Penguins)
	if state.Uncommitted != nil {
		c.out.printf("Pending change: %s\n", state.Uncommitted.Type)
	}
	if !state.Configured() {
		c.out.printf("Setup not finished\n")
		return nil
	}

	c.out.printf("Habitats:\n")
	c.out.basis(*state.Basis)
	c.out.printf("Metrics:\n")
	for _, k := range state.Basis.Kinds() {
		b, _ := state.Basis.Get(k)
		c.out.metrics(c.engine.Derive(k, b))
	}
	return nil
}

// decodeShared accepts either a full URL with a state query parameter or a
// bare token
func decodeShared(arg string) (domain.State, error) {
	arg = strings.TrimSpace(arg)
	if strings.Contains(arg, exportstate.QueryParam+"=") {
		s, err := exportstate.ImportURL(arg)
		if err != nil {
			return domain.State{}, err
		}
		if s == nil {
			return domain.State{}, errMissingToken
		}
		return *s, nil
	}
	return exportstate.Decode(arg)
}

// HabitatsCommand lists the known habitats
type HabitatsCommand struct {
	engine *planner.Engine
	out    *output
}

func (c *HabitatsCommand) Name() string {
	return "habitats"
}

func (c *HabitatsCommand) Description() string {
	return "List habitats and their production rates"
}

func (c *HabitatsCommand) Run(args []string) error {
	table := c.engine.Tunables().Table
	for _, k := range habitat.All {
		c.out.printf("  %-14s %-16s every %gs\n", k.String(), table[k].Name, table[k].Rate)
	}
	return nil
}
