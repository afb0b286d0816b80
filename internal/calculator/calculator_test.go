package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/pisle-planner/internal/domain"
	"github.com/osse101/pisle-planner/internal/habitat"
	"github.com/osse101/pisle-planner/internal/planner"
)

func newCalc() *Calculator {
	return New(planner.NewDefaultEngine())
}

func configured() domain.State {
	basis := habitat.NewCollection(map[habitat.Kind]habitat.Basis{
		habitat.FishingSpot:  {Level: 1, Gold: 100, Cost: 50, Hearts: 10, Multiplier: 2},
		habitat.FlowerGarden: {Level: 1, Gold: 50, Cost: 50, Hearts: 10, Multiplier: 2},
	})
	return domain.State{Penguins: 1, InitBasis: map[habitat.Kind]habitat.Input{}, Basis: &basis}
}

func TestSetupFlow(t *testing.T) {
	c := newCalc()
	s := domain.State{}

	s, err := c.Unlock(s, habitat.HotSpring)
	require.NoError(t, err)
	assert.Equal(t, habitat.Input{}, s.InitBasis[habitat.HotSpring])

	s, err = c.SetInput(s, habitat.HotSpring, habitat.Input{Level: "3", Gold: "1.5a", Cost: "2a"})
	require.NoError(t, err)
	s, err = c.SetInput(s, habitat.HotSpring, habitat.Input{Hearts: "12", Multiplier: "150%"})
	require.NoError(t, err)
	assert.Equal(t, habitat.Input{Level: "3", Gold: "1.5a", Cost: "2a", Hearts: "12", Multiplier: "150%"}, s.InitBasis[habitat.HotSpring])

	s, err = c.Save(s)
	require.NoError(t, err)
	require.True(t, s.Configured())
	assert.Empty(t, s.InitBasis)

	b, ok := s.Basis.Get(habitat.HotSpring)
	require.True(t, ok)
	assert.Equal(t, habitat.Basis{Level: 3, Gold: 1500, Cost: 2000, Hearts: 12, Multiplier: 1.5}, b)
}

func TestTransitionsDoNotMutateInput(t *testing.T) {
	c := newCalc()
	in := configured()
	before := in.Clone()

	_, err := c.AddPenguin(in)
	require.NoError(t, err)
	_, err = c.SuggestUpgrades(in, "60")
	require.NoError(t, err)
	_, err = c.StartEdit(in)
	require.NoError(t, err)
	_, err = c.Reset(in)
	require.NoError(t, err)

	assert.Equal(t, before, in)
}

func TestUnlock_RejectedOnceConfigured(t *testing.T) {
	_, err := newCalc().Unlock(configured(), habitat.HotSpring)
	assert.ErrorIs(t, err, domain.ErrAlreadyConfigured)

	_, err = newCalc().Unlock(domain.State{}, habitat.Kind(42))
	assert.ErrorIs(t, err, habitat.ErrUnknownHabitat)
}

func TestSave_Errors(t *testing.T) {
	c := newCalc()

	_, err := c.Save(domain.State{})
	assert.ErrorIs(t, err, domain.ErrNothingToSave)

	s, err := c.SetInput(domain.State{}, habitat.FishingSpot, habitat.Input{Level: "0", Gold: "x", Cost: "1", Hearts: "1", Multiplier: "100%"})
	require.NoError(t, err)
	s, err = c.SetInput(s, habitat.SeagullNest, habitat.Input{Level: "1", Gold: "1", Cost: "0", Hearts: "1", Multiplier: "100%"})
	require.NoError(t, err)

	_, err = c.Save(s)
	var fe habitat.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "FishingSpot.level")
	assert.Contains(t, fe, "FishingSpot.gold")
	assert.Contains(t, fe, "SeagullNest")
	assert.ErrorIs(t, err, habitat.ErrInvalidInput)
}

func TestResetKeepsPenguins(t *testing.T) {
	s, err := newCalc().Reset(configured())
	require.NoError(t, err)
	assert.False(t, s.Configured())
	assert.Empty(t, s.InitBasis)
	assert.Equal(t, 1, s.Penguins)
}

func TestStartEdit(t *testing.T) {
	c := newCalc()

	s, err := c.StartEdit(configured())
	require.NoError(t, err)
	assert.False(t, s.Configured())
	assert.Equal(t, habitat.Input{Level: "1", Gold: "100.00", Cost: "50.00", Hearts: "10.00", Multiplier: "200%"}, s.InitBasis[habitat.FishingSpot])

	// editing and saving again restores the same basis
	s, err = c.Save(s)
	require.NoError(t, err)
	assert.Equal(t, *configured().Basis, *s.Basis)

	_, err = c.StartEdit(domain.State{})
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestUpgradeSuggestAndCommit(t *testing.T) {
	c := newCalc()

	s, err := c.SuggestUpgrades(configured(), "60")
	require.NoError(t, err)
	require.NotNil(t, s.Uncommitted)
	assert.Equal(t, domain.ChangeUpgrade, s.Uncommitted.Type)
	assert.Equal(t, "60", s.UpgradeBudget)

	fishing, _ := s.Basis.Get(habitat.FishingSpot)
	assert.Equal(t, 1, fishing.Level)

	s, err = c.Commit(s, CommitInput{})
	require.NoError(t, err)
	assert.Nil(t, s.Uncommitted)

	fishing, _ = s.Basis.Get(habitat.FishingSpot)
	assert.Equal(t, 2, fishing.Level)
	assert.InDelta(t, 110, fishing.Gold, 1e-9)
	assert.InDelta(t, 60, fishing.Cost, 1e-9)
}

func TestCommitUpgrade_InconsistentPlan(t *testing.T) {
	c := newCalc()

	noPlan := configured()
	noPlan.Uncommitted = &domain.Change{Type: domain.ChangeUpgrade}

	wider := habitat.NewCollection(map[habitat.Kind]habitat.Basis{
		habitat.FishingSpot:  {Level: 2, Gold: 110, Cost: 60, Hearts: 10, Multiplier: 2},
		habitat.FlowerGarden: {Level: 1, Gold: 50, Cost: 50, Hearts: 10, Multiplier: 2},
		habitat.HotSpring:    {Level: 1, Gold: 10, Cost: 5, Hearts: 1, Multiplier: 1},
	})
	extraHabitat := configured()
	extraHabitat.Uncommitted = &domain.Change{
		Type: domain.ChangeUpgrade,
		Plan: &planner.UpgradePlan{Original: *extraHabitat.Basis, Final: wider},
	}

	for name, s := range map[string]domain.State{"no plan": noPlan, "plan unlocks habitat": extraHabitat} {
		t.Run(name, func(t *testing.T) {
			out, err := c.Commit(s, CommitInput{})
			require.ErrorIs(t, err, domain.ErrCorruptState)
			assert.Equal(t, s, out)
			assert.False(t, out.Basis.Has(habitat.HotSpring))
		})
	}
}

func TestSuggestUpgrades_Errors(t *testing.T) {
	c := newCalc()

	_, err := c.SuggestUpgrades(domain.State{}, "10")
	assert.ErrorIs(t, err, domain.ErrNotConfigured)

	_, err = c.SuggestUpgrades(configured(), "lots")
	var fe habitat.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, FieldBudget)
}

func TestEvolveSuggestAndCommit(t *testing.T) {
	c := newCalc()

	s, err := c.SuggestEvolve(configured())
	require.NoError(t, err)
	require.NotNil(t, s.Uncommitted.Snapshot)
	assert.Equal(t, *s.Basis, *s.Uncommitted.Snapshot)

	s, err = c.Commit(s, CommitInput{Evolve: &EvolveUpdate{Habitat: habitat.FishingSpot, Hearts: 40, Multiplier: 3}})
	require.NoError(t, err)
	assert.Nil(t, s.Uncommitted)

	fishing, _ := s.Basis.Get(habitat.FishingSpot)
	assert.Equal(t, habitat.Basis{Level: 1, Gold: 200, Cost: 50, Hearts: 40, Multiplier: 3}, fishing)
}

func TestCommitEvolve_Errors(t *testing.T) {
	c := newCalc()

	_, err := c.CommitEvolve(configured(), EvolveUpdate{Habitat: habitat.FishingSpot, Hearts: 1, Multiplier: 1})
	assert.ErrorIs(t, err, domain.ErrNoPendingChange)

	s, err := c.SuggestEvolve(configured())
	require.NoError(t, err)

	_, err = c.CommitEvolve(s, EvolveUpdate{Habitat: habitat.AmusementPark, Hearts: 1, Multiplier: 1})
	assert.ErrorIs(t, err, domain.ErrHabitatLocked)

	_, err = c.CommitUpgrade(s)
	assert.ErrorIs(t, err, domain.ErrChangeMismatch)

	_, err = c.Commit(s, CommitInput{})
	var fe habitat.FieldErrors
	assert.ErrorAs(t, err, &fe)
}

func TestResearch_DefaultFactors(t *testing.T) {
	c := newCalc()

	s, err := c.SuggestResearch(configured())
	require.NoError(t, err)
	s, err = c.Commit(s, CommitInput{})
	require.NoError(t, err)

	garden, _ := s.Basis.Get(habitat.FlowerGarden)
	assert.InDelta(t, 62.5, garden.Gold, 1e-9)
	assert.InDelta(t, 40, garden.Cost, 1e-9)
}

func TestResearch_FromFishingSpotFigures(t *testing.T) {
	c := newCalc()

	s, err := c.SuggestResearch(configured())
	require.NoError(t, err)
	s, err = c.CommitResearch(s, &ResearchUpdate{Gold: 150, Cost: 25})
	require.NoError(t, err)

	fishing, _ := s.Basis.Get(habitat.FishingSpot)
	garden, _ := s.Basis.Get(habitat.FlowerGarden)
	assert.InDelta(t, 150, fishing.Gold, 1e-9)
	assert.InDelta(t, 25, fishing.Cost, 1e-9)
	assert.InDelta(t, 75, garden.Gold, 1e-9)
	assert.InDelta(t, 25, garden.Cost, 1e-9)
}

func TestResearch_NeedsFishingSpot(t *testing.T) {
	c := newCalc()
	basis := habitat.NewCollection(map[habitat.Kind]habitat.Basis{
		habitat.HotSpring: {Level: 1, Gold: 1, Cost: 1, Hearts: 1, Multiplier: 1},
	})

	s, err := c.SuggestResearch(domain.State{Basis: &basis})
	require.NoError(t, err)
	_, err = c.CommitResearch(s, &ResearchUpdate{Gold: 2, Cost: 2})
	assert.ErrorIs(t, err, domain.ErrHabitatLocked)
}

func TestCancel(t *testing.T) {
	c := newCalc()

	s, err := c.SuggestEvolve(configured())
	require.NoError(t, err)
	s, err = c.Cancel(s)
	require.NoError(t, err)
	assert.Nil(t, s.Uncommitted)

	_, err = c.Commit(s, CommitInput{})
	assert.ErrorIs(t, err, domain.ErrNoPendingChange)
}

func TestAddPenguin(t *testing.T) {
	c := newCalc()

	s, err := c.SuggestEvolve(configured())
	require.NoError(t, err)
	s, err = c.AddPenguin(s)
	require.NoError(t, err)

	assert.Equal(t, 2, s.Penguins)
	assert.Nil(t, s.Uncommitted)
	fishing, _ := s.Basis.Get(habitat.FishingSpot)
	assert.InDelta(t, 150, fishing.Gold, 1e-9)

	_, err = c.AddPenguin(domain.State{})
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestQueries(t *testing.T) {
	c := newCalc()

	ranking, err := c.Ranking(configured())
	require.NoError(t, err)
	require.Len(t, ranking, 2)
	assert.Equal(t, habitat.FlowerGarden, ranking[0].Habitat)
	assert.Equal(t, habitat.FishingSpot, ranking[1].Habitat)

	price, err := c.PenguinPrice(configured())
	require.NoError(t, err)
	assert.InDelta(t, 32.5, price, 1e-9)

	_, err = c.Ranking(domain.State{})
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
	_, err = c.PenguinPrice(domain.State{})
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestParseUpdates(t *testing.T) {
	u, err := ParseEvolveUpdate("hot spring", "1.2b", "250%")
	require.NoError(t, err)
	assert.Equal(t, EvolveUpdate{Habitat: habitat.HotSpring, Hearts: 1.2e6, Multiplier: 2.5}, u)

	_, err = ParseEvolveUpdate("volcano", "0", "50%")
	var fe habitat.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Len(t, fe, 3)

	r, err := ParseResearchUpdate("3a", "40")
	require.NoError(t, err)
	assert.Equal(t, ResearchUpdate{Gold: 3000, Cost: 40}, r)

	_, err = ParseResearchUpdate("", "-1")
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, FieldGold)
	assert.Contains(t, fe, FieldCost)
}

func TestUnlockedKinds(t *testing.T) {
	s := domain.State{InitBasis: map[habitat.Kind]habitat.Input{
		habitat.AmusementPark: {},
		habitat.FishingSpot:   {},
		habitat.HotSpring:     {},
	}}
	assert.Equal(t, []habitat.Kind{habitat.FishingSpot, habitat.HotSpring, habitat.AmusementPark}, UnlockedKinds(s))
}
