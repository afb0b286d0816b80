package habitat

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBasis() Basis {
	return Basis{Level: 1, Gold: 100, Cost: 50, Hearts: 10, Multiplier: 2}
}

func TestCollection_SetGet(t *testing.T) {
	var c Collection
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Kinds())

	c.Set(HotSpring, testBasis())
	c.Set(FishingSpot, testBasis())
	c.Set(Kind(99), testBasis())

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []Kind{FishingSpot, HotSpring}, c.Kinds())
	assert.True(t, c.Has(HotSpring))
	assert.False(t, c.Has(SeagullNest))

	b, ok := c.Get(FishingSpot)
	require.True(t, ok)
	assert.Equal(t, testBasis(), b)
}

func TestCollection_CopiesDoNotAlias(t *testing.T) {
	original := NewCollection(map[Kind]Basis{FishingSpot: testBasis()})
	copied := original

	b, _ := copied.Get(FishingSpot)
	b.Level = 10
	copied.Set(FishingSpot, b)

	got, _ := original.Get(FishingSpot)
	assert.Equal(t, 1, got.Level)
}

func TestCollection_JSON(t *testing.T) {
	c := NewCollection(map[Kind]Basis{
		FishingSpot:  testBasis(),
		FlowerGarden: {Level: 3, Gold: 50, Cost: 50, Hearts: 10, Multiplier: 3},
	})

	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"FishingSpot":{"level":1`)

	var decoded Collection
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, c, decoded)
}

func TestCollection_JSONUnknownHabitat(t *testing.T) {
	var c Collection
	err := json.Unmarshal([]byte(`{"Volcano":{"level":1}}`), &c)
	assert.ErrorIs(t, err, ErrUnknownHabitat)
}

func TestCollection_Validate(t *testing.T) {
	c := NewCollection(map[Kind]Basis{FishingSpot: testBasis()})
	require.NoError(t, c.Validate())

	bad := testBasis()
	bad.Cost = 0
	c.Set(SeagullNest, bad)
	err := c.Validate()
	require.ErrorIs(t, err, ErrInvalidBasis)
	assert.Contains(t, err.Error(), "SeagullNest")
}

func TestBasis_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Basis)
	}{
		{"level zero", func(b *Basis) { b.Level = 0 }},
		{"negative gold", func(b *Basis) { b.Gold = -1 }},
		{"zero cost", func(b *Basis) { b.Cost = 0 }},
		{"zero hearts", func(b *Basis) { b.Hearts = 0 }},
		{"multiplier below one", func(b *Basis) { b.Multiplier = 0.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := testBasis()
			tt.mutate(&b)
			assert.ErrorIs(t, b.Validate(), ErrInvalidBasis)
		})
	}
}

func TestDerive(t *testing.T) {
	m := Derive(FishingSpot, testBasis())
	assert.Equal(t, FishingSpot, m.Habitat)
	assert.Equal(t, 50.0, m.Cost)
	assert.InDelta(t, 100.0/3, m.GoldPerSecond, 1e-9)
	assert.InDelta(t, 100.0/3/50, m.GoldPerSecondPerCost, 1e-9)
	assert.InDelta(t, 100.0/3*2/10, m.GoldPerSecondPerHeart, 1e-9)

	m = Derive(FlowerGarden, Basis{Level: 1, Gold: 50, Cost: 50, Hearts: 10, Multiplier: 2})
	assert.InDelta(t, 0.2, m.GoldPerSecondPerCost, 1e-9)
}
