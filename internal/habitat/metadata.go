package habitat

// Metadata is the immutable per-habitat data shipped with the game
type Metadata struct {
	Name string  `json:"name" yaml:"name"`
	Rate float64 `json:"rate" yaml:"rate"` // seconds per gold tick
}

// Table holds metadata for every habitat, indexed by Kind
type Table [KindCount]Metadata

// DefaultTable is the production table as observed in game
var DefaultTable = Table{
	FishingSpot:   {Name: "Fishing Spot", Rate: 3},
	FlowerGarden:  {Name: "Flower Garden", Rate: 5},
	GravellyField: {Name: "Gravelly Field", Rate: 5},
	HotSpring:     {Name: "Hot Spring", Rate: 7},
	AntarcticBase: {Name: "Antarctic Base", Rate: 7},
	SeagullNest:   {Name: "Seagull Nest", Rate: 10},
	AmusementPark: {Name: "Amusement Park", Rate: 10},
}

// WithRates returns a copy of the table with the given rates replaced.
// Non-positive overrides are ignored.
func (t Table) WithRates(rates map[Kind]float64) Table {
	for k, rate := range rates {
		if k.Valid() && rate > 0 {
			t[k].Rate = rate
		}
	}
	return t
}
