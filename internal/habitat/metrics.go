package habitat

// Metrics are the yield figures derived from a basis. They are recomputed
// on every query and never stored.
type Metrics struct {
	Habitat               Kind    `json:"habitat"`
	Cost                  float64 `json:"cost"`
	GoldPerSecond         float64 `json:"gold_per_second"`
	GoldPerSecondPerCost  float64 `json:"gold_per_second_per_cost"`
	GoldPerSecondPerHeart float64 `json:"gold_per_second_per_heart"`
}

// Derive computes the metrics of k using this table's rate.
// Zero rate, cost or hearts produce Inf/NaN; Basis.Validate rejects those inputs.
func (t Table) Derive(k Kind, b Basis) Metrics {
	goldPerSecond := b.Gold / t[k].Rate
	return Metrics{
		Habitat:               k,
		Cost:                  b.Cost,
		GoldPerSecond:         goldPerSecond,
		GoldPerSecondPerCost:  goldPerSecond / b.Cost,
		GoldPerSecondPerHeart: goldPerSecond * b.Multiplier / b.Hearts,
	}
}

// Derive computes metrics with the default table
func Derive(k Kind, b Basis) Metrics {
	return DefaultTable.Derive(k, b)
}
