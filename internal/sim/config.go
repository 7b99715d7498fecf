package sim

// Variant selects which derived metrics a simulation computes.
type Variant uint8

const (
	// VariantBread tracks how many loaves each agent can afford at a
	// bread price derived from total economic value.
	VariantBread Variant = iota
	// VariantGini tracks wealth concentration via the Gini index.
	VariantGini
)

// String returns the route-friendly variant name.
func (v Variant) String() string {
	if v == VariantGini {
		return "gini"
	}
	return "bread"
}

// Config holds the tunable parameters of a simulation run. InitialValue
// and GrowthRate are fixed at reset; RedistributionRate and BreadFraction
// may be mutated at runtime and take effect on the next computation.
type Config struct {
	Variant      Variant `json:"variant"`
	InitialValue float64 `json:"initial_value"`
	GrowthRate   float64 `json:"growth_rate"`

	// RedistributionRate is the fraction of the accumulator's per-step
	// growth split evenly among the other agents. Clamped to [0, 1].
	RedistributionRate float64 `json:"redistribution_rate"`

	// BreadFraction defines the bread price as a fraction of total
	// economic value (bread variant only). Clamped to
	// [BreadFractionMin, BreadFractionMax]; the minimum must be strictly
	// positive so affordability never divides by zero.
	BreadFraction    float64 `json:"bread_fraction,omitempty"`
	BreadFractionMin float64 `json:"bread_fraction_min,omitempty"`
	BreadFractionMax float64 `json:"bread_fraction_max,omitempty"`
}

// clampRate bounds a redistribution rate to [0, 1].
func clampRate(rate float64) float64 {
	if rate < 0 {
		return 0
	}
	if rate > 1 {
		return 1
	}
	return rate
}

// clampFraction bounds a bread fraction to the configured range.
func (c Config) clampFraction(f float64) float64 {
	min := c.BreadFractionMin
	if min <= 0 {
		min = 1e-6
	}
	if f < min {
		return min
	}
	if c.BreadFractionMax > 0 && f > c.BreadFractionMax {
		return c.BreadFractionMax
	}
	return f
}
