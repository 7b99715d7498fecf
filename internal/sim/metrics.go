package sim

import "math"

// Total returns the summed nominal value of all agents.
func (s *Sim) Total() float64 {
	total := 0.0
	for _, a := range s.Agents {
		total += a.NominalValue
	}
	return total
}

// BreadPrice returns the current bread price: a configured fraction of
// total economic value.
func (s *Sim) BreadPrice() float64 {
	return s.Total() * s.Config.BreadFraction
}

// Recompute refreshes every derived per-agent quantity from the current
// nominal values: percentage shares always, bread affordability for the
// bread variant. Shares sum to 100 within floating rounding.
//
// A zero total cannot occur with a positive initial value and
// non-negative growth; the guard below only protects against degenerate
// configuration slipping past boundary validation.
func (s *Sim) Recompute() {
	total := s.Total()
	if total <= 0 {
		return
	}

	for i := range s.Agents {
		s.Agents[i].PercentageShare = 100 * s.Agents[i].NominalValue / total
	}

	if s.Config.Variant == VariantBread {
		price := total * s.Config.BreadFraction
		if price <= 0 {
			return
		}
		for i := range s.Agents {
			s.Agents[i].BreadAffordable = s.Agents[i].NominalValue / price
		}
	}
}

// Gini returns the Gini index of the agents' nominal values: the mean
// absolute difference over every ordered pair, normalized by twice the
// mean. Direct O(n²) double sum, exact for the fixed ten-agent set.
// Zero when all values are equal; always in [0, 1) for positive totals.
func (s *Sim) Gini() float64 {
	n := len(s.Agents)
	if n == 0 {
		return 0
	}

	total := s.Total()
	if total <= 0 {
		return 0
	}
	mean := total / float64(n)

	sum := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			sum += math.Abs(s.Agents[i].NominalValue - s.Agents[j].NominalValue)
		}
	}

	return sum / (2 * float64(n) * float64(n) * mean)
}
