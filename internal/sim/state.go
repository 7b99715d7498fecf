package sim

// Sim is the complete state of one simulation: the agent set, the step
// counter, the previous-step snapshot used for delta display, and (bread
// variant) the fixed step-0 affordability baseline plus the history
// buffer feeding the line chart.
//
// Sim is not safe for concurrent use; the engine controller serializes
// all access.
type Sim struct {
	Config    Config
	StepIndex int
	Agents    []Agent

	// PrevAgents is a value copy of the agent set as it stood before the
	// most recent step. Right after a reset it duplicates the fresh
	// agents so the first delta display reads all-zero.
	PrevAgents []Agent

	// Baseline holds each agent's bread affordability as computed at
	// step 0. It is captured once per run and never rebased, even when
	// the bread fraction is adjusted later.
	Baseline []float64

	// History is nil for the gini variant.
	History *History
}

// New constructs a simulation and brings it to its initial state.
func New(cfg Config) *Sim {
	s := &Sim{Config: cfg}
	if cfg.Variant == VariantBread {
		s.History = NewHistory(HistoryCapacity)
	}
	s.Reset()
	return s
}

// Reset reinitializes the run: all agents back to the configured initial
// value, step counter to zero, history cleared, baseline recaptured.
// Runtime-tunable parameters (redistribution rate, bread fraction) keep
// their current values.
func (s *Sim) Reset() {
	s.StepIndex = 0
	s.Agents = newAgents(s.Config.InitialValue)
	s.Recompute()
	s.PrevAgents = copyAgents(s.Agents)
	if s.Config.Variant == VariantBread {
		s.Baseline = make([]float64, len(s.Agents))
		for i, a := range s.Agents {
			s.Baseline[i] = a.BreadAffordable
		}
	}
	if s.History != nil {
		s.History.Clear()
	}
}

// SetRedistributionRate updates the redistribution rate, clamped to
// [0, 1]. Takes effect on the next step; never retroactive.
func (s *Sim) SetRedistributionRate(rate float64) float64 {
	s.Config.RedistributionRate = clampRate(rate)
	return s.Config.RedistributionRate
}

// SetBreadFraction updates the bread fraction, clamped to the configured
// range. If the run has advanced past step 0 the derived metrics are
// recomputed immediately, without advancing the step. The step-0
// baseline is deliberately left untouched.
func (s *Sim) SetBreadFraction(f float64) float64 {
	s.Config.BreadFraction = s.Config.clampFraction(f)
	if s.StepIndex > 0 {
		s.Recompute()
	}
	return s.Config.BreadFraction
}
