package sim

// Step advances the simulation by one discrete step:
//
//  1. record the state entering this step in the history buffer,
//  2. snapshot the agent set for delta display,
//  3. grow the accumulator by GrowthRate,
//  4. split growth*RedistributionRate evenly among the other agents,
//  5. recompute derived metrics.
//
// Total wealth afterwards equals total wealth before plus the
// accumulator's growth: redistribution only moves value, it never
// creates or destroys it.
func (s *Sim) Step() {
	if s.History != nil {
		s.History.Push(s.snapshot())
	}

	s.PrevAgents = copyAgents(s.Agents)

	previous := s.Agents[0].NominalValue
	s.Agents[0].NominalValue *= 1 + s.Config.GrowthRate
	growth := s.Agents[0].NominalValue - previous

	redistributed := growth * s.Config.RedistributionRate
	perAgent := redistributed / float64(len(s.Agents)-1)
	s.Agents[0].NominalValue -= redistributed
	for i := 1; i < len(s.Agents); i++ {
		s.Agents[i].NominalValue += perAgent
	}

	s.StepIndex++
	s.Recompute()
}

// StepN applies Step exactly n times sequentially. Every intermediate
// step is recorded in the history buffer; only the final state is
// surfaced to callers.
func (s *Sim) StepN(n int) {
	for i := 0; i < n; i++ {
		s.Step()
	}
}
