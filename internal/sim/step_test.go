package sim

import (
	"math"
	"testing"
)

func breadConfig() Config {
	return Config{
		Variant:            VariantBread,
		InitialValue:       100,
		GrowthRate:         0.08,
		RedistributionRate: 0.15,
		BreadFraction:      0.005,
		BreadFractionMin:   0.0001,
		BreadFractionMax:   0.05,
	}
}

func giniConfig() Config {
	cfg := breadConfig()
	cfg.Variant = VariantGini
	cfg.BreadFraction = 0
	return cfg
}

func approx(got, want, tol float64) bool {
	return math.Abs(got-want) <= tol
}

func TestStepReferenceScenario(t *testing.T) {
	// growth 0.08, redistribution 0.15, ten agents at 100.
	s := New(breadConfig())
	s.Step()

	if s.StepIndex != 1 {
		t.Fatalf("step index = %d, want 1", s.StepIndex)
	}

	// Growth is 8.0, redistributed total 1.2: the accumulator keeps
	// 100 + 8 - 1.2 and each of the other nine gains 1.2/9.
	if got := s.Agents[0].NominalValue; !approx(got, 106.8, 1e-9) {
		t.Fatalf("accumulator value = %v, want 106.8", got)
	}
	perAgent := 1.2 / 9
	for i := 1; i < AgentCount; i++ {
		if got := s.Agents[i].NominalValue; !approx(got, 100+perAgent, 1e-9) {
			t.Fatalf("agent %d value = %v, want %v", i, got, 100+perAgent)
		}
	}

	// Redistribution moves wealth; only growth adds new value.
	if got := s.Total(); !approx(got, 1008, 1e-9) {
		t.Fatalf("total = %v, want 1008", got)
	}
}

func TestStepConservesWealthPlusGrowth(t *testing.T) {
	s := New(breadConfig())
	for i := 0; i < 40; i++ {
		before := s.Total()
		growth := s.Agents[0].NominalValue * s.Config.GrowthRate
		s.Step()
		after := s.Total()
		if !approx(after, before+growth, 1e-9*after) {
			t.Fatalf("step %d: total %v -> %v, want %v", i+1, before, after, before+growth)
		}
		if after <= before {
			t.Fatalf("step %d: total did not increase (%v -> %v)", i+1, before, after)
		}
	}
}

func TestZeroRedistributionLeavesOthersUnchanged(t *testing.T) {
	s := New(breadConfig())
	s.SetRedistributionRate(0)
	s.StepN(25)

	for i := 1; i < AgentCount; i++ {
		if got := s.Agents[i].NominalValue; got != 100 {
			t.Fatalf("agent %d value = %v, want exactly 100", i, got)
		}
	}

	// The accumulator grows geometrically.
	want := 100 * math.Pow(1.08, 25)
	if got := s.Agents[0].NominalValue; !approx(got, want, 1e-9*want) {
		t.Fatalf("accumulator value = %v, want %v", got, want)
	}
}

func TestFullRedistributionHoldsAccumulatorFlat(t *testing.T) {
	s := New(breadConfig())
	s.SetRedistributionRate(1)
	s.Step()

	if got := s.Agents[0].NominalValue; !approx(got, 100, 1e-9) {
		t.Fatalf("accumulator value = %v, want 100 with full redistribution", got)
	}
	if got := s.Agents[5].NominalValue; !approx(got, 100+8.0/9, 1e-9) {
		t.Fatalf("agent 5 value = %v, want %v", got, 100+8.0/9)
	}
}

func TestStepNRecordsEveryIntermediateStep(t *testing.T) {
	s := New(breadConfig())
	s.StepN(7)

	if s.StepIndex != 7 {
		t.Fatalf("step index = %d, want 7", s.StepIndex)
	}
	if got := s.History.Len(); got != 7 {
		t.Fatalf("history length = %d, want 7 (one per intermediate step)", got)
	}
	snaps := s.History.Snapshots()
	for i, snap := range snaps {
		if snap.StepIndex != i {
			t.Fatalf("snapshot %d labeled step %d, want %d", i, snap.StepIndex, i)
		}
		if len(snap.Points) != AgentCount {
			t.Fatalf("snapshot %d has %d points, want %d", i, len(snap.Points), AgentCount)
		}
	}
}

func TestPrevAgentsIsIndependentCopy(t *testing.T) {
	s := New(breadConfig())
	s.Step()

	if got := s.PrevAgents[0].NominalValue; got != 100 {
		t.Fatalf("previous snapshot accumulator = %v, want 100", got)
	}
	// Mutating the live agents must not reach back into the snapshot.
	s.Agents[0].NominalValue = -1
	if got := s.PrevAgents[0].NominalValue; got != 100 {
		t.Fatalf("previous snapshot shares storage with live agents (got %v)", got)
	}
}

func TestResetRestoresInitialState(t *testing.T) {
	s := New(breadConfig())
	s.StepN(12)
	s.Reset()

	if s.StepIndex != 0 {
		t.Fatalf("step index after reset = %d, want 0", s.StepIndex)
	}
	for i, a := range s.Agents {
		if a.NominalValue != 100 {
			t.Fatalf("agent %d value after reset = %v, want 100", i, a.NominalValue)
		}
		if !approx(a.PercentageShare, 10, 1e-9) {
			t.Fatalf("agent %d share after reset = %v, want 10", i, a.PercentageShare)
		}
	}
	if got := s.History.Len(); got != 0 {
		t.Fatalf("history length after reset = %d, want 0", got)
	}

	// First delta display after a reset reads all-zero.
	for i := range s.Agents {
		if s.Agents[i].NominalValue != s.PrevAgents[i].NominalValue {
			t.Fatalf("agent %d previous snapshot differs right after reset", i)
		}
	}
}

func TestRuntimeParameterClamping(t *testing.T) {
	s := New(breadConfig())

	if got := s.SetRedistributionRate(1.7); got != 1 {
		t.Fatalf("redistribution rate clamped to %v, want 1", got)
	}
	if got := s.SetRedistributionRate(-0.2); got != 0 {
		t.Fatalf("redistribution rate clamped to %v, want 0", got)
	}
	if got := s.SetBreadFraction(0); got != 0.0001 {
		t.Fatalf("bread fraction clamped to %v, want 0.0001", got)
	}
	if got := s.SetBreadFraction(9); got != 0.05 {
		t.Fatalf("bread fraction clamped to %v, want 0.05", got)
	}
}

func TestSetBreadFractionRecomputesAfterStepZero(t *testing.T) {
	s := New(breadConfig())
	s.Step()
	before := s.Agents[3].BreadAffordable

	s.SetBreadFraction(0.01)
	after := s.Agents[3].BreadAffordable
	if step := s.StepIndex; step != 1 {
		t.Fatalf("step index changed to %d on slider move", step)
	}
	if !approx(after, before/2, 1e-9) {
		t.Fatalf("affordability after doubling bread fraction = %v, want %v", after, before/2)
	}

	// The step-0 baseline never rebases on slider moves.
	if got := s.Baseline[3]; !approx(got, 20, 1e-9) {
		t.Fatalf("baseline = %v, want 20 (value 100 at bread price 5)", got)
	}
}
