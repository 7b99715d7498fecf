package report

import (
	"strings"
	"testing"
	"time"

	"github.com/talgya/econsim/internal/engine"
	"github.com/talgya/econsim/internal/sim"
)

func breadController() *engine.Controller {
	s := sim.New(sim.Config{
		Variant:            sim.VariantBread,
		InitialValue:       100,
		GrowthRate:         0.08,
		RedistributionRate: 0.15,
		BreadFraction:      0.005,
		BreadFractionMin:   0.0001,
		BreadFractionMax:   0.05,
	})
	return engine.NewController(s, time.Second, 50*time.Millisecond)
}

func giniController() *engine.Controller {
	s := sim.New(sim.Config{
		Variant:            sim.VariantGini,
		InitialValue:       100,
		GrowthRate:         0.08,
		RedistributionRate: 0.15,
	})
	return engine.NewController(s, time.Second, 50*time.Millisecond)
}

func TestClassify(t *testing.T) {
	cases := []struct {
		delta   float64
		epsilon float64
		want    Trend
	}{
		{0.02, breadDeltaEpsilon, TrendPositive},
		{-0.02, breadDeltaEpsilon, TrendNegative},
		{0.005, breadDeltaEpsilon, TrendNeutral},
		{-0.009, breadDeltaEpsilon, TrendNeutral},
		{0.0015, shareDeltaEpsilon, TrendPositive},
		{-0.0005, shareDeltaEpsilon, TrendNeutral},
		{0, shareDeltaEpsilon, TrendNeutral},
	}
	for _, tc := range cases {
		if got := classify(tc.delta, tc.epsilon); got != tc.want {
			t.Fatalf("classify(%v, %v) = %q, want %q", tc.delta, tc.epsilon, got, tc.want)
		}
	}
}

func TestRowsAllNeutralAfterReset(t *testing.T) {
	c := breadController()
	rows := Rows(c.View())

	if len(rows) != sim.AgentCount {
		t.Fatalf("rows = %d, want %d", len(rows), sim.AgentCount)
	}
	for _, row := range rows {
		if row.ShareTrend != TrendNeutral || row.BreadTrend != TrendNeutral {
			t.Fatalf("%s: trends after reset = %q/%q, want neutral", row.Name, row.ShareTrend, row.BreadTrend)
		}
		if row.ValueDelta != 0 || row.BreadDelta != 0 {
			t.Fatalf("%s: deltas after reset = %v/%v, want 0", row.Name, row.ValueDelta, row.BreadDelta)
		}
	}
}

func TestRowsTrendsAfterStep(t *testing.T) {
	c := breadController()
	c.Step()
	rows := Rows(c.View())

	// The accumulator's share rises, everyone else's falls.
	if rows[0].ShareTrend != TrendPositive {
		t.Fatalf("accumulator share trend = %q, want positive", rows[0].ShareTrend)
	}
	for _, row := range rows[1:] {
		if row.ShareTrend != TrendNegative {
			t.Fatalf("%s share trend = %q, want negative", row.Name, row.ShareTrend)
		}
	}
}

func TestSlicesCoverTheWholePie(t *testing.T) {
	c := giniController()
	c.StepN(10)
	slices := Slices(c.View())

	sum := 0.0
	for _, sl := range slices {
		sum += sl.Share
	}
	if sum < 99.999999 || sum > 100.000001 {
		t.Fatalf("slice shares sum to %v, want 100", sum)
	}
}

func TestSeriesPivot(t *testing.T) {
	c := breadController()
	c.StepN(4)
	series := Series(c.View())

	if len(series) != sim.AgentCount {
		t.Fatalf("series count = %d, want %d", len(series), sim.AgentCount)
	}
	for _, ls := range series {
		if len(ls.Steps) != 4 || len(ls.Values) != 4 {
			t.Fatalf("%s: %d steps / %d values, want 4/4", ls.Agent, len(ls.Steps), len(ls.Values))
		}
		if ls.Steps[0] != 0 || ls.Steps[3] != 3 {
			t.Fatalf("%s: step labels %v, want 0..3", ls.Agent, ls.Steps)
		}
	}
}

func TestNarrativeBrackets(t *testing.T) {
	c := giniController()

	seen := map[string]bool{}
	checkpoints := []int{0, 3, 12, 35, 80}
	last := 0
	for _, at := range checkpoints {
		c.StepN(at - last)
		last = at
		text := Narrative(c.View())
		if text == "" {
			t.Fatalf("empty narrative at step %d", at)
		}
		if seen[text] {
			t.Fatalf("narrative at step %d repeats an earlier bracket", at)
		}
		seen[text] = true
	}
}

func TestNarrativeMentionsGiniValue(t *testing.T) {
	c := giniController()
	c.StepN(10)
	text := Narrative(c.View())
	if !strings.Contains(text, "Gini") {
		t.Fatalf("gini narrative %q does not mention the index", text)
	}
}

func TestSummarize(t *testing.T) {
	c := breadController()
	c.Step()
	m := Summarize(c.View())

	if m.StepIndex != 1 {
		t.Fatalf("step index = %d, want 1", m.StepIndex)
	}
	if m.Total <= 1000 {
		t.Fatalf("total = %v, want > 1000 after one step", m.Total)
	}
	if m.TopShare <= 10 {
		t.Fatalf("top share = %v, want > 10 after one step", m.TopShare)
	}
	if m.BreadPrice <= 0 {
		t.Fatalf("bread price = %v, want > 0", m.BreadPrice)
	}
}
