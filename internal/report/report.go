// Package report shapes simulation state for the frontend: classified
// table rows, chart series, and the narrative insight text. Everything
// here is a pure function of an engine.View; nothing mutates state.
package report

import (
	"math"

	"github.com/talgya/econsim/internal/engine"
	"github.com/talgya/econsim/internal/sim"
)

// Delta classification thresholds. Movements smaller than these read as
// noise in the UI and are shown as neutral.
const (
	breadDeltaEpsilon = 0.01
	shareDeltaEpsilon = 0.001
)

// Trend classifies a per-step movement for table styling.
type Trend string

const (
	TrendPositive Trend = "positive"
	TrendNegative Trend = "negative"
	TrendNeutral  Trend = "neutral"
)

func classify(delta, epsilon float64) Trend {
	switch {
	case delta > epsilon:
		return TrendPositive
	case delta < -epsilon:
		return TrendNegative
	default:
		return TrendNeutral
	}
}

// Row is one table line: current values plus deltas against the
// previous step's snapshot.
type Row struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`

	NominalValue float64 `json:"nominal_value"`
	ValueDelta   float64 `json:"value_delta"`

	Share      float64 `json:"share"`
	ShareDelta float64 `json:"share_delta"`
	ShareTrend Trend   `json:"share_trend"`

	// Bread variant only.
	BreadAffordable   float64 `json:"bread_affordable,omitempty"`
	BreadDelta        float64 `json:"bread_delta,omitempty"`
	BreadTrend        Trend   `json:"bread_trend,omitempty"`
	BaselineChangePct float64 `json:"baseline_change_pct,omitempty"`
}

// Rows builds the table feed from a view. Right after a reset the
// previous snapshot duplicates the live agents, so every delta is zero
// and every trend neutral.
func Rows(v engine.View) []Row {
	bread := v.Variant == sim.VariantBread.String()

	rows := make([]Row, len(v.Agents))
	for i, a := range v.Agents {
		row := Row{
			ID:           a.ID,
			Name:         a.Name,
			Color:        a.Color,
			NominalValue: a.NominalValue,
			Share:        a.PercentageShare,
		}

		if i < len(v.PrevAgents) {
			prev := v.PrevAgents[i]
			row.ValueDelta = a.NominalValue - prev.NominalValue
			row.ShareDelta = a.PercentageShare - prev.PercentageShare
			if bread {
				row.BreadDelta = a.BreadAffordable - prev.BreadAffordable
			}
		}
		row.ShareTrend = classify(row.ShareDelta, shareDeltaEpsilon)

		if bread {
			row.BreadAffordable = a.BreadAffordable
			row.BreadTrend = classify(row.BreadDelta, breadDeltaEpsilon)
			if i < len(v.Baseline) && v.Baseline[i] > 0 {
				row.BaselineChangePct = 100 * (a.BreadAffordable - v.Baseline[i]) / v.Baseline[i]
			}
		}

		rows[i] = row
	}
	return rows
}

// Slice is one pie segment for the share chart.
type Slice struct {
	Name  string  `json:"name"`
	Share float64 `json:"share"`
	Color string  `json:"color"`
}

// Slices builds the proportional share chart feed.
func Slices(v engine.View) []Slice {
	slices := make([]Slice, len(v.Agents))
	for i, a := range v.Agents {
		slices[i] = Slice{Name: a.Name, Share: a.PercentageShare, Color: a.Color}
	}
	return slices
}

// LineSeries is one agent's affordability-over-time trace.
type LineSeries struct {
	Agent  string    `json:"agent"`
	Color  string    `json:"color"`
	Steps  []int     `json:"steps"`
	Values []float64 `json:"values"`
}

// Series pivots the history buffer into per-agent line traces, in agent
// creation order.
func Series(v engine.View) []LineSeries {
	series := make([]LineSeries, len(v.Agents))
	for i, a := range v.Agents {
		series[i] = LineSeries{Agent: a.Name, Color: a.Color}
	}
	byName := make(map[string]*LineSeries, len(series))
	for i := range series {
		byName[series[i].Agent] = &series[i]
	}

	for _, snap := range v.History {
		for _, p := range snap.Points {
			ls, ok := byName[p.Agent]
			if !ok {
				continue
			}
			ls.Steps = append(ls.Steps, snap.StepIndex)
			ls.Values = append(ls.Values, p.Affordable)
		}
	}
	return series
}

// Metrics is the headline figures block above the table.
type Metrics struct {
	StepIndex  int     `json:"step_index"`
	Total      float64 `json:"total"`
	TopShare   float64 `json:"top_share"`
	BreadPrice float64 `json:"bread_price,omitempty"`
	Gini       float64 `json:"gini,omitempty"`
}

// Summarize extracts the headline figures from a view.
func Summarize(v engine.View) Metrics {
	m := Metrics{
		StepIndex:  v.StepIndex,
		Total:      v.Total,
		BreadPrice: v.BreadPrice,
		Gini:       v.Gini,
	}
	for _, a := range v.Agents {
		m.TopShare = math.Max(m.TopShare, a.PercentageShare)
	}
	return m
}
