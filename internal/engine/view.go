package engine

import (
	"time"

	"github.com/talgya/econsim/internal/sim"
)

// View is a consistent, read-only copy of everything the presentation
// layer consumes: current and previous agents, derived metrics, history
// series, and scheduling state. Building it under the lock guarantees a
// never partially-mutated observation.
type View struct {
	Variant    string         `json:"variant"`
	StepIndex  int            `json:"step_index"`
	Agents     []sim.Agent    `json:"agents"`
	PrevAgents []sim.Agent    `json:"prev_agents"`
	Baseline   []float64      `json:"baseline,omitempty"`
	Total      float64        `json:"total"`
	BreadPrice float64        `json:"bread_price,omitempty"`
	Gini       float64        `json:"gini,omitempty"`
	Config     sim.Config     `json:"config"`
	Running    bool           `json:"running"`
	IntervalMS int            `json:"interval_ms"`
	History    []sim.Snapshot `json:"history,omitempty"`
}

// View snapshots the current state.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.sim
	v := View{
		Variant:    s.Config.Variant.String(),
		StepIndex:  s.StepIndex,
		Agents:     append([]sim.Agent(nil), s.Agents...),
		PrevAgents: append([]sim.Agent(nil), s.PrevAgents...),
		Total:      s.Total(),
		Config:     s.Config,
		Running:    c.cancel != nil,
		IntervalMS: int(c.interval / time.Millisecond),
	}

	switch s.Config.Variant {
	case sim.VariantBread:
		v.Baseline = append([]float64(nil), s.Baseline...)
		v.BreadPrice = s.BreadPrice()
		v.History = s.History.Snapshots()
	case sim.VariantGini:
		v.Gini = s.Gini()
	}

	return v
}
