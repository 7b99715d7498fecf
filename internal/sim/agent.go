// Package sim implements the accumulation/redistribution toy economy:
// ten agents, one of which (the accumulator) grows geometrically each
// step and redistributes a configurable fraction of its growth evenly
// among the rest.
package sim

import "fmt"

// AgentCount is fixed — the whole model is built around ten actors.
const AgentCount = 10

// palette assigns one display color per agent slot. Opaque to the core;
// the frontend uses it to keep chart and table colors in sync.
var palette = [AgentCount]string{
	"#e6194b", "#3cb44b", "#ffe119", "#4363d8", "#f58231",
	"#911eb4", "#46f0f0", "#f032e6", "#bcf60c", "#fabebe",
}

// Agent is one simulated economic actor. Agent 0 is the accumulator.
type Agent struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	NominalValue    float64 `json:"nominal_value"`
	PercentageShare float64 `json:"percentage_share"`
	BreadAffordable float64 `json:"bread_affordable,omitempty"`
	Color           string  `json:"color"`
}

// newAgents builds the fixed agent set with every nominal value at initial.
func newAgents(initial float64) []Agent {
	agents := make([]Agent, AgentCount)
	for i := range agents {
		agents[i] = Agent{
			ID:           i,
			Name:         fmt.Sprintf("a%d", i+1),
			NominalValue: initial,
			Color:        palette[i],
		}
	}
	return agents
}

// copyAgents returns a structurally independent value copy of the agent
// list. Agents hold no reference types, so a slice copy is a deep copy.
func copyAgents(src []Agent) []Agent {
	dst := make([]Agent, len(src))
	copy(dst, src)
	return dst
}
