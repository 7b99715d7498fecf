package report

import (
	"fmt"

	"github.com/talgya/econsim/internal/engine"
	"github.com/talgya/econsim/internal/sim"
)

// Narrative returns the insight text for the current step, selected by
// step bracket. The brackets are fixed: 0, under 5, under 20, under 50,
// and 50 or more.
func Narrative(v engine.View) string {
	if v.Variant == sim.VariantGini.String() {
		return giniNarrative(v)
	}
	return breadNarrative(v)
}

func breadNarrative(v engine.View) string {
	switch {
	case v.StepIndex == 0:
		return "Everyone starts equal: ten agents, the same purse, the same " +
			"number of loaves on the table. Press step and watch what the rule does."
	case v.StepIndex < 5:
		return fmt.Sprintf("After %d steps the spread is barely visible. "+
			"a1's purse is growing, and the trickle reaching the others still "+
			"roughly keeps pace with the bread price.", v.StepIndex)
	case v.StepIndex < 20:
		return fmt.Sprintf("By step %d the gap is opening. The bread price "+
			"rises with the whole economy, but only a1's income rises as fast — "+
			"the other nine are slowly losing loaves.", v.StepIndex)
	case v.StepIndex < 50:
		return fmt.Sprintf("Step %d: the pattern is unmistakable. a1 can "+
			"afford ever more bread while everyone else's affordability drifts "+
			"down, redistribution or not. Try moving the slider.", v.StepIndex)
	default:
		return fmt.Sprintf("After %d steps the outcome is locked in: "+
			"geometric growth at the top against a linear trickle below. Reset "+
			"and raise the redistribution rate to see how much it changes.", v.StepIndex)
	}
}

func giniNarrative(v engine.View) string {
	switch {
	case v.StepIndex == 0:
		return "A perfectly equal start: every agent holds 10% of the wealth " +
			"and the Gini index reads zero. Step the simulation to begin."
	case v.StepIndex < 5:
		return fmt.Sprintf("After %d steps inequality is just beginning to "+
			"register — the Gini index sits at %.3f.", v.StepIndex, v.Gini)
	case v.StepIndex < 20:
		return fmt.Sprintf("Step %d: a1's slice of the pie is visibly "+
			"swelling. Gini %.3f and climbing every step.", v.StepIndex, v.Gini)
	case v.StepIndex < 50:
		return fmt.Sprintf("By step %d concentration dominates the chart. "+
			"Gini %.3f — most of the economy now flows through one agent.", v.StepIndex, v.Gini)
	default:
		return fmt.Sprintf("After %d steps the pie is nearly a single slice "+
			"(Gini %.3f). This is what compounding advantage looks like.", v.StepIndex, v.Gini)
	}
}
