package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/semaforo/pkg/domain"
)

// GraphOverlay highlights where a particular run enters the cycle.
type GraphOverlay struct {
	// Initial is the starting state. When it is outside the cycle its
	// normalization path is drawn as dotted edges into RRRR.
	Initial domain.Signals
}

// GenerateMermaid produces a Mermaid state chart of the signal cycle.
// Cycle states are rectangles, forced decay states are rounded, and every
// transition is labelled with the rule that causes it.
func GenerateMermaid(overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, state := range domain.ValidStates {
		fmt.Fprintf(&sb, "    %s[\"%s\"]\n", state, state)
	}
	for _, state := range domain.ValidStates {
		signals, _ := domain.ParseSignals(state)
		phase, _ := domain.NewPhase(signals)
		next := phase.Next()
		fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", state, ruleLabel(signals), next)
	}

	if overlay == nil {
		return sb.String()
	}

	initial := overlay.Initial
	if !initial.Valid() {
		fmt.Fprintf(&sb, "    %s(\"%s\")\n", initial, initial)
		from := initial
		for _, step := range domain.NormalizationPath(initial) {
			if !step.Valid() {
				fmt.Fprintf(&sb, "    %s(\"%s\")\n", step, step)
			}
			fmt.Fprintf(&sb, "    %s -. \"decay\" .-> %s\n", from, step)
			from = step
		}
	}

	sb.WriteString("\n    %% Overlay Styles\n")
	// Force black text (color:#000) for high-contrast regardless of theme (Light/Dark)
	sb.WriteString("    classDef initial fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
	fmt.Fprintf(&sb, "    class %s initial;\n", initial)

	return sb.String()
}

func ruleLabel(s domain.Signals) string {
	switch {
	case s.Has(domain.Green):
		return "G to Y"
	case s.Has(domain.Yellow):
		return "Y to R, R to G"
	default:
		return "North South to G"
	}
}
