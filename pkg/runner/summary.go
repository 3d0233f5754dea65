package runner

import (
	"fmt"
	"strings"

	"github.com/aretw0/semaforo/pkg/domain"
)

// Summary lists the parameters a simulation is about to run with.
func Summary(cfg domain.Config, layout string) string {
	var b strings.Builder
	b.WriteString("Following parameters were received for the signal simulation:\n")
	fmt.Fprintf(&b, "Initial State: %s\n", cfg.Signals)
	fmt.Fprintf(&b, "Red Green Signal Time: %d\n", cfg.RedGreen)
	fmt.Fprintf(&b, "Yellow Signal Time: %d\n", cfg.Yellow)
	fmt.Fprintf(&b, "Start Time: %s\n", cfg.Start.Format(layout))
	fmt.Fprintf(&b, "End Time: %s\n", cfg.End.Format(layout))
	return b.String()
}

// SummaryMarkdown is Summary as a markdown table, for terminal rendering.
func SummaryMarkdown(cfg domain.Config, layout string) string {
	var b strings.Builder
	b.WriteString("## Signal simulation\n\n")
	b.WriteString("| Parameter | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Initial state (N S E W) | `%s` |\n", cfg.Signals)
	fmt.Fprintf(&b, "| Red/green time | %ds |\n", cfg.RedGreen)
	fmt.Fprintf(&b, "| Yellow time | %ds |\n", cfg.Yellow)
	fmt.Fprintf(&b, "| Start | %s |\n", cfg.Start.Format(layout))
	fmt.Fprintf(&b, "| End | %s |\n", cfg.End.Format(layout))
	return b.String()
}
