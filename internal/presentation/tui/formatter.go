package tui

import (
	"strings"

	"github.com/muesli/termenv"

	"github.com/aretw0/semaforo/internal/runtime"
	"github.com/aretw0/semaforo/pkg/domain"
)

var signalColors = map[domain.Color]string{
	domain.Red:    "#ef4444",
	domain.Yellow: "#eab308",
	domain.Green:  "#22c55e",
}

// ColorSignals paints each letter of s in its signal colour.
func ColorSignals(s domain.Signals, p termenv.Profile) string {
	var b strings.Builder
	for _, d := range domain.Directions {
		c := s.At(d)
		b.WriteString(p.String(c.String()).Foreground(p.Color(signalColors[c])).Bold().String())
	}
	return b.String()
}

// NewFormatter returns a formatter that prints the same lines as the plain
// one, with the signal letters coloured for profile p.
func NewFormatter(p termenv.Profile) runtime.Formatter {
	return func(step domain.Step, layout string) string {
		line := runtime.PlainFormatter(step, layout)
		prefix := strings.TrimSuffix(line, step.Signals.String())
		if step.Kind == domain.StepTransition {
			prefix = p.String(prefix).Faint().String()
		}
		return prefix + ColorSignals(step.Signals, p)
	}
}
