package runner

import (
	"encoding/json"

	"github.com/aretw0/semaforo/internal/runtime"
	"github.com/aretw0/semaforo/pkg/domain"
)

// jsonLine is one NDJSON record: the step plus the text the plain output
// would have shown for it.
type jsonLine struct {
	domain.Step
	Line string `json:"line"`
}

// JSONFormatter renders each step as a single JSON line, for machine
// consumption of the simulation output.
func JSONFormatter(step domain.Step, layout string) string {
	data, err := json.Marshal(jsonLine{
		Step: step,
		Line: runtime.PlainFormatter(step, layout),
	})
	if err != nil {
		// Step holds only strings, numbers and a time; this cannot fail.
		return "{}"
	}
	return string(data)
}
