package runtime

import (
	"io"
	"log/slog"

	"github.com/aretw0/semaforo/pkg/domain"
)

// DefaultTimeLayout renders the simulated clock as hours, minutes, seconds and AM/PM.
const DefaultTimeLayout = "3:04:05 PM"

// Formatter turns a step into the line written to the output.
type Formatter func(step domain.Step, layout string) string

// Option configures a SignalSystem.
type Option func(*SignalSystem)

// WithLogger sets the structured logger. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(s *SignalSystem) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *SignalSystem) {
		s.hooks = hooks
	}
}

// WithOutput sets where display lines are written (default: os.Stdout).
func WithOutput(w io.Writer) Option {
	return func(s *SignalSystem) {
		if w != nil {
			s.out = w
		}
	}
}

// WithFormatter replaces PlainFormatter.
func WithFormatter(f Formatter) Option {
	return func(s *SignalSystem) {
		if f != nil {
			s.format = f
		}
	}
}

// WithTimeLayout sets the time.Format layout of the simulated clock.
func WithTimeLayout(layout string) Option {
	return func(s *SignalSystem) {
		if layout != "" {
			s.layout = layout
		}
	}
}
