package semaforo

import (
	"io"
	"log/slog"

	"github.com/aretw0/semaforo/pkg/domain"
)

// Option defines a functional option for configuring the Simulator.
type Option func(*Simulator)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Simulator) {
		s.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the simulator.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Simulator) {
		s.logger = logger
	}
}

// WithOutput sets the stream that receives the simulation lines (default: os.Stdout).
func WithOutput(w io.Writer) Option {
	return func(s *Simulator) {
		s.output = w
	}
}

// WithFormatter replaces the plain "<time> <state>" line format.
func WithFormatter(f Formatter) Option {
	return func(s *Simulator) {
		s.formatter = f
	}
}

// WithTimeLayout sets the time.Format layout of the simulated clock.
func WithTimeLayout(layout string) Option {
	return func(s *Simulator) {
		s.layout = layout
	}
}

// WithRunID fixes the run identifier instead of generating a random UUID.
func WithRunID(id string) Option {
	return func(s *Simulator) {
		s.ID = id
	}
}
