package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/aretw0/semaforo/pkg/domain"
)

// SignalSystem owns the four signals of one intersection and the simulated clock.
//
// Progress is measured in change units: a red/green phase is one unit and a
// yellow phase is yellow/redGreen units. The simulation stops once the
// completed units exceed the units that fit in the configured window.
type SignalSystem struct {
	signals  domain.Signals
	start    time.Time
	end      time.Time
	redGreen int
	yellow   int

	totalChanges     float64
	changesCompleted float64

	normalizeSteps int
	transitions    int

	out    io.Writer
	format Formatter
	layout string
	hooks  domain.LifecycleHooks
	logger *slog.Logger
}

// NewSignalSystem creates a system for a single run.
// cfg.RedGreen and cfg.Yellow must be positive.
func NewSignalSystem(cfg domain.Config, opts ...Option) (*SignalSystem, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	s := &SignalSystem{
		signals:  cfg.Signals,
		start:    cfg.Start,
		end:      cfg.End,
		redGreen: cfg.RedGreen,
		yellow:   cfg.Yellow,
		out:      os.Stdout,
		format:   PlainFormatter,
		layout:   DefaultTimeLayout,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	// Upper bound on changes, ignoring the shorter yellow phases.
	s.totalChanges = cfg.ChangeUnits()
	return s, nil
}

// Signals returns the current colours.
func (s *SignalSystem) Signals() domain.Signals {
	return s.signals
}

// ChangesCompleted returns the change units consumed so far.
func (s *SignalSystem) ChangesCompleted() float64 {
	return s.changesCompleted
}

// TotalChanges returns the change units available in the window.
func (s *SignalSystem) TotalChanges() float64 {
	return s.totalChanges
}

// IsStateValid reports whether the current state is one of domain.ValidStates.
func (s *SignalSystem) IsStateValid() bool {
	return s.signals.Valid()
}

func (s *SignalSystem) yellowRatio() float64 {
	return float64(s.yellow) / float64(s.redGreen)
}

// Run displays the initial state, normalizes it and then advances the cycle
// until the window is exhausted. It returns early only when writing a line
// fails or ctx is done.
func (s *SignalSystem) Run(ctx context.Context) error {
	yellowRatio := s.yellowRatio()

	if err := s.Display(ctx, domain.StepInitial); err != nil {
		return err
	}
	if err := s.Normalize(ctx); err != nil {
		return err
	}
	if err := s.Display(ctx, domain.StepNormalized); err != nil {
		return err
	}

	for s.changesCompleted <= s.totalChanges {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Change(ctx); err != nil {
			return err
		}
		if err := s.Display(ctx, domain.StepTransition); err != nil {
			return err
		}

		if s.signals.Has(domain.Yellow) {
			s.changesCompleted += yellowRatio
		} else {
			s.changesCompleted++
		}
	}

	summary := &domain.Summary{
		Transitions:      s.transitions,
		NormalizeSteps:   s.normalizeSteps,
		TotalChanges:     s.totalChanges,
		ChangesCompleted: s.changesCompleted,
	}
	s.logger.Debug("Simulation complete",
		"transitions", summary.Transitions,
		"normalize_steps", summary.NormalizeSteps,
		"changes_completed", summary.ChangesCompleted,
	)
	if s.hooks.OnComplete != nil {
		s.hooks.OnComplete(ctx, summary)
	}
	return nil
}

// Normalize brings the signals to a valid state.
//
// A valid state is kept and counts as the first completed change. Any other
// state is decayed (G to Y, everything else to R) until all signals are red,
// displaying every intermediate state. A decay that turned a green costs a
// full change, otherwise a yellow one. One more change is then added for the
// transition out of all red.
func (s *SignalSystem) Normalize(ctx context.Context) error {
	if s.IsStateValid() {
		s.changesCompleted = 1
		return nil
	}
	yellowRatio := s.yellowRatio()

	for {
		greenPresent := s.signals.Has(domain.Green)
		from := s.signals
		s.signals = s.signals.Decay()

		if greenPresent {
			s.changesCompleted++
		} else {
			s.changesCompleted += yellowRatio
		}
		s.normalizeSteps++

		s.logger.Debug("Normalize step", "from", from.String(), "to", s.signals.String())
		if s.hooks.OnNormalize != nil {
			s.hooks.OnNormalize(ctx, from, s.signals)
		}
		if err := s.Display(ctx, domain.StepNormalize); err != nil {
			return err
		}

		if s.signals == domain.AllRed {
			break
		}
	}
	s.changesCompleted++
	return nil
}

// Change applies one forward transition. It knows nothing about elapsed time.
// The current state must be valid, which Normalize guarantees; otherwise
// domain.ErrInvalidState is returned and the signals are left untouched.
func (s *SignalSystem) Change(ctx context.Context) error {
	phase, err := domain.NewPhase(s.signals)
	if err != nil {
		return err
	}
	from := s.signals
	s.signals = phase.Next().Signals()
	s.transitions++

	s.logger.Debug("Transition", "from", from.String(), "to", s.signals.String())
	if s.hooks.OnTransition != nil {
		s.hooks.OnTransition(ctx, from, s.signals)
	}
	return nil
}

// Step describes the current state as a step of the given kind.
func (s *SignalSystem) Step(kind domain.StepKind) domain.Step {
	secondsPassed := int64(math.Round(s.changesCompleted * float64(s.redGreen)))
	return domain.Step{
		Kind:        kind,
		Signals:     s.signals,
		ChangeUnits: s.changesCompleted,
		Seconds:     secondsPassed,
		At:          s.start.Add(time.Duration(secondsPassed) * time.Second),
	}
}

// Display writes one line for the current state.
func (s *SignalSystem) Display(ctx context.Context, kind domain.StepKind) error {
	step := s.Step(kind)
	if s.hooks.OnStep != nil {
		s.hooks.OnStep(ctx, &step)
	}
	if _, err := fmt.Fprintln(s.out, s.format(step, s.layout)); err != nil {
		return fmt.Errorf("failed to write step: %w", err)
	}
	return nil
}

// PlainFormatter prints header steps with a label and every other step as
// "<time> <state>".
func PlainFormatter(step domain.Step, layout string) string {
	switch step.Kind {
	case domain.StepInitial:
		return "Initial State: " + step.Signals.String()
	case domain.StepNormalized:
		return "Normalised State: " + step.Signals.String()
	}
	return step.At.Format(layout) + " " + step.Signals.String()
}
