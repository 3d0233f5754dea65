package semaforo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/semaforo/internal/runtime"
	"github.com/aretw0/semaforo/pkg/domain"
	"github.com/google/uuid"
)

// DefaultTimeLayout is the clock format used when no layout is configured.
const DefaultTimeLayout = runtime.DefaultTimeLayout

// Formatter turns a step into the line written to the output.
type Formatter = runtime.Formatter

// Simulator is the high-level entry point for the semaforo library.
// It wraps the internal signal system and provides a simplified API for consumers.
type Simulator struct {
	ID string

	cfg       domain.Config
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	output    io.Writer
	formatter Formatter
	layout    string
}

// New validates cfg and prepares a simulation. Nothing is displayed until Run.
func New(cfg domain.Config, opts ...Option) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	sim := &Simulator{
		cfg:    cfg,
		output: os.Stdout,
		layout: DefaultTimeLayout,
	}
	for _, opt := range opts {
		opt(sim)
	}

	if sim.ID == "" {
		sim.ID = uuid.NewString()
	}
	if sim.logger == nil {
		sim.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	sim.logger = sim.logger.With("run_id", sim.ID)

	return sim, nil
}

// Config returns the configuration the simulator was created with.
func (s *Simulator) Config() domain.Config {
	return s.cfg
}

// Run executes the simulation once, writing one line per step to the output.
func (s *Simulator) Run(ctx context.Context) error {
	system, err := runtime.NewSignalSystem(s.cfg,
		runtime.WithLogger(s.logger),
		runtime.WithLifecycleHooks(s.hooks),
		runtime.WithOutput(s.output),
		runtime.WithFormatter(s.formatter),
		runtime.WithTimeLayout(s.layout),
	)
	if err != nil {
		return err
	}

	s.logger.Info("Simulation started",
		"signals", s.cfg.Signals.String(),
		"window", s.cfg.Window().String(),
		"red_green", s.cfg.RedGreen,
		"yellow", s.cfg.Yellow,
	)
	if err := system.Run(ctx); err != nil {
		s.logger.Error("Simulation aborted", "error", err)
		return err
	}
	s.logger.Info("Simulation finished", "signals", system.Signals().String())
	return nil
}

// Result is the complete record of one simulation.
type Result struct {
	RunID   string         `json:"run_id"`
	Lines   []string       `json:"lines"`
	Steps   []domain.Step  `json:"steps"`
	Summary domain.Summary `json:"summary"`
}

// Simulate runs cfg to completion and returns every line and step instead of
// writing them to an output stream. Hooks passed in opts still fire.
func Simulate(ctx context.Context, cfg domain.Config, opts ...Option) (*Result, error) {
	sim, err := New(cfg, opts...)
	if err != nil {
		return nil, err
	}

	res := &Result{RunID: sim.ID, Steps: []domain.Step{}, Lines: []string{}}
	collector := domain.LifecycleHooks{
		OnStep: func(_ context.Context, step *domain.Step) {
			res.Steps = append(res.Steps, *step)
		},
		OnComplete: func(_ context.Context, summary *domain.Summary) {
			res.Summary = *summary
		},
	}
	sim.hooks = domain.CombineHooks(sim.hooks, collector)

	var buf bytes.Buffer
	sim.output = &buf

	if err := sim.Run(ctx); err != nil {
		return nil, err
	}

	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		if line != "" {
			res.Lines = append(res.Lines, line)
		}
	}
	return res, nil
}
