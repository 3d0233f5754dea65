package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/muesli/termenv"
	"github.com/prometheus/common/expfmt"

	"github.com/aretw0/semaforo"
	"github.com/aretw0/semaforo/internal/presentation/tui"
	"github.com/aretw0/semaforo/pkg/config"
	"github.com/aretw0/semaforo/pkg/domain"
	"github.com/aretw0/semaforo/pkg/observability"
	"github.com/aretw0/semaforo/pkg/runner"
)

// RunOptions contains all the configuration for the Run command.
// Zero values mean "not given on the command line".
type RunOptions struct {
	ConfigPath string
	State      string
	RedGreen   int
	Yellow     int
	Window     string // "HH:MM HH:MM"
	TimeLayout string
	NoPrompt   bool
	Plain      bool
	Debug      bool
	Metrics    bool
	JSON       bool // NDJSON steps only, no prompts or summary
}

// hasValues reports whether any simulation parameter came from flags.
func (o RunOptions) hasValues() bool {
	return o.State != "" || o.RedGreen != 0 || o.Yellow != 0 || o.Window != ""
}

// console is the process edge the run command talks to.
type console struct {
	in       io.Reader
	out      io.Writer
	terminal bool
	profile  termenv.Profile
	now      func() time.Time
}

// Execute handles the 'run' command logic.
func Execute(opts RunOptions) error {
	ctx := NewSignalContext(context.Background())
	defer ctx.Cancel()

	c := console{
		in:       os.Stdin,
		out:      os.Stdout,
		terminal: isTerminal(os.Stdin) && isTerminal(os.Stdout),
		profile:  termenv.ColorProfile(),
		now:      time.Now,
	}

	err := run(ctx, opts, c)
	logCompletion(c.out, err, ctx.Signal())
	return handleExecutionError(err)
}

func run(ctx context.Context, opts RunOptions, c console) error {
	logger := createLogger(opts.Debug)
	fancy := c.terminal && !opts.Plain && !opts.JSON

	cfg, layout, err := resolveConfig(opts, c.now())
	if err != nil {
		return err
	}

	if c.terminal && !opts.NoPrompt && !opts.JSON && !opts.hasValues() {
		if fancy {
			tui.PrintBanner(c.out, c.profile)
		}
		cfg, err = runner.NewPrompter(c.in, c.out).Collect(ctx, c.now())
		if err != nil {
			return err
		}
	}

	if !opts.JSON {
		printSummary(c.out, cfg, layout, fancy)
	}

	hooks := []domain.LifecycleHooks{}
	if opts.Debug {
		hooks = append(hooks, createDebugHooks(logger))
	}
	var metrics *observability.Metrics
	if opts.Metrics {
		metrics = observability.NewMetrics(false)
		hooks = append(hooks, metrics.Hooks())
	}

	simOpts := []semaforo.Option{
		semaforo.WithLogger(logger),
		semaforo.WithOutput(c.out),
		semaforo.WithTimeLayout(layout),
		semaforo.WithLifecycleHooks(domain.CombineHooks(hooks...)),
	}
	switch {
	case opts.JSON:
		simOpts = append(simOpts, semaforo.WithFormatter(runner.JSONFormatter))
	case fancy:
		simOpts = append(simOpts, semaforo.WithFormatter(tui.NewFormatter(c.profile)))
	}

	sim, err := semaforo.New(cfg, simOpts...)
	if err != nil {
		return err
	}
	if err := sim.Run(ctx); err != nil {
		return err
	}

	if metrics != nil && !opts.JSON {
		return printMetrics(c.out, metrics)
	}
	return nil
}

// resolveConfig layers defaults, the config file and flags, in that order.
func resolveConfig(opts RunOptions, now time.Time) (domain.Config, string, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultPath
	}
	file, err := config.Load(path)
	if err != nil {
		return domain.Config{}, "", err
	}
	cfg, err := file.Resolve(now)
	if err != nil {
		return domain.Config{}, "", fmt.Errorf("%s: %w", path, err)
	}

	layout := semaforo.DefaultTimeLayout
	if file.TimeLayout != "" {
		layout = file.TimeLayout
	}
	if opts.TimeLayout != "" {
		layout = opts.TimeLayout
	}

	if opts.State != "" {
		if cfg.Signals, err = domain.ParseSignals(opts.State); err != nil {
			return cfg, layout, fmt.Errorf("--state: %w", err)
		}
	}
	if opts.RedGreen != 0 {
		cfg.RedGreen = opts.RedGreen
	}
	if opts.Yellow != 0 {
		cfg.Yellow = opts.Yellow
	}
	if opts.Window != "" {
		if cfg.Start, cfg.End, err = config.ParseWindow(opts.Window, now); err != nil {
			return cfg, layout, fmt.Errorf("--window: %w", err)
		}
	}
	return cfg, layout, nil
}

func printSummary(w io.Writer, cfg domain.Config, layout string, fancy bool) {
	if fancy {
		if out, err := tui.NewRenderer()(runner.SummaryMarkdown(cfg, layout)); err == nil {
			fmt.Fprint(w, out)
			return
		}
	}
	fmt.Fprintln(w, runner.Summary(cfg, layout))
}

func printMetrics(w io.Writer, m *observability.Metrics) error {
	families, err := m.Registry().Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	fmt.Fprintln(w)
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "semaforo_") {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
