/*
Package runner handles the interactive edge of a simulation run.

It asks for the initial signal state, both durations and the time window,
falling back to documented defaults when an answer cannot be read, and
prints the parameter summary shown before the simulation starts.

# Usage

	p := runner.NewPrompter(os.Stdin, os.Stdout)
	cfg, err := p.Collect(ctx, time.Now())
	if err != nil {
		return err
	}
	fmt.Print(runner.Summary(cfg, semaforo.DefaultTimeLayout))

Input passes through SanitizeInput before it is parsed, which strips
terminal control sequences and bounds the line length.
*/
package runner
