package domain

import (
	"fmt"
	"time"
)

const (
	// DefaultRedGreen is the length of a red/green phase in seconds.
	DefaultRedGreen = 300
	// DefaultYellow is the length of a yellow phase in seconds.
	DefaultYellow = 30
	// DefaultWindow is the simulated span when no end time is given.
	DefaultWindow = 30 * time.Minute
)

// Config holds the parameters of one simulation run.
type Config struct {
	Signals  Signals   `json:"signals"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	RedGreen int       `json:"red_green"` // seconds
	Yellow   int       `json:"yellow"`    // seconds
}

// DefaultConfig returns all red signals and a 30 minute window starting at now.
func DefaultConfig(now time.Time) Config {
	return Config{
		Signals:  AllRed,
		Start:    now,
		End:      now.Add(DefaultWindow),
		RedGreen: DefaultRedGreen,
		Yellow:   DefaultYellow,
	}
}

// Window returns the simulated span. It may be zero or negative.
func (c Config) Window() time.Duration {
	return c.End.Sub(c.Start)
}

// ChangeUnits returns how many red/green phases fit in the window.
// It is zero when RedGreen is not positive.
func (c Config) ChangeUnits() float64 {
	if c.RedGreen <= 0 {
		return 0
	}
	return c.Window().Seconds() / float64(c.RedGreen)
}

// Validate checks the preconditions of the simulation loop.
// The signals themselves are never rejected: invalid states are normalized.
func (c Config) Validate() error {
	var errs []error
	if c.RedGreen <= 0 {
		errs = append(errs, &ValidationError{Key: "red_green", Reason: "must be a positive number of seconds", Value: c.RedGreen})
	}
	if c.Yellow <= 0 {
		errs = append(errs, &ValidationError{Key: "yellow", Reason: "must be a positive number of seconds", Value: c.Yellow})
	}
	for i, s := range c.Signals {
		if _, err := ParseColor(rune(s)); err != nil {
			errs = append(errs, &ValidationError{Key: Direction(i).String(), Reason: "must be one of R, Y, G", Value: fmt.Sprintf("%q", rune(s))})
		}
	}
	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}
