package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/semaforo/pkg/domain"
)

var (
	clockPattern   = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)
	windowPattern  = regexp.MustCompile(`^(\S+)\s+(\S+)$`)
	secondsPattern = regexp.MustCompile(`^[0-9]+$`)
)

// Clock is a 24-hour wall clock time without a date, e.g. "09:30".
type Clock struct {
	Hour   int `mapstructure:"hour" json:"hour"`
	Minute int `mapstructure:"minute" json:"minute"`
}

// ParseClock reads an "HH:MM" 24-hour time.
func ParseClock(s string) (Clock, error) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Clock{}, fmt.Errorf("%w: %q is not HH:MM", domain.ErrInvalidWindow, s)
	}
	h, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	return Clock{Hour: h, Minute: minute}, nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// On anchors the clock to the date and location of day, with seconds zeroed.
func (c Clock) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour, c.Minute, 0, 0, day.Location())
}

// DefaultWindowStart and DefaultWindowEnd bound the window used when the
// entered window cannot be read.
var (
	DefaultWindowStart = Clock{Hour: 9, Minute: 0}
	DefaultWindowEnd   = Clock{Hour: 9, Minute: 30}
)

// ParseWindow reads a "HH:MM HH:MM" start/end pair anchored to day.
// The end may precede the start; such a window simply produces no transitions.
func ParseWindow(s string, day time.Time) (time.Time, time.Time, error) {
	m := windowPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q is not \"HH:MM HH:MM\"", domain.ErrInvalidWindow, s)
	}
	start, err := ParseClock(m[1])
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := ParseClock(m[2])
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start.On(day), end.On(day), nil
}

// DefaultWindow returns 09:00-09:30 on the date of day.
func DefaultWindow(day time.Time) (time.Time, time.Time) {
	return DefaultWindowStart.On(day), DefaultWindowEnd.On(day)
}

// ParseSeconds reads a positive whole number of seconds.
func ParseSeconds(s string) (int, error) {
	s = strings.TrimSpace(s)
	if !secondsPattern.MatchString(s) {
		return 0, fmt.Errorf("%q is not a whole number of seconds", s)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is out of range: %w", s, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%q must be greater than zero", s)
	}
	return n, nil
}

// ParseTime accepts either an RFC 3339 timestamp or an "HH:MM" clock, the
// latter anchored to day.
func ParseTime(s string, day time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	c, err := ParseClock(s)
	if err != nil {
		return time.Time{}, err
	}
	return c.On(day), nil
}
