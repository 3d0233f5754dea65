package domain

import "fmt"

// Phase is a Signals value known to be one of ValidStates.
// Only a Phase can be advanced with Next.
type Phase struct {
	signals Signals
}

// NewPhase validates s. It returns ErrInvalidState when s is not one of ValidStates.
func NewPhase(s Signals) (Phase, error) {
	if !s.Valid() {
		return Phase{}, fmt.Errorf("%w: %s", ErrInvalidState, s)
	}
	return Phase{signals: s}, nil
}

// Signals returns the underlying colours.
func (p Phase) Signals() Signals {
	return p.signals
}

func (p Phase) String() string {
	return p.signals.String()
}

// Next applies exactly one transition rule:
//   - any G: every G becomes Y
//   - else any Y: every Y becomes R and every R becomes G
//   - else (all red): North and South become G
func (p Phase) Next() Phase {
	s := p.signals
	switch {
	case s.Has(Green):
		s = s.Map(func(c Color) Color {
			if c == Green {
				return Yellow
			}
			return c
		})
	case s.Has(Yellow):
		s = s.Map(func(c Color) Color {
			switch c {
			case Yellow:
				return Red
			case Red:
				return Green
			}
			return c
		})
	default:
		s[North] = Green
		s[South] = Green
	}
	return Phase{signals: s}
}

// NormalizationPath lists the states a run passes through while forcing s
// into the cycle, ending with AllRed. It is empty when s is already valid.
func NormalizationPath(s Signals) []Signals {
	if s.Valid() {
		return nil
	}
	var path []Signals
	for {
		s = s.Decay()
		path = append(path, s)
		if s == AllRed {
			return path
		}
	}
}
