package domain

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/samber/lo"
)

// Color is the colour shown by a single signal.
type Color byte

const (
	Red    Color = 'R'
	Yellow Color = 'Y'
	Green  Color = 'G'
)

// ParseColor reads a single colour code. Lower case is accepted.
func ParseColor(r rune) (Color, error) {
	switch unicode.ToUpper(r) {
	case 'R':
		return Red, nil
	case 'Y':
		return Yellow, nil
	case 'G':
		return Green, nil
	}
	return 0, fmt.Errorf("%w: unknown colour %q", ErrInvalidSignals, r)
}

func (c Color) String() string {
	return string(rune(c))
}

// Direction is the fixed position of a signal in Signals.
type Direction int

const (
	North Direction = iota
	South
	East
	West
)

// Directions lists every position in display order.
var Directions = []Direction{North, South, East, West}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// Signals holds the colours of the North, South, East and West signals.
type Signals [4]Color

// AllRed is the state every normalization converges to.
var AllRed = Signals{Red, Red, Red, Red}

// ValidStates are the only states in which no two perpendicular directions
// are non-red at the same time.
var ValidStates = []string{"RRRR", "RRGG", "GGRR", "YYRR", "RRYY"}

// NewSignals builds a state from one colour per direction.
func NewSignals(north, south, east, west Color) Signals {
	return Signals{north, south, east, west}
}

// ParseSignals reads a four letter state such as "RRGG".
func ParseSignals(s string) (Signals, error) {
	s = strings.TrimSpace(s)
	if len(s) != len(Signals{}) {
		return Signals{}, fmt.Errorf("%w: %q must have exactly 4 colours", ErrInvalidSignals, s)
	}
	var out Signals
	for i, r := range s {
		c, err := ParseColor(r)
		if err != nil {
			return Signals{}, err
		}
		out[i] = c
	}
	return out, nil
}

// String joins the colours, e.g. "RRGG".
func (s Signals) String() string {
	var b strings.Builder
	b.Grow(len(s))
	for _, c := range s {
		b.WriteByte(byte(c))
	}
	return b.String()
}

// At returns the colour of the given direction.
func (s Signals) At(d Direction) Color {
	return s[d]
}

// Has reports whether any signal shows c.
func (s Signals) Has(c Color) bool {
	return lo.Contains(s[:], c)
}

// Map applies fn to every signal.
func (s Signals) Map(fn func(Color) Color) Signals {
	var out Signals
	copy(out[:], lo.Map(s[:], func(c Color, _ int) Color { return fn(c) }))
	return out
}

// Valid reports whether s is one of ValidStates.
func (s Signals) Valid() bool {
	return lo.Contains(ValidStates, s.String())
}

// Decay is one forced step towards all red: G becomes Y, everything else becomes R.
func (s Signals) Decay() Signals {
	return s.Map(func(c Color) Color {
		if c == Green {
			return Yellow
		}
		return Red
	})
}

// MarshalText encodes s as its four letter form.
func (s Signals) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a four letter form such as "RRGG".
func (s *Signals) UnmarshalText(text []byte) error {
	parsed, err := ParseSignals(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
