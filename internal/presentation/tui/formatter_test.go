package tui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"

	"github.com/aretw0/semaforo/internal/runtime"
	"github.com/aretw0/semaforo/pkg/domain"
)

func step(kind domain.StepKind) domain.Step {
	return domain.Step{
		Kind:    kind,
		Signals: domain.Signals{domain.Red, domain.Red, domain.Yellow, domain.Green},
		At:      time.Date(2024, 5, 1, 9, 5, 0, 0, time.UTC),
	}
}

func TestNewFormatter_AsciiMatchesPlain(t *testing.T) {
	f := NewFormatter(termenv.Ascii)

	for _, kind := range []domain.StepKind{domain.StepInitial, domain.StepNormalize, domain.StepNormalized, domain.StepTransition} {
		s := step(kind)
		assert.Equal(t, runtime.PlainFormatter(s, runtime.DefaultTimeLayout), f(s, runtime.DefaultTimeLayout), kind)
	}
}

func TestNewFormatter_ANSIColoursLetters(t *testing.T) {
	line := NewFormatter(termenv.ANSI)(step(domain.StepInitial), runtime.DefaultTimeLayout)

	assert.True(t, strings.HasPrefix(line, "Initial State: "))
	assert.Contains(t, line, "\x1b[")
	assert.Equal(t, 4, strings.Count(line, "\x1b[0m"))
}

func TestPrintBanner_Ascii(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, termenv.Ascii)

	assert.NotContains(t, buf.String(), "\x1b[")
	assert.Equal(t, len(bannerLines)+2, strings.Count(buf.String(), "\n"))
}
