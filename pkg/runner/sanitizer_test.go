package runner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeInput_SizeLimit(t *testing.T) {
	_, err := SanitizeInput(strings.Repeat("R", DefaultMaxInputSize))
	assert.NoError(t, err)

	_, err = SanitizeInput(strings.Repeat("R", DefaultMaxInputSize+1))
	assert.ErrorIs(t, err, ErrInputTooLarge)
}

func TestSanitizeInput_ControlChars(t *testing.T) {
	tests := map[string]string{
		"RRGG":                "RRGG",
		"09:00\t09:30":        "09:00\t09:30",
		"\x1b[31mRRGG\x1b[0m": "[31mRRGG[0m",
		"30\x00":              "30",
		"GG\x07RR":            "GGRR",
		"300\r":               "300",
	}
	for input, want := range tests {
		got, err := SanitizeInput(input)
		require.NoError(t, err)
		assert.Equal(t, want, got, "input %q", input)
	}
}

func TestSanitizeInput_EnvOverride(t *testing.T) {
	t.Setenv(EnvMaxInputSize, "4")

	_, err := SanitizeInput("RRGGR")
	assert.ErrorIs(t, err, ErrInputTooLarge)

	_, err = SanitizeInput("RRGG")
	assert.NoError(t, err)
}

func TestSanitizeInput_InvalidUTF8(t *testing.T) {
	_, err := SanitizeInput("\xbd\xb2\x3d")
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}
