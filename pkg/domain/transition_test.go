package domain_test

import (
	"testing"

	"github.com/aretw0/semaforo/pkg/domain"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhase_Next(t *testing.T) {
	tests := []struct {
		from string
		to   string
	}{
		{"RRGG", "RRYY"},
		{"RRYY", "GGRR"},
		{"GGRR", "YYRR"},
		{"YYRR", "RRGG"},
		{"RRRR", "GGRR"},
	}

	for _, tt := range tests {
		t.Run(tt.from, func(t *testing.T) {
			s, err := domain.ParseSignals(tt.from)
			require.NoError(t, err)
			p, err := domain.NewPhase(s)
			require.NoError(t, err)

			assert.Equal(t, tt.to, p.Next().String())
		})
	}
}

func TestPhase_CycleHasPeriodFour(t *testing.T) {
	s, _ := domain.ParseSignals("RRGG")
	p, err := domain.NewPhase(s)
	require.NoError(t, err)

	q := p
	for i := 0; i < 4; i++ {
		q = q.Next()
		assert.True(t, q.Signals().Valid())
	}
	assert.Equal(t, p, q)
}

func TestNewPhase_RejectsInvalid(t *testing.T) {
	s, _ := domain.ParseSignals("RGRG")
	_, err := domain.NewPhase(s)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestNormalizationPath(t *testing.T) {
	valid, err := domain.ParseSignals("RRGG")
	require.NoError(t, err)
	assert.Empty(t, domain.NormalizationPath(valid))

	s, err := domain.ParseSignals("GYRG")
	require.NoError(t, err)
	path := lo.Map(domain.NormalizationPath(s), func(p domain.Signals, _ int) string { return p.String() })
	assert.Equal(t, []string{"YRRY", "RRRR"}, path)
}
