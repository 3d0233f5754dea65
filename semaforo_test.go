package semaforo_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/aretw0/semaforo"
	"github.com/aretw0/semaforo/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, state string, window time.Duration) domain.Config {
	t.Helper()
	start := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	signals, err := domain.ParseSignals(state)
	require.NoError(t, err)
	return domain.Config{Signals: signals, Start: start, End: start.Add(window), RedGreen: 300, Yellow: 30}
}

func TestNew_Validates(t *testing.T) {
	cfg := testConfig(t, "RRRR", time.Hour)
	cfg.RedGreen = 0

	_, err := semaforo.New(cfg)
	assert.Error(t, err)
}

func TestNew_AssignsRunID(t *testing.T) {
	a, err := semaforo.New(testConfig(t, "RRRR", time.Hour))
	require.NoError(t, err)
	b, err := semaforo.New(testConfig(t, "RRRR", time.Hour))
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)

	fixed, err := semaforo.New(testConfig(t, "RRRR", time.Hour), semaforo.WithRunID("run-1"))
	require.NoError(t, err)
	assert.Equal(t, "run-1", fixed.ID)
}

func TestSimulator_Run(t *testing.T) {
	var out bytes.Buffer
	transitions := 0
	sim, err := semaforo.New(testConfig(t, "GGRR", 30*time.Minute),
		semaforo.WithOutput(&out),
		semaforo.WithLifecycleHooks(domain.LifecycleHooks{
			OnTransition: func(ctx context.Context, from, to domain.Signals) { transitions++ },
		}),
	)
	require.NoError(t, err)

	require.NoError(t, sim.Run(context.Background()))
	assert.Equal(t, 10, transitions)
	assert.Contains(t, out.String(), "9:27:30 AM RRGG")
}

func TestSimulate(t *testing.T) {
	var seen int
	res, err := semaforo.Simulate(context.Background(), testConfig(t, "GGRR", 30*time.Minute),
		semaforo.WithRunID("abc"),
		semaforo.WithLifecycleHooks(domain.LifecycleHooks{
			OnStep: func(ctx context.Context, s *domain.Step) { seen++ },
		}),
	)
	require.NoError(t, err)

	assert.Equal(t, "abc", res.RunID)
	assert.Len(t, res.Lines, 12)
	assert.Len(t, res.Steps, 12)
	assert.Equal(t, seen, len(res.Steps))
	assert.Equal(t, 10, res.Summary.Transitions)
	assert.Equal(t, "Initial State: GGRR", res.Lines[0])
	assert.Equal(t, "9:05:00 AM YYRR", res.Lines[2])
}

func TestSimulate_TimeLayout(t *testing.T) {
	res, err := semaforo.Simulate(context.Background(), testConfig(t, "RRGG", 5*time.Minute),
		semaforo.WithTimeLayout("15:04"),
	)
	require.NoError(t, err)
	assert.Equal(t, "09:05 RRYY", res.Lines[len(res.Lines)-1])
}
