package observability_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/semaforo"
	"github.com/aretw0/semaforo/pkg/domain"
	"github.com/aretw0/semaforo/pkg/observability"
)

func config(state string, window time.Duration) domain.Config {
	signals, err := domain.ParseSignals(state)
	if err != nil {
		panic(err)
	}
	start := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	return domain.Config{
		Signals:  signals,
		Start:    start,
		End:      start.Add(window),
		RedGreen: 300,
		Yellow:   30,
	}
}

func TestMetrics_Hooks(t *testing.T) {
	m := observability.NewMetrics(false)

	_, err := semaforo.Simulate(context.Background(), config("GRGR", 15*time.Minute),
		semaforo.WithLifecycleHooks(m.Hooks()))
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.NormalizeSteps))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Steps.WithLabelValues("initial")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Steps.WithLabelValues("normalize")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Steps.WithLabelValues("normalized")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Steps.WithLabelValues("transition")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Transitions.WithLabelValues("GGRR")))
	assert.InDelta(t, 2.1, testutil.ToFloat64(m.ChangeUnits), 1e-9)
}

func TestMetrics_SeparateRegistries(t *testing.T) {
	a := observability.NewMetrics(false)
	b := observability.NewMetrics(false)

	a.Runs.Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.Runs))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.Runs))
}

func TestMetrics_Handler(t *testing.T) {
	m := observability.NewMetrics(false)
	m.Transitions.WithLabelValues("RRGG").Add(3)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `semaforo_transitions_total{to="RRGG"} 3`)
}
