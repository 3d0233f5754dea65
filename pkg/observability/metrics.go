package observability

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/semaforo/pkg/domain"
)

const namespace = "semaforo"

// Metrics records steps, transitions and completed runs.
type Metrics struct {
	registry *prometheus.Registry

	Steps          *prometheus.CounterVec
	Transitions    *prometheus.CounterVec
	NormalizeSteps prometheus.Counter
	ChangeUnits    prometheus.Gauge
	Runs           prometheus.Counter
}

// NewMetrics creates the collectors and registers them on a fresh registry.
// With withRuntime set, Go runtime and process collectors are added too.
func NewMetrics(withRuntime bool) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "steps_total",
			Help:      "Displayed simulation steps by kind.",
		}, []string{"kind"}),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_total",
			Help:      "Forward transitions by resulting state.",
		}, []string{"to"}),
		NormalizeSteps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "normalize_steps_total",
			Help:      "Forced decay steps taken while normalizing an invalid state.",
		}),
		ChangeUnits: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "change_units",
			Help:      "Change units completed by the most recent step.",
		}),
		Runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Simulations run to completion.",
		}),
	}

	m.registry.MustRegister(m.Steps, m.Transitions, m.NormalizeSteps, m.ChangeUnits, m.Runs)
	if withRuntime {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return m
}

// Registry returns the registry the collectors live in.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Hooks returns lifecycle hooks that update the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(_ context.Context, step *domain.Step) {
			m.Steps.WithLabelValues(string(step.Kind)).Inc()
			m.ChangeUnits.Set(step.ChangeUnits)
		},
		OnNormalize: func(context.Context, domain.Signals, domain.Signals) {
			m.NormalizeSteps.Inc()
		},
		OnTransition: func(_ context.Context, _, to domain.Signals) {
			m.Transitions.WithLabelValues(to.String()).Inc()
		},
		OnComplete: func(context.Context, *domain.Summary) {
			m.Runs.Inc()
		},
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
