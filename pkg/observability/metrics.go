package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/markov/pkg/domain"
)

// Metrics holds the Prometheus collectors fed by the engine hooks.
type Metrics struct {
	StatesDiscovered prometheus.Counter
	ModelStates      prometheus.Gauge
	ModelTransitions prometheus.Gauge
	BuildDuration    prometheus.Histogram
	Sweeps           prometheus.Counter
	LastDelta        prometheus.Gauge
	Solves           *prometheus.CounterVec
	SolveDuration    prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		StatesDiscovered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "markov_states_discovered_total",
			Help: "Total number of states discovered during graph construction",
		}),
		ModelStates: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "markov_model_states",
			Help: "Number of states of the last built model",
		}),
		ModelTransitions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "markov_model_transitions",
			Help: "Number of transitions of the last built model",
		}),
		BuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "markov_build_duration_seconds",
			Help:    "Duration of graph construction",
			Buckets: prometheus.DefBuckets,
		}),
		Sweeps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "markov_sweeps_total",
			Help: "Total number of value iteration sweeps",
		}),
		LastDelta: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "markov_sweep_delta",
			Help: "Maximum value change of the last sweep",
		}),
		Solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "markov_solves_total",
			Help: "Total number of finished solves",
		}, []string{"converged"}),
		SolveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "markov_solve_duration_seconds",
			Help:    "Duration of value iteration",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(
		m.StatesDiscovered, m.ModelStates, m.ModelTransitions, m.BuildDuration,
		m.Sweeps, m.LastDelta, m.Solves, m.SolveDuration,
	)
	return m
}

// BuildHooks returns construction hooks recording into m.
func (m *Metrics) BuildHooks() domain.BuildHooks {
	return domain.BuildHooks{
		OnStateDiscovered: func(context.Context, *domain.StateEvent) {
			m.StatesDiscovered.Inc()
		},
		OnModelBuilt: func(_ context.Context, e *domain.ModelEvent) {
			m.ModelStates.Set(float64(e.States))
			m.ModelTransitions.Set(float64(e.Transitions))
			m.BuildDuration.Observe(e.Duration.Seconds())
		},
	}
}

// SolveHooks returns value iteration hooks recording into m.
func (m *Metrics) SolveHooks() domain.SolveHooks {
	return domain.SolveHooks{
		OnSweep: func(_ context.Context, e *domain.SweepEvent) {
			m.Sweeps.Inc()
			m.LastDelta.Set(e.Delta)
		},
		OnConverged: func(_ context.Context, e *domain.SolveEvent) {
			label := "false"
			if e.Converged {
				label = "true"
			}
			m.Solves.WithLabelValues(label).Inc()
			m.SolveDuration.Observe(e.Duration.Seconds())
		},
	}
}
