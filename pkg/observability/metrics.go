package observability

import (
	"github.com/aretw0/germwalk/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "germwalk"

// Metrics holds the Prometheus collectors updated by population hooks.
type Metrics struct {
	Ticks        prometheus.Counter
	Moves        *prometheus.CounterVec
	TickDuration prometheus.Histogram
	Agents       prometheus.Gauge
	Runs         prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Total number of simulation ticks executed",
		}),
		Moves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_total",
			Help:      "Agent activations by outcome",
		}, []string{"outcome"}),
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Wall time spent activating every agent once",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		Agents: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "agents",
			Help:      "Number of agents in the current population",
		}),
		Runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_completed_total",
			Help:      "Number of simulations that reached their last tick",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Ticks, m.Moves, m.TickDuration, m.Agents, m.Runs)
	}
	return m
}

// Hooks returns lifecycle hooks that update the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnInit: func(e *domain.InitEvent) {
			m.Agents.Set(float64(e.Agents))
		},
		OnTick: func(e *domain.TickEvent) {
			m.Ticks.Inc()
			m.Moves.WithLabelValues("moved").Add(float64(e.Moved))
			m.Moves.WithLabelValues("stalled").Add(float64(e.Stalled))
			m.TickDuration.Observe(e.Duration.Seconds())
		},
		OnComplete: func(*domain.CompleteEvent) {
			m.Runs.Inc()
		},
	}
}
