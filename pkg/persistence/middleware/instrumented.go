package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/germwalk/pkg/domain"
	"github.com/aretw0/germwalk/pkg/ports"
)

// StoreMetrics holds the collectors updated by the instrumented middleware.
type StoreMetrics struct {
	Duration *prometheus.HistogramVec
	Errors   *prometheus.CounterVec
}

// NewStoreMetrics creates the collectors and registers them with reg when
// it is not nil.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	m := &StoreMetrics{
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "germwalk",
			Subsystem: "store",
			Name:      "operation_duration_seconds",
			Help:      "Latency of trajectory store operations",
		}, []string{"op"}),
		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "germwalk",
			Subsystem: "store",
			Name:      "errors_total",
			Help:      "Failed trajectory store operations; not found lookups are not counted",
		}, []string{"op"}),
	}
	if reg != nil {
		reg.MustRegister(m.Duration, m.Errors)
	}
	return m
}

type instrumentedMiddleware struct {
	next    ports.TrajectoryStore
	metrics *StoreMetrics
}

// NewInstrumentedMiddleware records latency and errors per operation.
func NewInstrumentedMiddleware(metrics *StoreMetrics) Middleware {
	return func(next ports.TrajectoryStore) ports.TrajectoryStore {
		return &instrumentedMiddleware{next: next, metrics: metrics}
	}
}

func (m *instrumentedMiddleware) observe(op string, start time.Time, err error) {
	m.metrics.Duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil && !errors.Is(err, domain.ErrRunNotFound) {
		m.metrics.Errors.WithLabelValues(op).Inc()
	}
}

func (m *instrumentedMiddleware) SaveRun(ctx context.Context, run domain.RunInfo) error {
	start := time.Now()
	err := m.next.SaveRun(ctx, run)
	m.observe("save_run", start, err)
	return err
}

func (m *instrumentedMiddleware) AppendTick(ctx context.Context, runID string, tick int, obs []domain.Observation) error {
	start := time.Now()
	err := m.next.AppendTick(ctx, runID, tick, obs)
	m.observe("append_tick", start, err)
	return err
}

func (m *instrumentedMiddleware) LoadRun(ctx context.Context, runID string) (domain.RunInfo, error) {
	start := time.Now()
	run, err := m.next.LoadRun(ctx, runID)
	m.observe("load_run", start, err)
	return run, err
}

func (m *instrumentedMiddleware) LoadObservations(ctx context.Context, runID string) ([]domain.Observation, error) {
	start := time.Now()
	obs, err := m.next.LoadObservations(ctx, runID)
	m.observe("load_observations", start, err)
	return obs, err
}

func (m *instrumentedMiddleware) ListRuns(ctx context.Context) ([]domain.RunInfo, error) {
	start := time.Now()
	runs, err := m.next.ListRuns(ctx)
	m.observe("list_runs", start, err)
	return runs, err
}

func (m *instrumentedMiddleware) DeleteRun(ctx context.Context, runID string) error {
	start := time.Now()
	err := m.next.DeleteRun(ctx, runID)
	m.observe("delete_run", start, err)
	return err
}
