package middleware_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/germwalk/internal/adapters/memory"
	"github.com/aretw0/germwalk/pkg/domain"
	"github.com/aretw0/germwalk/pkg/persistence/middleware"
	"github.com/aretw0/germwalk/pkg/ports"
)

// failingStore rejects every write.
type failingStore struct {
	ports.TrajectoryStore
}

var errBackend = errors.New("backend down")

func (failingStore) AppendTick(context.Context, string, int, []domain.Observation) error {
	return errBackend
}

func TestMiddleware_Contract(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	store := middleware.Chain(memory.New(),
		middleware.NewLoggingMiddleware(logger),
		middleware.NewInstrumentedMiddleware(middleware.NewStoreMetrics(prometheus.NewRegistry())),
	)
	ports.RunTrajectoryStoreContract(t, store)

	assert.Contains(t, buf.String(), "msg=\"save run\"")
	assert.Contains(t, buf.String(), "msg=\"append tick\"")
}

func TestInstrumentedMiddleware(t *testing.T) {
	ctx := context.Background()
	metrics := middleware.NewStoreMetrics(prometheus.NewRegistry())
	store := middleware.NewInstrumentedMiddleware(metrics)(failingStore{memory.New()})

	require.NoError(t, store.SaveRun(ctx, domain.RunInfo{ID: "r"}))
	assert.ErrorIs(t, store.AppendTick(ctx, "r", 0, nil), errBackend)

	_, err := store.LoadRun(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrRunNotFound)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Errors.WithLabelValues("append_tick")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.Errors.WithLabelValues("load_run")), "not found is not an error")
	assert.Equal(t, 3, testutil.CollectAndCount(metrics.Duration))
}

func TestLoggingMiddleware_LogsFailures(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	store := middleware.NewLoggingMiddleware(logger)(failingStore{memory.New()})

	assert.ErrorIs(t, store.AppendTick(context.Background(), "r", 4, nil), errBackend)
	assert.Contains(t, buf.String(), "op=append_tick")
	assert.Contains(t, buf.String(), "err=\"backend down\"")
}
