package middleware

import (
	"context"
	"log/slog"

	"github.com/aretw0/germwalk/pkg/domain"
	"github.com/aretw0/germwalk/pkg/ports"
)

type loggingMiddleware struct {
	next   ports.TrajectoryStore
	logger *slog.Logger
}

// NewLoggingMiddleware logs every write at Debug and every failure at Error.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ports.TrajectoryStore) ports.TrajectoryStore {
		return &loggingMiddleware{next: next, logger: logger}
	}
}

func (m *loggingMiddleware) fail(op, runID string, err error) error {
	if err != nil {
		m.logger.Error("store operation failed", "op", op, "run_id", runID, "err", err)
	}
	return err
}

func (m *loggingMiddleware) SaveRun(ctx context.Context, run domain.RunInfo) error {
	m.logger.Debug("save run", "run_id", run.ID, "graph", run.Graph, "seed", run.Seed)
	return m.fail("save_run", run.ID, m.next.SaveRun(ctx, run))
}

func (m *loggingMiddleware) AppendTick(ctx context.Context, runID string, tick int, obs []domain.Observation) error {
	m.logger.Debug("append tick", "run_id", runID, "tick", tick, "observations", len(obs))
	return m.fail("append_tick", runID, m.next.AppendTick(ctx, runID, tick, obs))
}

func (m *loggingMiddleware) LoadRun(ctx context.Context, runID string) (domain.RunInfo, error) {
	return m.next.LoadRun(ctx, runID)
}

func (m *loggingMiddleware) LoadObservations(ctx context.Context, runID string) ([]domain.Observation, error) {
	return m.next.LoadObservations(ctx, runID)
}

func (m *loggingMiddleware) ListRuns(ctx context.Context) ([]domain.RunInfo, error) {
	return m.next.ListRuns(ctx)
}

func (m *loggingMiddleware) DeleteRun(ctx context.Context, runID string) error {
	m.logger.Debug("delete run", "run_id", runID)
	return m.fail("delete_run", runID, m.next.DeleteRun(ctx, runID))
}
