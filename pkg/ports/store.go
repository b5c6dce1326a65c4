package ports

import (
	"context"

	"github.com/aretw0/germwalk/pkg/domain"
)

// TrajectoryStore persists simulation runs and the per-tick observations
// that make up their trajectories.
type TrajectoryStore interface {
	// SaveRun creates or replaces the metadata of a run.
	SaveRun(ctx context.Context, run domain.RunInfo) error

	// AppendTick stores the observations of one tick of a run.
	// Ticks are expected to be appended in increasing order.
	AppendTick(ctx context.Context, runID string, tick int, obs []domain.Observation) error

	// LoadRun retrieves the metadata of a run.
	// Returns domain.ErrRunNotFound if the run does not exist.
	LoadRun(ctx context.Context, runID string) (domain.RunInfo, error)

	// LoadObservations returns every stored observation of a run ordered by
	// tick, then agent ID.
	// Returns domain.ErrRunNotFound if the run does not exist.
	LoadObservations(ctx context.Context, runID string) ([]domain.Observation, error)

	// ListRuns returns the metadata of all stored runs.
	ListRuns(ctx context.Context) ([]domain.RunInfo, error)

	// DeleteRun removes a run and its observations.
	DeleteRun(ctx context.Context, runID string) error
}
