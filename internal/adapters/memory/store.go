package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/germwalk/pkg/domain"
)

type run struct {
	info  domain.RunInfo
	ticks map[int][]domain.Observation
}

// Store implements ports.TrajectoryStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*run
	mu   sync.RWMutex
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		data: make(map[string]*run),
	}
}

// SaveRun stores run metadata. Saving an existing run keeps its observations.
func (s *Store) SaveRun(ctx context.Context, info domain.RunInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r, ok := s.data[info.ID]; ok {
		r.info = info
		return nil
	}
	s.data[info.ID] = &run{info: info, ticks: make(map[int][]domain.Observation)}
	return nil
}

// AppendTick adds one tick worth of observations to a saved run.
// Appending a tick again replaces its observations.
func (s *Store) AppendTick(ctx context.Context, runID string, tick int, obs []domain.Observation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.data[runID]
	if !ok {
		return fmt.Errorf("append tick %d: %w", tick, domain.ErrRunNotFound)
	}
	// Copy so the caller can reuse its slice.
	r.ticks[tick] = append([]domain.Observation(nil), obs...)
	return nil
}

// LoadRun retrieves run metadata.
func (s *Store) LoadRun(ctx context.Context, id string) (domain.RunInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.data[id]
	if !ok {
		return domain.RunInfo{}, domain.ErrRunNotFound
	}
	return r.info, nil
}

// LoadObservations returns a copy of the run's observations ordered by
// tick, then agent.
func (s *Store) LoadObservations(ctx context.Context, id string) ([]domain.Observation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.data[id]
	if !ok {
		return nil, domain.ErrRunNotFound
	}

	out := make([]domain.Observation, 0, len(r.ticks)*r.info.Agents)
	for _, obs := range r.ticks {
		out = append(out, obs...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Tick != out[j].Tick {
			return out[i].Tick < out[j].Tick
		}
		return out[i].AgentID < out[j].AgentID
	})
	return out, nil
}

// ListRuns returns every stored run, oldest first.
func (s *Store) ListRuns(ctx context.Context) ([]domain.RunInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]domain.RunInfo, 0, len(s.data))
	for _, r := range s.data {
		runs = append(runs, r.info)
	}
	sort.Slice(runs, func(i, j int) bool {
		if !runs[i].CreatedAt.Equal(runs[j].CreatedAt) {
			return runs[i].CreatedAt.Before(runs[j].CreatedAt)
		}
		return runs[i].ID < runs[j].ID
	})
	return runs, nil
}

// DeleteRun removes a run and its observations.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}
