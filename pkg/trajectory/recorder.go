package trajectory

import (
	"sort"
	"sync"

	"github.com/aretw0/germwalk/pkg/domain"
)

// Trajectory is the ordered list of observations for one agent.
type Trajectory struct {
	AgentID int                  `json:"agent_id"`
	Points  []domain.Observation `json:"points"`
}

// Recorder collects observations emitted by OnInit and OnTick.
// Safe for concurrent use.
type Recorder struct {
	mu     sync.RWMutex
	byID   map[int]*Trajectory
	ticks  int
	filled bool
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{byID: make(map[int]*Trajectory)}
}

// Hooks returns lifecycle hooks that feed the recorder.
func (r *Recorder) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnInit: func(e *domain.InitEvent) { r.Record(e.Observations) },
		OnTick: func(e *domain.TickEvent) { r.Record(e.Observations) },
	}
}

// Record appends a batch of observations, typically one tick.
func (r *Recorder) Record(obs []domain.Observation) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, o := range obs {
		tr, ok := r.byID[o.AgentID]
		if !ok {
			tr = &Trajectory{AgentID: o.AgentID}
			r.byID[o.AgentID] = tr
		}
		tr.Points = append(tr.Points, o)
		if o.Tick+1 > r.ticks {
			r.ticks = o.Tick + 1
		}
		r.filled = true
	}
}

// Len returns the number of tracked agents.
func (r *Recorder) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// Ticks returns the number of distinct ticks seen, counting tick 0.
func (r *Recorder) Ticks() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.filled {
		return 0
	}
	return r.ticks
}

// Trajectory returns a copy of one agent's path.
func (r *Recorder) Trajectory(agentID int) (Trajectory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tr, ok := r.byID[agentID]
	if !ok {
		return Trajectory{}, false
	}
	return clone(tr), true
}

// Trajectories returns copies of all paths ordered by agent ID.
func (r *Recorder) Trajectories() []Trajectory {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Trajectory, 0, len(r.byID))
	for _, tr := range r.byID {
		out = append(out, clone(tr))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AgentID < out[j].AgentID })
	return out
}

// Group rebuilds trajectories from a flat observation list, such as one
// loaded from a store. Points keep their input order.
func Group(obs []domain.Observation) []Trajectory {
	r := NewRecorder()
	r.Record(obs)
	return r.Trajectories()
}

func clone(tr *Trajectory) Trajectory {
	points := make([]domain.Observation, len(tr.Points))
	copy(points, tr.Points)
	return Trajectory{AgentID: tr.AgentID, Points: points}
}
