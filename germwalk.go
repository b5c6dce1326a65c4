package germwalk

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/germwalk/internal/logging"
	"github.com/aretw0/germwalk/internal/runtime"
	"github.com/aretw0/germwalk/pkg/domain"
	"github.com/aretw0/germwalk/pkg/graph"
	"github.com/aretw0/germwalk/pkg/observability"
	"github.com/aretw0/germwalk/pkg/ports"
	"github.com/aretw0/germwalk/pkg/trajectory"
)

const (
	// DefaultSteps is the number of ticks used when WithSteps is not given.
	DefaultSteps = 150
	// DefaultAgents is the population size used when WithAgents is not given.
	DefaultAgents = 30
)

type pendingTick struct {
	tick int
	obs  []domain.Observation
}

// Simulation is the high-level entry point for the library.
// It wraps the runtime population and records every tick.
type Simulation struct {
	population *runtime.Population
	graph      *graph.Graph
	recorder   *trajectory.Recorder
	store      ports.TrajectoryStore
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
	info       domain.RunInfo

	steps   int
	agents  int
	seed    *int64
	largest bool
	name    string

	saved   bool
	pending []pendingTick
}

// Option defines a functional option for configuring the Simulation.
type Option func(*Simulation)

// WithGraph injects an already built graph, skipping the file loader.
func WithGraph(g *graph.Graph) Option {
	return func(s *Simulation) {
		s.graph = g
	}
}

// WithSteps sets the number of ticks.
func WithSteps(n int) Option {
	return func(s *Simulation) {
		s.steps = n
	}
}

// WithAgents sets the number of agents.
func WithAgents(n int) Option {
	return func(s *Simulation) {
		s.agents = n
	}
}

// WithSeed makes the run reproducible. Without it the generator is seeded
// from entropy and the chosen seed is reported by Info.
func WithSeed(seed int64) Option {
	return func(s *Simulation) {
		s.seed = &seed
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Simulation) {
		s.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks. They run after the
// built-in recorder.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Simulation) {
		s.hooks = hooks
	}
}

// WithStore persists the run metadata and every tick to store.
func WithStore(store ports.TrajectoryStore) Option {
	return func(s *Simulation) {
		s.store = store
	}
}

// WithLargestComponent reduces the graph to its largest connected
// component before agents are placed.
func WithLargestComponent(enabled bool) Option {
	return func(s *Simulation) {
		s.largest = enabled
	}
}

// WithName overrides the graph name recorded with the run.
func WithName(name string) Option {
	return func(s *Simulation) {
		s.name = name
	}
}

// New loads the graph at graphPath (unless WithGraph is given) and prepares
// a population. Agents are placed by Init.
func New(graphPath string, opts ...Option) (*Simulation, error) {
	s := &Simulation{
		steps:  DefaultSteps,
		agents: DefaultAgents,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.graph == nil {
		if graphPath == "" {
			return nil, fmt.Errorf("%w: graphPath is required when no graph is provided", domain.ErrInvalidConfiguration)
		}
		g, err := graph.LoadFile(graphPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load graph: %w", err)
		}
		s.graph = g
	}
	if s.largest {
		s.graph = graph.LargestComponent(s.graph)
	}
	if s.name == "" {
		s.name = s.graph.Name()
	}

	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	s.logger = s.logger.With("graph", s.name)

	s.recorder = trajectory.NewRecorder()
	sets := []domain.LifecycleHooks{s.recorder.Hooks()}
	if s.store != nil {
		sets = append(sets, s.persistHooks())
	}
	sets = append(sets, s.hooks)

	pop, err := runtime.NewPopulation(s.steps, s.agents, s.graph, s.seed,
		runtime.WithLogger(s.logger),
		runtime.WithLifecycleHooks(observability.Chain(sets...)),
	)
	if err != nil {
		return nil, err
	}
	s.population = pop

	s.info = domain.RunInfo{
		ID:        uuid.NewString(),
		Graph:     s.name,
		Seed:      pop.Seed(),
		Steps:     s.steps,
		Agents:    s.agents,
		CreatedAt: time.Now().UTC(),
	}
	return s, nil
}

// persistHooks queue observations until the next Flush.
func (s *Simulation) persistHooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnInit: func(e *domain.InitEvent) {
			s.pending = append(s.pending, pendingTick{tick: 0, obs: e.Observations})
		},
		OnTick: func(e *domain.TickEvent) {
			s.pending = append(s.pending, pendingTick{tick: e.Tick, obs: e.Observations})
		},
	}
}

// Init places every agent.
func (s *Simulation) Init() error {
	return s.population.Init()
}

// Step runs a single tick. Observations are persisted by the next Run or
// Flush.
func (s *Simulation) Step() error {
	return s.population.Step()
}

// Run executes the remaining ticks. When a store is configured each tick
// is written as soon as it completes; ctx only bounds that I/O.
func (s *Simulation) Run(ctx context.Context) error {
	switch s.population.Phase() {
	case domain.PhaseUninitialized:
		return fmt.Errorf("%w: run called before init", domain.ErrInvalidState)
	case domain.PhaseCompleted:
		return fmt.Errorf("%w: simulation already completed", domain.ErrInvalidState)
	}

	if err := s.Flush(ctx); err != nil {
		return err
	}
	for s.population.Phase() == domain.PhaseReady {
		if err := s.population.Step(); err != nil {
			return err
		}
		if err := s.Flush(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Flush writes queued ticks to the store. It is a no-op without a store.
func (s *Simulation) Flush(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if !s.saved {
		if err := s.store.SaveRun(ctx, s.info); err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
		s.saved = true
	}
	for len(s.pending) > 0 {
		p := s.pending[0]
		if err := s.store.AppendTick(ctx, s.info.ID, p.tick, p.obs); err != nil {
			return fmt.Errorf("failed to persist tick %d: %w", p.tick, err)
		}
		s.pending = s.pending[1:]
	}
	return nil
}

// Snapshot reports the current position of every agent.
func (s *Simulation) Snapshot() []domain.Observation {
	return s.population.Snapshot()
}

// Trajectories returns every agent's path recorded so far.
func (s *Simulation) Trajectories() []trajectory.Trajectory {
	return s.recorder.Trajectories()
}

// Graph returns the graph agents walk on.
func (s *Simulation) Graph() *graph.Graph {
	return s.graph
}

// Info returns the run metadata, including the seed actually used.
func (s *Simulation) Info() domain.RunInfo {
	return s.info
}

// Phase returns the lifecycle phase of the population.
func (s *Simulation) Phase() domain.Phase {
	return s.population.Phase()
}

// Tick returns the number of completed ticks.
func (s *Simulation) Tick() int {
	return s.population.Tick()
}
