package runtime

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/germwalk/internal/logging"
	"github.com/aretw0/germwalk/pkg/domain"
	"github.com/aretw0/germwalk/pkg/ports"
)

// Population owns the agents and drives the tick loop.
// It is not safe for concurrent use.
type Population struct {
	steps int
	size  int
	graph ports.Graph
	rng   *Source

	scheduler Scheduler
	hooks     domain.LifecycleHooks
	logger    *slog.Logger

	agents []*Agent
	units  []Activatable
	tick   int
	phase  domain.Phase
}

// NewPopulation validates the configuration and seeds the random source.
// No agent exists until Init is called.
func NewPopulation(steps, agents int, g ports.Graph, seed *int64, opts ...Option) (*Population, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("%w: step count must be positive, got %d", domain.ErrInvalidConfiguration, steps)
	}
	if agents <= 0 {
		return nil, fmt.Errorf("%w: agent count must be positive, got %d", domain.ErrInvalidConfiguration, agents)
	}
	if g == nil {
		return nil, fmt.Errorf("%w: graph is required", domain.ErrInvalidConfiguration)
	}
	if g.Len() == 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidConfiguration, domain.ErrEmptyGraph)
	}

	p := &Population{
		steps:     steps,
		size:      agents,
		graph:     g,
		rng:       NewSource(seed),
		scheduler: RandomActivation{},
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Init places every agent on a node drawn uniformly from the graph.
// It must be called exactly once.
func (p *Population) Init() error {
	if p.phase != domain.PhaseUninitialized {
		return fmt.Errorf("%w: population already initialized", domain.ErrInvalidState)
	}

	nodes := p.graph.Nodes()
	p.agents = make([]*Agent, 0, p.size)
	p.units = make([]Activatable, 0, p.size)
	for i := 0; i < p.size; i++ {
		a := NewAgent(i, nodes[p.rng.IntN(len(nodes))], p.graph)
		p.agents = append(p.agents, a)
		p.units = append(p.units, a)
	}
	p.phase = domain.PhaseReady

	p.logger.Info("population initialized",
		"agents", p.size,
		"steps", p.steps,
		"nodes", len(nodes),
		"seed", p.rng.Seed(),
	)
	if p.hooks.OnInit != nil {
		p.hooks.OnInit(&domain.InitEvent{
			Agents:       p.size,
			Seed:         p.rng.Seed(),
			Observations: p.Snapshot(),
		})
	}
	return nil
}

// Step runs one tick: every agent is activated once in a random order.
func (p *Population) Step() error {
	switch p.phase {
	case domain.PhaseUninitialized:
		return fmt.Errorf("%w: step called before init", domain.ErrInvalidState)
	case domain.PhaseCompleted:
		return fmt.Errorf("%w: simulation completed after %d ticks", domain.ErrInvalidState, p.tick)
	}

	started := time.Now()
	tick := p.tick + 1

	var before []domain.NodeID
	if p.hooks.OnMove != nil {
		before = make([]domain.NodeID, len(p.agents))
		for i, a := range p.agents {
			before[i] = a.node
		}
	}

	moved, stalled := 0, 0
	p.scheduler.Step(p.units, p.rng, func(i int, ok bool) {
		if ok {
			moved++
		} else {
			stalled++
		}
		if p.hooks.OnMove != nil {
			a := p.agents[i]
			p.hooks.OnMove(&domain.MoveEvent{
				Tick:    tick,
				AgentID: a.id,
				From:    before[i],
				To:      a.node,
				Moved:   ok,
			})
		}
	})

	p.tick = tick
	if p.tick >= p.steps {
		p.phase = domain.PhaseCompleted
	}

	p.logger.Debug("tick completed", "tick", tick, "moved", moved, "stalled", stalled)
	if p.hooks.OnTick != nil {
		p.hooks.OnTick(&domain.TickEvent{
			Tick:         tick,
			Steps:        p.steps,
			Moved:        moved,
			Stalled:      stalled,
			Duration:     time.Since(started),
			Observations: p.Snapshot(),
		})
	}

	if p.phase == domain.PhaseCompleted {
		p.logger.Info("simulation completed", "ticks", p.tick)
		if p.hooks.OnComplete != nil {
			p.hooks.OnComplete(&domain.CompleteEvent{Ticks: p.tick})
		}
	}
	return nil
}

// Run executes the remaining ticks until the configured step count is
// reached. From a fresh Ready population that is exactly Steps ticks.
func (p *Population) Run() error {
	switch p.phase {
	case domain.PhaseUninitialized:
		return fmt.Errorf("%w: run called before init", domain.ErrInvalidState)
	case domain.PhaseCompleted:
		return fmt.Errorf("%w: simulation already completed", domain.ErrInvalidState)
	}

	for p.phase == domain.PhaseReady {
		if err := p.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Snapshot reports where every agent stands, in agent ID order.
func (p *Population) Snapshot() []domain.Observation {
	out := make([]domain.Observation, len(p.agents))
	for i, a := range p.agents {
		pos, ok := p.graph.Position(a.node)
		out[i] = domain.Observation{
			Tick:        p.tick,
			AgentID:     a.id,
			Node:        a.node,
			Position:    pos,
			HasPosition: ok,
		}
	}
	return out
}

// Agents returns the agents in creation order.
func (p *Population) Agents() []*Agent {
	out := make([]*Agent, len(p.agents))
	copy(out, p.agents)
	return out
}

// Tick returns the number of completed ticks.
func (p *Population) Tick() int { return p.tick }

// Steps returns the configured number of ticks.
func (p *Population) Steps() int { return p.steps }

// Size returns the configured number of agents.
func (p *Population) Size() int { return p.size }

// Phase returns the lifecycle phase.
func (p *Population) Phase() domain.Phase { return p.phase }

// Seed returns the seed of the shared random source.
func (p *Population) Seed() int64 { return p.rng.Seed() }

// Graph returns the shared graph.
func (p *Population) Graph() ports.Graph { return p.graph }
