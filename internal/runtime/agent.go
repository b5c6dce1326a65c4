package runtime

import (
	"github.com/aretw0/germwalk/pkg/domain"
	"github.com/aretw0/germwalk/pkg/ports"
)

// Activatable is a unit of work the scheduler activates once per tick.
// Step reports whether the unit changed node.
type Activatable interface {
	Step(rng Rand) bool
}

// Agent is a bacterium walking the graph. It only reads the graph.
type Agent struct {
	id    int
	node  domain.NodeID
	graph ports.Graph
}

var _ Activatable = (*Agent)(nil)

// NewAgent places an agent on start.
func NewAgent(id int, start domain.NodeID, g ports.Graph) *Agent {
	return &Agent{id: id, node: start, graph: g}
}

// ID returns the agent identifier, unique within its population.
func (a *Agent) ID() int { return a.id }

// Node returns the node the agent currently occupies.
func (a *Agent) Node() domain.NodeID { return a.node }

// Neighbors returns the nodes adjacent to the current node.
func (a *Agent) Neighbors() []domain.NodeID {
	return a.graph.Neighbors(a.node)
}

// Move jumps to a uniformly chosen neighbor. On a node without neighbors
// the agent stays put and Move returns false without drawing from rng.
func (a *Agent) Move(rng Rand) bool {
	n := a.Neighbors()
	if len(n) == 0 {
		return false
	}
	a.node = n[rng.IntN(len(n))]
	return true
}

// Step is the per-tick unit of work.
func (a *Agent) Step(rng Rand) bool {
	return a.Move(rng)
}
