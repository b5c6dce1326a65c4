package graph

import (
	"slices"

	"github.com/aretw0/germwalk/pkg/domain"
	gg "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// Builder assembles a Graph. It is not safe for concurrent use.
// Self-loops are ignored and repeated edges collapse into one that keeps
// the latest color.
type Builder struct {
	name     string
	directed bool

	topology interface {
		gg.Graph
		SetEdge(gg.Edge)
		AddNode(gg.Node)
	}
	undirected *simple.UndirectedGraph

	ids       []domain.NodeID
	index     map[domain.NodeID]int64
	positions []domain.Position
	hasPos    []bool
	edges     []Edge
	edgeAt    map[[2]int64]int
}

// NewBuilder creates an empty builder.
func NewBuilder(name string, directed bool) *Builder {
	b := &Builder{
		name:       name,
		directed:   directed,
		undirected: simple.NewUndirectedGraph(),
		index:      make(map[domain.NodeID]int64),
		edgeAt:     make(map[[2]int64]int),
	}
	if directed {
		b.topology = simple.NewDirectedGraph()
	} else {
		b.topology = b.undirected
	}
	return b
}

// AddNode adds a node without position. Adding an existing node is a no-op.
func (b *Builder) AddNode(id domain.NodeID) {
	b.node(id)
}

// AddNodeAt adds a node with a position, or sets the position of an
// existing node.
func (b *Builder) AddNodeAt(id domain.NodeID, pos domain.Position) {
	i := b.node(id)
	b.positions[i] = pos
	b.hasPos[i] = true
}

// AddEdge connects from and to, adding missing nodes.
// It reports whether a new edge was recorded. Adding an existing edge
// replaces its color.
func (b *Builder) AddEdge(from, to domain.NodeID, color string) bool {
	if from == to {
		return false
	}
	f, t := b.node(from), b.node(to)

	key := [2]int64{f, t}
	if !b.directed && f > t {
		key = [2]int64{t, f}
	}
	if i, ok := b.edgeAt[key]; ok {
		b.edges[i].Color = color
		return false
	}

	b.topology.SetEdge(simple.Edge{F: simple.Node(f), T: simple.Node(t)})
	if b.directed && !b.undirected.HasEdgeBetween(f, t) {
		b.undirected.SetEdge(simple.Edge{F: simple.Node(f), T: simple.Node(t)})
	}
	b.edgeAt[key] = len(b.edges)
	b.edges = append(b.edges, Edge{From: from, To: to, Color: color})
	return true
}

// Has reports whether id was already added.
func (b *Builder) Has(id domain.NodeID) bool {
	_, ok := b.index[id]
	return ok
}

func (b *Builder) node(id domain.NodeID) int64 {
	if i, ok := b.index[id]; ok {
		return i
	}
	i := int64(len(b.ids))
	b.index[id] = i
	b.ids = append(b.ids, id)
	b.positions = append(b.positions, domain.Position{})
	b.hasPos = append(b.hasPos, false)

	b.topology.AddNode(simple.Node(i))
	if b.directed {
		b.undirected.AddNode(simple.Node(i))
	}
	return i
}

// Build freezes the builder into a Graph. The builder must not be used
// afterwards.
func (b *Builder) Build() *Graph {
	adjacency := make([][]domain.NodeID, len(b.ids))
	for i := range b.ids {
		succ := gg.NodesOf(b.topology.From(int64(i)))
		if len(succ) == 0 {
			continue
		}
		order := make([]int64, len(succ))
		for j, n := range succ {
			order[j] = n.ID()
		}
		slices.Sort(order)
		adjacency[i] = make([]domain.NodeID, len(order))
		for j, id := range order {
			adjacency[i][j] = b.ids[id]
		}
	}

	return &Graph{
		name:       b.name,
		directed:   b.directed,
		undirected: b.undirected,
		ids:        b.ids,
		index:      b.index,
		positions:  b.positions,
		hasPos:     b.hasPos,
		adjacency:  adjacency,
		edges:      b.edges,
	}
}
