package graph

import (
	"sort"

	"github.com/aretw0/germwalk/pkg/domain"
	"github.com/aretw0/germwalk/pkg/ports"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Edge is a connection between two nodes as it was declared.
// Color is a rendering hint (metro line colour) and may be empty.
type Edge struct {
	From  domain.NodeID
	To    domain.NodeID
	Color string
}

// Graph is an immutable spatial graph. It implements ports.Graph.
type Graph struct {
	name     string
	directed bool

	// undirected is the weakly connected view used for component analysis.
	undirected *simple.UndirectedGraph

	ids       []domain.NodeID
	index     map[domain.NodeID]int64
	positions []domain.Position
	hasPos    []bool
	adjacency [][]domain.NodeID
	edges     []Edge
}

var _ ports.Graph = (*Graph)(nil)

// Name returns the descriptive name of the graph (may be empty).
func (g *Graph) Name() string { return g.name }

// Directed reports whether edges are one-way.
func (g *Graph) Directed() bool { return g.directed }

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.ids) }

// EdgeCount returns the number of declared edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Nodes returns node IDs in insertion order.
func (g *Graph) Nodes() []domain.NodeID {
	out := make([]domain.NodeID, len(g.ids))
	copy(out, g.ids)
	return out
}

// Edges returns the edges in declaration order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Has reports whether id belongs to the graph.
func (g *Graph) Has(id domain.NodeID) bool {
	_, ok := g.index[id]
	return ok
}

// Neighbors returns the successors of id ordered by node insertion.
// The returned slice is shared and must not be modified.
func (g *Graph) Neighbors(id domain.NodeID) []domain.NodeID {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	return g.adjacency[i]
}

// Position returns the coordinate attached to id.
func (g *Graph) Position(id domain.NodeID) (domain.Position, bool) {
	i, ok := g.index[id]
	if !ok || !g.hasPos[i] {
		return domain.Position{}, false
	}
	return g.positions[i], true
}

// Components returns the weakly connected components, largest first.
// Ties are broken by the insertion order of the first node of each component.
// Nodes inside a component keep insertion order.
func (g *Graph) Components() [][]domain.NodeID {
	raw := topo.ConnectedComponents(g.undirected)

	comps := make([][]int64, 0, len(raw))
	for _, c := range raw {
		ids := make([]int64, len(c))
		for i, n := range c {
			ids[i] = n.ID()
		}
		sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
		comps = append(comps, ids)
	}
	sort.SliceStable(comps, func(a, b int) bool {
		if len(comps[a]) != len(comps[b]) {
			return len(comps[a]) > len(comps[b])
		}
		return comps[a][0] < comps[b][0]
	})

	out := make([][]domain.NodeID, len(comps))
	for i, c := range comps {
		out[i] = make([]domain.NodeID, len(c))
		for j, id := range c {
			out[i][j] = g.ids[id]
		}
	}
	return out
}

// Subgraph returns a new graph restricted to keep. Edges with an endpoint
// outside keep are dropped. Node and edge order are preserved.
func (g *Graph) Subgraph(keep []domain.NodeID) *Graph {
	set := make(map[domain.NodeID]bool, len(keep))
	for _, id := range keep {
		set[id] = true
	}

	b := NewBuilder(g.name, g.directed)
	for i, id := range g.ids {
		if !set[id] {
			continue
		}
		if g.hasPos[i] {
			b.AddNodeAt(id, g.positions[i])
		} else {
			b.AddNode(id)
		}
	}
	for _, e := range g.edges {
		if set[e.From] && set[e.To] {
			b.AddEdge(e.From, e.To, e.Color)
		}
	}
	return b.Build()
}

// LargestComponent reduces g to its largest weakly connected component.
// An empty graph is returned unchanged.
func LargestComponent(g *Graph) *Graph {
	if g.Len() == 0 {
		return g
	}
	comps := g.Components()
	if len(comps[0]) == g.Len() {
		return g
	}
	return g.Subgraph(comps[0])
}
