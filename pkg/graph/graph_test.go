package graph_test

import (
	"testing"

	"github.com/aretw0/germwalk/pkg/domain"
	"github.com/aretw0/germwalk/pkg/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pathGraph() *graph.Graph {
	b := graph.NewBuilder("path", false)
	b.AddNodeAt("A", domain.Position{X: 0, Y: 0})
	b.AddNodeAt("B", domain.Position{X: 1, Y: 0})
	b.AddNodeAt("C", domain.Position{X: 2, Y: 0})
	b.AddEdge("A", "B", "")
	b.AddEdge("B", "C", "")
	return b.Build()
}

func TestBuilder_Undirected(t *testing.T) {
	g := pathGraph()

	assert.Equal(t, 3, g.Len())
	assert.Equal(t, 2, g.EdgeCount())
	assert.Equal(t, []domain.NodeID{"A", "B", "C"}, g.Nodes())
	assert.Equal(t, []domain.NodeID{"A", "C"}, g.Neighbors("B"))
	assert.Equal(t, []domain.NodeID{"B"}, g.Neighbors("A"))
	assert.Equal(t, []domain.NodeID{"B"}, g.Neighbors("C"))
	assert.Nil(t, g.Neighbors("missing"))

	pos, ok := g.Position("C")
	require.True(t, ok)
	assert.Equal(t, domain.Position{X: 2, Y: 0}, pos)
}

func TestBuilder_NeighborOrderFollowsInsertion(t *testing.T) {
	b := graph.NewBuilder("star", false)
	for _, id := range []domain.NodeID{"hub", "n1", "n2", "n3", "n4"} {
		b.AddNode(id)
	}
	// Declared out of order on purpose.
	b.AddEdge("hub", "n3", "")
	b.AddEdge("n1", "hub", "")
	b.AddEdge("hub", "n4", "")
	b.AddEdge("hub", "n2", "")
	g := b.Build()

	for i := 0; i < 10; i++ {
		assert.Equal(t, []domain.NodeID{"n1", "n2", "n3", "n4"}, g.Neighbors("hub"))
	}
}

func TestBuilder_Directed(t *testing.T) {
	b := graph.NewBuilder("oneway", true)
	b.AddEdge("A", "B", "")
	b.AddEdge("B", "C", "")
	g := b.Build()

	assert.True(t, g.Directed())
	assert.Equal(t, []domain.NodeID{"B"}, g.Neighbors("A"))
	assert.Empty(t, g.Neighbors("C"), "sink node has no successors")

	// Weak connectivity ignores direction.
	comps := g.Components()
	require.Len(t, comps, 1)
	assert.Len(t, comps[0], 3)
}

func TestBuilder_IgnoresSelfLoopsAndDuplicates(t *testing.T) {
	b := graph.NewBuilder("dup", false)
	assert.True(t, b.AddEdge("A", "B", "red"))
	assert.False(t, b.AddEdge("B", "A", "blue"), "reverse duplicate in undirected graph")
	assert.False(t, b.AddEdge("A", "A", ""), "self loop")
	g := b.Build()

	assert.Equal(t, 1, g.EdgeCount())
	assert.Equal(t, "blue", g.Edges()[0].Color, "a repeated edge keeps the latest color")
	assert.Equal(t, []domain.NodeID{"B"}, g.Neighbors("A"))
}

func TestBuilder_DirectedReverseIsDistinct(t *testing.T) {
	b := graph.NewBuilder("oneway", true)
	assert.True(t, b.AddEdge("A", "B", "red"))
	assert.True(t, b.AddEdge("B", "A", "blue"))
	assert.False(t, b.AddEdge("A", "B", "green"))
	g := b.Build()

	require.Equal(t, 2, g.EdgeCount())
	assert.Equal(t, "green", g.Edges()[0].Color)
	assert.Equal(t, "blue", g.Edges()[1].Color)
}

func TestBuilder_NodeWithoutPosition(t *testing.T) {
	b := graph.NewBuilder("", false)
	b.AddNode("D")
	g := b.Build()

	_, ok := g.Position("D")
	assert.False(t, ok)
	assert.True(t, g.Has("D"))
	assert.Empty(t, g.Neighbors("D"))
}

func TestLargestComponent(t *testing.T) {
	b := graph.NewBuilder("islands", false)
	b.AddNode("lonely")
	b.AddEdge("x1", "x2", "")
	b.AddEdge("a", "b", "")
	b.AddEdge("b", "c", "")
	b.AddEdge("c", "a", "")
	g := b.Build()

	comps := g.Components()
	require.Len(t, comps, 3)
	assert.Equal(t, []domain.NodeID{"a", "b", "c"}, comps[0])
	assert.Equal(t, []domain.NodeID{"x1", "x2"}, comps[1])
	assert.Equal(t, []domain.NodeID{"lonely"}, comps[2])

	reduced := graph.LargestComponent(g)
	assert.Equal(t, []domain.NodeID{"a", "b", "c"}, reduced.Nodes())
	assert.Equal(t, 3, reduced.EdgeCount())
	assert.False(t, reduced.Has("lonely"))
	assert.Equal(t, "islands", reduced.Name())

	// Already connected graphs come back untouched.
	assert.Same(t, reduced, graph.LargestComponent(reduced))
}
