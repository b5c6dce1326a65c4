package validator

import (
	"testing"

	"github.com/aretw0/germwalk/pkg/domain"
	"github.com/aretw0/germwalk/pkg/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateGraph(t *testing.T) {
	t.Run("Connected", func(t *testing.T) {
		b := graph.NewBuilder("line", false)
		b.AddNodeAt("a", domain.Position{X: 0})
		b.AddNodeAt("b", domain.Position{X: 1})
		b.AddEdge("a", "b", "")

		r, err := ValidateGraph(b.Build(), true)
		require.NoError(t, err)
		assert.Equal(t, 2, r.Nodes)
		assert.Equal(t, 1, r.Edges)
		assert.Equal(t, 1, r.Components)
		assert.Empty(t, r.Warnings)
	})

	t.Run("Isolated Node", func(t *testing.T) {
		b := graph.NewBuilder("split", false)
		b.AddNode("a")
		b.AddNode("b")
		b.AddEdge("a", "b", "")
		b.AddNode("d")
		g := b.Build()

		r, err := ValidateGraph(g, false)
		require.NoError(t, err)
		assert.Equal(t, 2, r.Components)
		assert.Equal(t, 2, r.Largest)
		assert.Equal(t, []domain.NodeID{"d"}, r.Isolated)
		assert.Len(t, r.Warnings, 2)

		_, err = ValidateGraph(g, true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "isolated node(s): d")
	})

	t.Run("Directed Sink", func(t *testing.T) {
		b := graph.NewBuilder("oneway", true)
		b.AddNode("a")
		b.AddNode("b")
		b.AddEdge("a", "b", "")

		r, err := ValidateGraph(b.Build(), false)
		require.NoError(t, err)
		assert.Equal(t, []domain.NodeID{"b"}, r.Sinks)
		assert.Empty(t, r.Isolated)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := ValidateGraph(graph.NewBuilder("empty", false).Build(), false)
		assert.ErrorIs(t, err, domain.ErrEmptyGraph)
	})
}
