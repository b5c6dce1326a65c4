package graph_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/germwalk/pkg/domain"
	"github.com/aretw0/germwalk/pkg/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_JSONNumericIDs(t *testing.T) {
	data := []byte(`{
		"directed": true,
		"nodes": [
			{"id": 2451284871, "x": -73.5673, "y": 45.5017},
			{"id": 2451284872, "x": -73.5681, "y": 45.5021},
			{"id": "named"}
		],
		"edges": [
			{"from": 2451284871, "to": 2451284872},
			{"from": "2451284872", "to": "named", "color": "gray"}
		]
	}`)

	g, err := graph.Decode(data, true)
	require.NoError(t, err)

	assert.True(t, g.Directed())
	assert.Equal(t, []domain.NodeID{"2451284871", "2451284872", "named"}, g.Nodes())
	assert.Equal(t, []domain.NodeID{"2451284872"}, g.Neighbors("2451284871"))

	pos, ok := g.Position("2451284871")
	require.True(t, ok)
	assert.InDelta(t, -73.5673, pos.X, 1e-9)
	assert.InDelta(t, 45.5017, pos.Y, 1e-9)

	_, ok = g.Position("named")
	assert.False(t, ok)
}

func TestDecode_YAML(t *testing.T) {
	data := []byte(`
name: tiny
nodes:
  - {id: 1, x: 0, y: 0}
  - {id: 2, x: 1.5, y: 2}
edges:
  - {from: 1, to: 2}
`)
	g, err := graph.Decode(data, false)
	require.NoError(t, err)

	assert.Equal(t, "tiny", g.Name())
	assert.False(t, g.Directed())
	assert.Equal(t, []domain.NodeID{"2"}, g.Neighbors("1"))
	pos, _ := g.Position("2")
	assert.Equal(t, domain.Position{X: 1.5, Y: 2}, pos)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "Missing ID", data: `{"nodes": [{"x": 1, "y": 2}]}`},
		{name: "Unknown Edge Endpoint", data: `{"nodes": [{"id": "a"}], "edges": [{"from": "a", "to": "b"}]}`},
		{name: "Malformed", data: `{"nodes": [`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := graph.Decode([]byte(tt.data), true)
			assert.Error(t, err)
		})
	}

	_, err := graph.Decode([]byte(`{"nodes": [{"id": "a"}], "edges": [{"from": "a", "to": "b"}]}`), true)
	assert.ErrorIs(t, err, domain.ErrNodeNotFound)
}

func TestWriteFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	original := pathGraph()

	for _, name := range []string{"graph.json", "graph.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, graph.WriteFile(path, original))

			loaded, err := graph.LoadFile(path)
			require.NoError(t, err)

			assert.Equal(t, original.Name(), loaded.Name())
			assert.Equal(t, original.Nodes(), loaded.Nodes())
			assert.Equal(t, original.Edges(), loaded.Edges())
			for _, id := range original.Nodes() {
				want, _ := original.Position(id)
				got, ok := loaded.Position(id)
				assert.True(t, ok)
				assert.Equal(t, want, got)
			}
		})
	}
}

func TestFileLoader_LargestComponent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roads.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"nodes": [{"id": "a"}, {"id": "b"}, {"id": "c"}, {"id": "island"}],
		"edges": [{"from": "a", "to": "b"}, {"from": "b", "to": "c"}]
	}`), 0o644))

	full, err := graph.FileLoader{}.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, full.Len())

	reduced, err := graph.FileLoader{LargestComponent: true}.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, reduced.Len())
	assert.False(t, reduced.Has("island"))
}

func TestLoadFile_NameDefaultsToFileName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "downtown.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"nodes": [{"id": "a"}]}`), 0o644))

	g, err := graph.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "downtown", g.Name())
}
