package germwalk_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/germwalk"
	"github.com/aretw0/germwalk/internal/adapters/memory"
	"github.com/aretw0/germwalk/pkg/domain"
	"github.com/aretw0/germwalk/pkg/graph"
)

// ring builds a cycle of n nodes plus an isolated "D" node.
func ring(n int) *graph.Graph {
	b := graph.NewBuilder("ring", false)
	ids := make([]domain.NodeID, n)
	for i := range ids {
		ids[i] = domain.NodeID(string(rune('a' + i)))
		b.AddNodeAt(ids[i], domain.Position{X: float64(i), Y: 0})
	}
	for i := range ids {
		b.AddEdge(ids[i], ids[(i+1)%n], "")
	}
	b.AddNode("D")
	return b.Build()
}

func TestNew_Defaults(t *testing.T) {
	sim, err := germwalk.New("", germwalk.WithGraph(ring(5)), germwalk.WithSeed(42))
	require.NoError(t, err)

	info := sim.Info()
	assert.Equal(t, germwalk.DefaultSteps, info.Steps)
	assert.Equal(t, germwalk.DefaultAgents, info.Agents)
	assert.Equal(t, int64(42), info.Seed)
	assert.Equal(t, "ring", info.Graph)
	assert.NotEmpty(t, info.ID)
	assert.Equal(t, domain.PhaseUninitialized, sim.Phase())
}

func TestNew_InvalidConfiguration(t *testing.T) {
	_, err := germwalk.New("", germwalk.WithGraph(ring(3)), germwalk.WithAgents(0))
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)

	_, err = germwalk.New("", germwalk.WithGraph(ring(3)), germwalk.WithSteps(0))
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)

	_, err = germwalk.New("")
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)

	_, err = germwalk.New(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNew_LoadsFileAndReducesComponent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ring.yaml")
	require.NoError(t, graph.WriteFile(path, ring(4)))

	sim, err := germwalk.New(path, germwalk.WithLargestComponent(true), germwalk.WithName("city"))
	require.NoError(t, err)

	assert.Equal(t, 4, sim.Graph().Len())
	assert.False(t, sim.Graph().Has("D"))
	assert.Equal(t, "city", sim.Info().Graph)
}

func TestSimulation_RunRecordsTrajectories(t *testing.T) {
	var ticks int
	sim, err := germwalk.New("",
		germwalk.WithGraph(ring(6)),
		germwalk.WithSteps(12),
		germwalk.WithAgents(4),
		germwalk.WithSeed(7),
		germwalk.WithLifecycleHooks(domain.LifecycleHooks{
			OnTick: func(*domain.TickEvent) { ticks++ },
		}),
	)
	require.NoError(t, err)

	assert.ErrorIs(t, sim.Run(context.Background()), domain.ErrInvalidState)

	require.NoError(t, sim.Init())
	require.NoError(t, sim.Run(context.Background()))
	assert.Equal(t, 12, ticks)
	assert.Equal(t, 12, sim.Tick())
	assert.Equal(t, domain.PhaseCompleted, sim.Phase())

	trs := sim.Trajectories()
	require.Len(t, trs, 4)
	for _, tr := range trs {
		require.Len(t, tr.Points, 13)
		for i := 1; i < len(tr.Points); i++ {
			prev, cur := tr.Points[i-1].Node, tr.Points[i].Node
			neighbors := sim.Graph().Neighbors(prev)
			if len(neighbors) == 0 {
				assert.Equal(t, prev, cur, "agent %d left a node without neighbors", tr.AgentID)
				continue
			}
			assert.Contains(t, neighbors, cur)
		}
	}

	assert.ErrorIs(t, sim.Run(context.Background()), domain.ErrInvalidState)
}

func TestSimulation_Reproducible(t *testing.T) {
	run := func() any {
		sim, err := germwalk.New("", germwalk.WithGraph(ring(8)), germwalk.WithSteps(20), germwalk.WithAgents(5), germwalk.WithSeed(2024))
		require.NoError(t, err)
		require.NoError(t, sim.Init())
		require.NoError(t, sim.Run(context.Background()))
		return sim.Trajectories()
	}

	if diff := cmp.Diff(run(), run()); diff != "" {
		t.Fatalf("runs with the same seed differ (-first +second):\n%s", diff)
	}
}

func TestSimulation_EntropySeedIsReplayable(t *testing.T) {
	first, err := germwalk.New("", germwalk.WithGraph(ring(8)), germwalk.WithSteps(10), germwalk.WithAgents(3))
	require.NoError(t, err)
	require.NoError(t, first.Init())
	require.NoError(t, first.Run(context.Background()))

	replay, err := germwalk.New("", germwalk.WithGraph(ring(8)), germwalk.WithSteps(10), germwalk.WithAgents(3),
		germwalk.WithSeed(first.Info().Seed))
	require.NoError(t, err)
	require.NoError(t, replay.Init())
	require.NoError(t, replay.Run(context.Background()))

	assert.Equal(t, first.Trajectories(), replay.Trajectories())
}

func TestSimulation_PersistsToStore(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	sim, err := germwalk.New("",
		germwalk.WithGraph(ring(5)),
		germwalk.WithSteps(3),
		germwalk.WithAgents(2),
		germwalk.WithSeed(1),
		germwalk.WithStore(store),
	)
	require.NoError(t, err)
	require.NoError(t, sim.Init())

	// A manual step is queued and written by Run.
	require.NoError(t, sim.Step())
	require.NoError(t, sim.Run(ctx))

	info, err := store.LoadRun(ctx, sim.Info().ID)
	require.NoError(t, err)
	assert.Equal(t, sim.Info(), info)

	obs, err := store.LoadObservations(ctx, sim.Info().ID)
	require.NoError(t, err)
	require.Len(t, obs, 2*4)
	assert.Equal(t, 0, obs[0].Tick)
	assert.Equal(t, 3, obs[len(obs)-1].Tick)
}

func TestSimulation_CancelledContextStopsAtStoreWrite(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sim, err := germwalk.New("", germwalk.WithGraph(ring(5)), germwalk.WithSteps(3), germwalk.WithAgents(2), germwalk.WithStore(memory.New()))
	require.NoError(t, err)
	require.NoError(t, sim.Init())

	assert.ErrorIs(t, sim.Run(ctx), context.Canceled)
	assert.Equal(t, 0, sim.Tick())
}

func TestSimulation_IsolatedAgentStaysPut(t *testing.T) {
	b := graph.NewBuilder("d", false)
	b.AddNode("D")

	sim, err := germwalk.New("", germwalk.WithGraph(b.Build()), germwalk.WithSteps(10), germwalk.WithAgents(1), germwalk.WithSeed(3))
	require.NoError(t, err)
	require.NoError(t, sim.Init())
	require.NoError(t, sim.Run(context.Background()))

	for _, p := range sim.Trajectories()[0].Points {
		assert.Equal(t, domain.NodeID("D"), p.Node)
		assert.False(t, p.HasPosition)
	}
}
