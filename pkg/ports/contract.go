package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/germwalk/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunTrajectoryStoreContract runs a suite of tests to verify that a
// TrajectoryStore implementation adheres to the defined interface contract.
func RunTrajectoryStoreContract(t *testing.T, store TrajectoryStore) {
	ctx := context.Background()
	runID := "contract-test-run-" + time.Now().Format("20060102150405")

	newRun := func(id string) domain.RunInfo {
		return domain.RunInfo{
			ID:        id,
			Graph:     "contract",
			Seed:      42,
			Steps:     2,
			Agents:    2,
			CreatedAt: time.Now().UTC().Truncate(time.Second),
		}
	}

	t.Run("Save and Load Run", func(t *testing.T) {
		run := newRun(runID)
		require.NoError(t, store.SaveRun(ctx, run), "SaveRun should not return error")

		loaded, err := store.LoadRun(ctx, runID)
		require.NoError(t, err, "LoadRun should not return error")
		assert.Equal(t, run.ID, loaded.ID)
		assert.Equal(t, run.Seed, loaded.Seed)
		assert.Equal(t, run.Steps, loaded.Steps)
		assert.Equal(t, run.Agents, loaded.Agents)
		assert.True(t, run.CreatedAt.Equal(loaded.CreatedAt), "CreatedAt should round-trip")
	})

	t.Run("Append and Load Observations", func(t *testing.T) {
		require.NoError(t, store.SaveRun(ctx, newRun(runID)))

		tick0 := []domain.Observation{
			{Tick: 0, AgentID: 1, Node: "b", Position: domain.Position{X: 1, Y: 0}, HasPosition: true},
			{Tick: 0, AgentID: 0, Node: "a", Position: domain.Position{X: 0, Y: 0}, HasPosition: true},
		}
		tick1 := []domain.Observation{
			{Tick: 1, AgentID: 0, Node: "b", Position: domain.Position{X: 1, Y: 0}, HasPosition: true},
			{Tick: 1, AgentID: 1, Node: "c"},
		}
		require.NoError(t, store.AppendTick(ctx, runID, 0, tick0))
		require.NoError(t, store.AppendTick(ctx, runID, 1, tick1))

		obs, err := store.LoadObservations(ctx, runID)
		require.NoError(t, err)
		require.Len(t, obs, 4)

		// Ordered by tick, then agent.
		assert.Equal(t, domain.NodeID("a"), obs[0].Node)
		assert.Equal(t, domain.NodeID("b"), obs[1].Node)
		assert.Equal(t, 1, obs[2].Tick)
		assert.Equal(t, 0, obs[2].AgentID)
		assert.Equal(t, domain.NodeID("c"), obs[3].Node)
		assert.False(t, obs[3].HasPosition)
	})

	t.Run("Append Same Tick Replaces", func(t *testing.T) {
		id := runID + "-replay"
		require.NoError(t, store.SaveRun(ctx, newRun(id)))
		defer func() { _ = store.DeleteRun(ctx, id) }()

		require.NoError(t, store.AppendTick(ctx, id, 0, []domain.Observation{
			{Tick: 0, AgentID: 0, Node: "a"},
			{Tick: 0, AgentID: 1, Node: "b"},
		}))
		require.NoError(t, store.AppendTick(ctx, id, 1, []domain.Observation{
			{Tick: 1, AgentID: 0, Node: "b"},
			{Tick: 1, AgentID: 1, Node: "c"},
		}))
		require.NoError(t, store.AppendTick(ctx, id, 1, []domain.Observation{
			{Tick: 1, AgentID: 0, Node: "a"},
		}))

		obs, err := store.LoadObservations(ctx, id)
		require.NoError(t, err)
		require.Len(t, obs, 3, "re-appending a tick must replace it, not add to it")
		assert.Equal(t, domain.NodeID("a"), obs[2].Node)
		assert.Equal(t, 1, obs[2].Tick)
		assert.Equal(t, 0, obs[2].AgentID)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.LoadRun(ctx, "non-existent-"+runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound)

		_, err = store.LoadObservations(ctx, "non-existent-"+runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound)
	})

	t.Run("List", func(t *testing.T) {
		id1 := runID + "-1"
		id2 := runID + "-2"
		require.NoError(t, store.SaveRun(ctx, newRun(id1)))
		require.NoError(t, store.SaveRun(ctx, newRun(id2)))

		defer func() {
			_ = store.DeleteRun(ctx, id1)
			_ = store.DeleteRun(ctx, id2)
		}()

		runs, err := store.ListRuns(ctx)
		require.NoError(t, err)

		ids := make([]string, 0, len(runs))
		for _, r := range runs {
			ids = append(ids, r.ID)
		}
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.SaveRun(ctx, newRun(runID)))

		require.NoError(t, store.DeleteRun(ctx, runID), "DeleteRun should not return error")

		_, err := store.LoadRun(ctx, runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound, "LoadRun after DeleteRun should return ErrRunNotFound")
	})
}
