package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/germwalk/internal/adapters/memory"
	"github.com/aretw0/germwalk/pkg/domain"
	"github.com/aretw0/germwalk/pkg/graph"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	ctx := context.Background()

	store := memory.New()
	require.NoError(t, store.SaveRun(ctx, domain.RunInfo{
		ID: "run-1", Graph: "line", Seed: 42, Steps: 1, Agents: 1,
		CreatedAt: time.Unix(1700000000, 0).UTC(),
	}))
	require.NoError(t, store.AppendTick(ctx, "run-1", 0, []domain.Observation{
		{Tick: 0, AgentID: 0, Node: "a", Position: domain.Position{X: 0, Y: 0}, HasPosition: true},
	}))
	require.NoError(t, store.AppendTick(ctx, "run-1", 1, []domain.Observation{
		{Tick: 1, AgentID: 0, Node: "b", Position: domain.Position{X: 1, Y: 0}, HasPosition: true},
	}))

	b := graph.NewBuilder("line", false)
	b.AddNodeAt("a", domain.Position{X: 0, Y: 0})
	b.AddNodeAt("b", domain.Position{X: 1, Y: 0})
	b.AddEdge("a", "b", "green")

	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "germwalk_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	return NewHandler(&Server{Store: store, Graph: b.Build(), Gatherer: reg})
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealth(t *testing.T) {
	rr := get(t, newTestHandler(t), "/healthz")

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestListRuns(t *testing.T) {
	rr := get(t, newTestHandler(t), "/runs")

	require.Equal(t, http.StatusOK, rr.Code)
	var runs []domain.RunInfo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, "run-1", runs[0].ID)
}

func TestGetRun(t *testing.T) {
	h := newTestHandler(t)

	rr := get(t, h, "/runs/run-1")
	require.Equal(t, http.StatusOK, rr.Code)
	var run domain.RunInfo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &run))
	assert.Equal(t, int64(42), run.Seed)

	rr = get(t, h, "/runs/missing")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetTrajectories(t *testing.T) {
	h := newTestHandler(t)

	rr := get(t, h, "/runs/run-1/trajectories")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var doc struct {
		Agents []struct {
			AgentID int                  `json:"agent_id"`
			Points  []domain.Observation `json:"points"`
		} `json:"agents"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &doc))
	require.Len(t, doc.Agents, 1)
	require.Len(t, doc.Agents[0].Points, 2)
	assert.Equal(t, domain.NodeID("b"), doc.Agents[0].Points[1].Node)

	rr = get(t, h, "/runs/run-1/trajectories?format=csv")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.HasPrefix(rr.Body.String(), "tick,agent_id,node,x,y\n"))

	rr = get(t, h, "/runs/missing/trajectories")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetGraph(t *testing.T) {
	rr := get(t, newTestHandler(t), "/graph")

	require.Equal(t, http.StatusOK, rr.Code)
	var doc struct {
		Name  string           `json:"name"`
		Nodes []map[string]any `json:"nodes"`
		Edges []map[string]any `json:"edges"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &doc))
	assert.Equal(t, "line", doc.Name)
	assert.Len(t, doc.Nodes, 2)
	assert.Len(t, doc.Edges, 1)
}

func TestGetGraph_NoneLoaded(t *testing.T) {
	h := NewHandler(&Server{Store: memory.New()})
	rr := get(t, h, "/graph")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestMetrics(t *testing.T) {
	rr := get(t, newTestHandler(t), "/metrics")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "germwalk_test_total 1")
}
