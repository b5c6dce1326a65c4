package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/germwalk/pkg/domain"
	"github.com/aretw0/germwalk/pkg/graph"
)

// Report summarizes the structure of a graph as seen by walking agents.
type Report struct {
	Name       string
	Directed   bool
	Nodes      int
	Edges      int
	Components int
	Largest    int
	// Isolated nodes have no neighbors; agents placed there never move.
	Isolated []domain.NodeID
	// Sinks are nodes of a directed graph without successors.
	Sinks        []domain.NodeID
	Unpositioned int
	Warnings     []string
}

// ValidateGraph inspects g and reports degenerate topology.
// An empty graph is always an error. In strict mode every warning is an
// error too.
func ValidateGraph(g *graph.Graph, strict bool) (*Report, error) {
	if g == nil || g.Len() == 0 {
		return nil, fmt.Errorf("graph has no nodes: %w", domain.ErrEmptyGraph)
	}

	r := &Report{
		Name:     g.Name(),
		Directed: g.Directed(),
		Nodes:    g.Len(),
		Edges:    g.EdgeCount(),
	}

	components := g.Components()
	r.Components = len(components)
	if len(components) > 0 {
		r.Largest = len(components[0])
	}

	for _, id := range g.Nodes() {
		if len(g.Neighbors(id)) == 0 {
			if g.Directed() && len(componentOf(components, id)) > 1 {
				r.Sinks = append(r.Sinks, id)
			} else {
				r.Isolated = append(r.Isolated, id)
			}
		}
		if _, ok := g.Position(id); !ok {
			r.Unpositioned++
		}
	}

	if r.Components > 1 {
		r.Warnings = append(r.Warnings, fmt.Sprintf("graph has %d connected components, largest has %d of %d nodes", r.Components, r.Largest, r.Nodes))
	}
	if len(r.Isolated) > 0 {
		r.Warnings = append(r.Warnings, fmt.Sprintf("%d isolated node(s): %s", len(r.Isolated), joinIDs(r.Isolated)))
	}
	if len(r.Sinks) > 0 {
		r.Warnings = append(r.Warnings, fmt.Sprintf("%d sink node(s) trap agents: %s", len(r.Sinks), joinIDs(r.Sinks)))
	}
	if r.Unpositioned > 0 && r.Unpositioned < r.Nodes {
		r.Warnings = append(r.Warnings, fmt.Sprintf("%d node(s) have no position", r.Unpositioned))
	}

	if strict && len(r.Warnings) > 0 {
		return r, fmt.Errorf("found %d errors:\n- %s", len(r.Warnings), strings.Join(r.Warnings, "\n- "))
	}
	return r, nil
}

func componentOf(components [][]domain.NodeID, id domain.NodeID) []domain.NodeID {
	for _, c := range components {
		for _, n := range c {
			if n == id {
				return c
			}
		}
	}
	return nil
}

func joinIDs(ids []domain.NodeID) string {
	const max = 10
	parts := make([]string, 0, max+1)
	for i, id := range ids {
		if i == max {
			parts = append(parts, fmt.Sprintf("... (%d more)", len(ids)-max))
			break
		}
		parts = append(parts, string(id))
	}
	return strings.Join(parts, ", ")
}
