package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/germwalk/pkg/domain"
	"github.com/aretw0/germwalk/pkg/graph"
)

// Overlay contains run state to visualize on the graph.
type Overlay struct {
	// Occupancy counts agents per node, usually from the last snapshot.
	Occupancy map[domain.NodeID]int
	// Visited nodes were entered by at least one agent during the run.
	Visited []domain.NodeID
}

// OverlayFromObservations builds an overlay where Occupancy comes from the
// latest tick in obs and Visited from every tick.
func OverlayFromObservations(obs []domain.Observation) *Overlay {
	o := &Overlay{Occupancy: make(map[domain.NodeID]int)}
	last := -1
	for _, ob := range obs {
		if ob.Tick > last {
			last = ob.Tick
		}
	}
	seen := make(map[domain.NodeID]bool)
	for _, ob := range obs {
		if ob.Tick == last {
			o.Occupancy[ob.Node]++
		}
		if !seen[ob.Node] {
			seen[ob.Node] = true
			o.Visited = append(o.Visited, ob.Node)
		}
	}
	return o
}

// GenerateMermaid produces a Mermaid flowchart of g.
// Shapes:
// - Isolated node: ((Circle))
// - Default: [Rectangle]
// Colored edges get a linkStyle; the overlay marks visited and occupied
// nodes and appends the agent count to the label.
func GenerateMermaid(g *graph.Graph, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, id := range g.Nodes() {
		safeID := sanitizeMermaidID(string(id))

		opener, closer := "[", "]"
		if len(g.Neighbors(id)) == 0 {
			opener, closer = "((", "))"
		}

		label := string(id)
		if overlay != nil && overlay.Occupancy[id] > 0 {
			label = fmt.Sprintf("%s <br/> %d agents", id, overlay.Occupancy[id])
		}
		label = strings.ReplaceAll(label, "\"", "'")
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, label, closer))
	}

	arrow := "---"
	if g.Directed() {
		arrow = "-->"
	}
	var styles []string
	for i, e := range g.Edges() {
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", sanitizeMermaidID(string(e.From)), arrow, sanitizeMermaidID(string(e.To))))
		if e.Color != "" {
			styles = append(styles, fmt.Sprintf("    linkStyle %d stroke:%s,stroke-width:2px;\n", i, e.Color))
		}
	}
	for _, s := range styles {
		sb.WriteString(s)
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for contrast in both light and dark themes.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef occupied fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.Visited {
			if !g.Has(id) || overlay.Occupancy[id] > 0 {
				continue
			}
			safeID := sanitizeMermaidID(string(id))
			if !visitedSet[safeID] {
				visitedSet[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}

		occupied := make([]string, 0, len(overlay.Occupancy))
		for id, n := range overlay.Occupancy {
			if n > 0 && g.Has(id) {
				occupied = append(occupied, sanitizeMermaidID(string(id)))
			}
		}
		sort.Strings(occupied)
		for _, safeID := range occupied {
			sb.WriteString(fmt.Sprintf("    class %s occupied;\n", safeID))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	r := strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_", ":", "_")
	s := r.Replace(id)
	if s != "" && s[0] >= '0' && s[0] <= '9' {
		s = "n" + s
	}
	return s
}
