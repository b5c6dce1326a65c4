package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/germwalk/pkg/domain"
	"github.com/aretw0/germwalk/pkg/trajectory"
)

// Summary renders a markdown report of a finished run.
// top bounds the number of most occupied nodes listed.
func Summary(info domain.RunInfo, trs []trajectory.Trajectory, top int) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Run %s\n\n", info.ID)
	sb.WriteString("| Graph | Seed | Steps | Agents |\n")
	sb.WriteString("|---|---|---|---|\n")
	fmt.Fprintf(&sb, "| %s | %d | %d | %d |\n\n", info.Graph, info.Seed, info.Steps, info.Agents)

	final := make(map[domain.NodeID]int)
	var distinct, stuck int
	for _, tr := range trs {
		seen := make(map[domain.NodeID]bool)
		for _, p := range tr.Points {
			seen[p.Node] = true
		}
		distinct += len(seen)
		if len(seen) == 1 && len(tr.Points) > 1 {
			stuck++
		}
		if n := len(tr.Points); n > 0 {
			final[tr.Points[n-1].Node]++
		}
	}

	if len(trs) > 0 {
		fmt.Fprintf(&sb, "Agents visited **%.1f** distinct nodes on average.", float64(distinct)/float64(len(trs)))
		if stuck > 0 {
			fmt.Fprintf(&sb, " **%d** never left their starting node.", stuck)
		}
		sb.WriteString("\n\n")
	}

	type count struct {
		node domain.NodeID
		n    int
	}
	counts := make([]count, 0, len(final))
	for node, n := range final {
		counts = append(counts, count{node, n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].n != counts[j].n {
			return counts[i].n > counts[j].n
		}
		return counts[i].node < counts[j].node
	})
	if len(counts) > top {
		counts = counts[:top]
	}

	if len(counts) > 0 {
		sb.WriteString("## Final occupancy\n\n")
		sb.WriteString("| Node | Agents |\n")
		sb.WriteString("|---|---|\n")
		for _, c := range counts {
			fmt.Fprintf(&sb, "| %s | %d |\n", c.node, c.n)
		}
	}
	return sb.String()
}
