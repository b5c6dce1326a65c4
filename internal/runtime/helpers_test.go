package runtime_test

import (
	"fmt"

	"github.com/aretw0/germwalk/pkg/domain"
	"github.com/aretw0/germwalk/pkg/graph"
)

// scriptedRand replays fixed IntN results and never shuffles.
type scriptedRand struct {
	ints  []int
	calls []int
}

func (r *scriptedRand) IntN(n int) int {
	r.calls = append(r.calls, n)
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *scriptedRand) Shuffle(n int, swap func(i, j int)) {}

func int64Ptr(v int64) *int64 { return &v }

// pathABC is the graph A - B - C.
func pathABC() *graph.Graph {
	b := graph.NewBuilder("abc", false)
	b.AddNodeAt("A", domain.Position{X: 0, Y: 0})
	b.AddNodeAt("B", domain.Position{X: 1, Y: 0})
	b.AddNodeAt("C", domain.Position{X: 2, Y: 0})
	b.AddEdge("A", "B", "")
	b.AddEdge("B", "C", "")
	return b.Build()
}

// isolated is a single node without edges.
func isolated() *graph.Graph {
	b := graph.NewBuilder("isolated", false)
	b.AddNode("D")
	return b.Build()
}

// grid builds an n x n lattice plus one isolated node "island".
func grid(n int) *graph.Graph {
	b := graph.NewBuilder("grid", false)
	id := func(x, y int) domain.NodeID { return domain.NodeID(fmt.Sprintf("%d:%d", x, y)) }
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			b.AddNodeAt(id(x, y), domain.Position{X: float64(x), Y: float64(y)})
		}
	}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if x+1 < n {
				b.AddEdge(id(x, y), id(x+1, y), "")
			}
			if y+1 < n {
				b.AddEdge(id(x, y), id(x, y+1), "")
			}
		}
	}
	b.AddNode("island")
	return b.Build()
}
