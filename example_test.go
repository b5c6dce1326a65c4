package germwalk_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/germwalk"
	"github.com/aretw0/germwalk/pkg/domain"
	"github.com/aretw0/germwalk/pkg/graph"
)

func Example() {
	b := graph.NewBuilder("triangle", false)
	b.AddNodeAt("A", domain.Position{X: 0, Y: 0})
	b.AddNodeAt("B", domain.Position{X: 1, Y: 0})
	b.AddNodeAt("C", domain.Position{X: 0, Y: 1})
	b.AddEdge("A", "B", "")
	b.AddEdge("B", "C", "")
	b.AddEdge("C", "A", "")

	sim, err := germwalk.New("",
		germwalk.WithGraph(b.Build()),
		germwalk.WithAgents(3),
		germwalk.WithSteps(5),
		germwalk.WithSeed(42),
	)
	if err != nil {
		log.Fatal(err)
	}
	if err := sim.Init(); err != nil {
		log.Fatal(err)
	}
	if err := sim.Run(context.Background()); err != nil {
		log.Fatal(err)
	}

	for _, tr := range sim.Trajectories() {
		fmt.Printf("agent %d visited %d positions\n", tr.AgentID, len(tr.Points))
	}
	// Output:
	// agent 0 visited 6 positions
	// agent 1 visited 6 positions
	// agent 2 visited 6 positions
}
