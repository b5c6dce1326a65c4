/*
Package germwalk runs discrete-time random walks of independent agents on
a static graph.

Every tick, each agent is activated exactly once in a freshly shuffled
order and jumps to a uniformly chosen neighbor of its current node. Agents
on a node without neighbors stay put. All randomness comes from a single
generator seeded once, so a run is fully reproducible from its seed.

# Usage

	sim, err := germwalk.New("city.yaml",
		germwalk.WithAgents(30),
		germwalk.WithSteps(150),
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
		fmt.Println(tr.AgentID, len(tr.Points))
	}

Graphs are JSON or YAML documents (see package graph). Runs can be
persisted through a ports.TrajectoryStore with WithStore.
*/
package germwalk
