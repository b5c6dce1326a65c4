/*
Package ports defines the driven ports (interfaces) for the germwalk engine.

These interfaces decouple the simulation core from external implementations,
allowing it to walk any graph source and to persist trajectories in various
storage backends.

# Key Interfaces

  - Graph: the read-only spatial graph (nodes, adjacency, positions).
  - GraphLoader: obtains a Graph from a file or another source.
  - TrajectoryStore: persists runs and their per-tick observations.
*/
package ports
