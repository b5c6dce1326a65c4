/*
Package domain contains the core domain models for the germwalk simulation.

It defines the vocabulary shared by the engine, the graph adapters and the
observers (recorders, stores, metrics). This package is kept pure and free of
external dependencies like I/O or persistence.

# Key Entities

  - NodeID / Position: identity and 2D coordinate of a node in the spatial graph.
  - Observation: where one agent stood after one tick.
  - RunInfo: metadata describing a simulation run (seed, sizes, graph).
  - LifecycleHooks: callbacks fired by the population as it initializes and ticks.
  - Phase: the population state machine (Uninitialized, Ready, Completed).
*/
package domain
