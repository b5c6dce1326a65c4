/*
Package runtime implements the simulation core: the shared random source,
agents, the random-activation scheduler and the population that drives ticks.

Everything here is synchronous and free of I/O. Every stochastic decision
draws from the single Source owned by the Population, in a fixed order:

  - Init: one IntN(len(nodes)) per agent, in agent ID order.
  - Each tick: one Shuffle over the agents, then one IntN(len(neighbors))
    per activated agent whose node has at least one neighbor.

Two populations built with the same seed over the same graph therefore
produce identical trajectories.
*/
package runtime
