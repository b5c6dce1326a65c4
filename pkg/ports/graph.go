package ports

import "github.com/aretw0/germwalk/pkg/domain"

// Graph is the read-only spatial graph the simulation walks on.
// Implementations must be immutable for the lifetime of a simulation and
// return nodes in a stable order, otherwise seeded runs are not reproducible.
type Graph interface {
	// Len returns the number of nodes.
	Len() int

	// Nodes returns every node ID in a deterministic order.
	Nodes() []domain.NodeID

	// Has reports whether id is a node of the graph.
	Has(id domain.NodeID) bool

	// Neighbors returns the nodes reachable from id in one hop, in a
	// deterministic order. It returns nil for unknown or isolated nodes.
	Neighbors(id domain.NodeID) []domain.NodeID

	// Position returns the coordinate attached to id, if any.
	Position(id domain.NodeID) (domain.Position, bool)
}

// GraphLoader defines how a graph is obtained from a source (file, URL, ...).
type GraphLoader interface {
	Load(path string) (Graph, error)
}
