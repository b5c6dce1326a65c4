/*
Package graph provides the immutable spatial graph used by the simulation.

A Graph is assembled with a Builder (or loaded from a document or a metro
station CSV) and never changes afterwards. Storage and topology queries are
backed by gonum's simple graphs; neighbor lists are cached in insertion order
so that every query is deterministic, which seeded runs depend on.

	b := graph.NewBuilder("path", false)
	b.AddNodeAt("A", domain.Position{X: 0, Y: 0})
	b.AddNodeAt("B", domain.Position{X: 1, Y: 0})
	b.AddEdge("A", "B", "")
	g := b.Build()
*/
package graph
