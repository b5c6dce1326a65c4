package domain

import "fmt"

// NodeID identifies a node of the spatial graph.
// It is opaque to the engine: only equality matters.
type NodeID string

// Position is the 2D coordinate attached to a node for rendering.
// For road and metro networks X is the longitude and Y the latitude.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", p.X, p.Y)
}
