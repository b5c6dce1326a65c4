package domain

import "errors"

// ErrInvalidConfiguration is returned when a population is constructed with
// non-positive sizes or an empty graph.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ErrInvalidState is returned when an operation is called in the wrong phase
// (stepping before init, initializing twice, stepping a completed run).
var ErrInvalidState = errors.New("invalid state")

// ErrEmptyGraph is returned when a graph has no nodes.
var ErrEmptyGraph = errors.New("graph has no nodes")

// ErrNodeNotFound is returned when a node ID is not part of the graph.
var ErrNodeNotFound = errors.New("node not found")

// ErrRunNotFound is returned when a run ID cannot be found in the store.
var ErrRunNotFound = errors.New("run not found")
