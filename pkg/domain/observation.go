package domain

import "time"

// Observation records where an agent stood at the end of a tick.
// Tick 0 is the placement produced by initialization.
type Observation struct {
	Tick        int      `json:"tick"`
	AgentID     int      `json:"agent_id"`
	Node        NodeID   `json:"node"`
	Position    Position `json:"position"`
	HasPosition bool     `json:"has_position"`
}

// RunInfo describes a simulation run for persistence and listing.
type RunInfo struct {
	ID        string    `json:"id"`
	Graph     string    `json:"graph"`
	Seed      int64     `json:"seed"`
	Steps     int       `json:"steps"`
	Agents    int       `json:"agents"`
	CreatedAt time.Time `json:"created_at"`
}
