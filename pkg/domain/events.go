package domain

import "time"

// InitEvent is emitted once, after every agent has been placed.
type InitEvent struct {
	Agents       int
	Seed         int64
	Observations []Observation
}

// MoveEvent is emitted after each agent activation.
// Moved is false when the agent sat on a node without neighbors.
type MoveEvent struct {
	Tick    int
	AgentID int
	From    NodeID
	To      NodeID
	Moved   bool
}

// TickEvent is emitted after every agent has been activated for a tick.
type TickEvent struct {
	Tick         int
	Steps        int
	Moved        int
	Stalled      int
	Duration     time.Duration
	Observations []Observation
}

// CompleteEvent is emitted when the last configured tick has run.
type CompleteEvent struct {
	Ticks int
}

// LifecycleHooks defines callbacks for population observability.
// Hooks run synchronously inside the tick loop and must not block.
type LifecycleHooks struct {
	OnInit     func(*InitEvent)
	OnMove     func(*MoveEvent)
	OnTick     func(*TickEvent)
	OnComplete func(*CompleteEvent)
}
