package domain

// Phase is the lifecycle state of a population.
type Phase int

const (
	// PhaseUninitialized is the state after construction, before agents exist.
	PhaseUninitialized Phase = iota
	// PhaseReady means agents are placed and ticks may run.
	PhaseReady
	// PhaseCompleted means every configured tick has run. There is no way back.
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseReady:
		return "ready"
	case PhaseCompleted:
		return "completed"
	default:
		return "unknown"
	}
}
