package runtime

// Scheduler decides in which order units are activated during a tick.
// Implementations must activate every unit exactly once and call visit
// (when non-nil) right after each activation with the unit's index in
// units and the result of its Step.
type Scheduler interface {
	Step(units []Activatable, rng Rand, visit func(index int, moved bool))
}

// RandomActivation activates units in a freshly shuffled order every tick.
// The caller's slice is never reordered.
type RandomActivation struct{}

var _ Scheduler = RandomActivation{}

// Step draws a permutation from rng and activates each unit once, in order.
func (RandomActivation) Step(units []Activatable, rng Rand, visit func(int, bool)) {
	order := make([]int, len(units))
	for i := range order {
		order[i] = i
	}
	rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	for _, i := range order {
		moved := units[i].Step(rng)
		if visit != nil {
			visit(i, moved)
		}
	}
}
