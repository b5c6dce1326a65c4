package runtime

import "math/rand/v2"

// Rand is the subset of *rand.Rand the simulation draws from.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Source is the single seeded generator shared by every stochastic choice
// of a population.
type Source struct {
	rng  *rand.Rand
	seed int64
}

var _ Rand = (*Source)(nil)

// NewSource seeds a PCG generator. A nil seed draws one from the process
// entropy; Seed reports it so the run can be replayed.
func NewSource(seed *int64) *Source {
	var s int64
	if seed != nil {
		s = *seed
	} else {
		s = int64(rand.Uint64())
	}
	return &Source{
		rng:  rand.New(rand.NewPCG(uint64(s), uint64(s))),
		seed: s,
	}
}

// Seed returns the seed the generator was created with.
func (s *Source) Seed() int64 { return s.seed }

// IntN returns a uniform int in [0, n). It panics if n <= 0.
func (s *Source) IntN(n int) int { return s.rng.IntN(n) }

// Shuffle permutes n elements using swap.
func (s *Source) Shuffle(n int, swap func(i, j int)) { s.rng.Shuffle(n, swap) }
