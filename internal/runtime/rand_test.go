package runtime_test

import (
	"testing"

	"github.com/aretw0/germwalk/internal/runtime"
	"github.com/stretchr/testify/assert"
)

func TestSource_SameSeedSameSequence(t *testing.T) {
	a := runtime.NewSource(int64Ptr(42))
	b := runtime.NewSource(int64Ptr(42))

	for i := 0; i < 100; i++ {
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
	}

	pa := []int{0, 1, 2, 3, 4, 5, 6, 7}
	pb := []int{0, 1, 2, 3, 4, 5, 6, 7}
	a.Shuffle(len(pa), func(i, j int) { pa[i], pa[j] = pa[j], pa[i] })
	b.Shuffle(len(pb), func(i, j int) { pb[i], pb[j] = pb[j], pb[i] })
	assert.Equal(t, pa, pb)
}

func TestSource_Seed(t *testing.T) {
	assert.Equal(t, int64(-7), runtime.NewSource(int64Ptr(-7)).Seed())

	// An entropy-seeded source can be replayed from its reported seed.
	s := runtime.NewSource(nil)
	replay := runtime.NewSource(int64Ptr(s.Seed()))
	for i := 0; i < 20; i++ {
		assert.Equal(t, s.IntN(1<<20), replay.IntN(1<<20))
	}
}
