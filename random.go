package fsa

import "math/rand/v2"

// Random is the seeded source the generator draws from.
type Random interface {
	// Int returns a uniform integer in [min, max].
	Int(min, max int) int

	// Float returns a uniform float in [min, max).
	Float(min, max float64) float64

	// Shuffle permutes n elements using swap.
	Shuffle(n int, swap func(i, j int))
}

// Choice returns a uniformly chosen element of items. items must not be empty.
func Choice[T any](r Random, items []T) T {
	return items[r.Int(0, len(items)-1)]
}

// ShuffleSlice shuffles s in place.
func ShuffleSlice[T any](r Random, s []T) {
	r.Shuffle(len(s), func(i, j int) {
		s[i], s[j] = s[j], s[i]
	})
}

type seededRandom struct {
	rnd *rand.Rand
}

// NewRandom returns a Random whose sequence is fully determined by seed.
func NewRandom(seed uint64) Random {
	return &seededRandom{
		rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (s *seededRandom) Int(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.rnd.IntN(max-min+1)
}

func (s *seededRandom) Float(min, max float64) float64 {
	return min + s.rnd.Float64()*(max-min)
}

func (s *seededRandom) Shuffle(n int, swap func(i, j int)) {
	s.rnd.Shuffle(n, swap)
}
