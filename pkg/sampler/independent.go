package sampler

import "math/rand"

// independentSampler draws pseudo-random, uncorrelated samples. Advance is a
// no-op: independent sampling has no notion of a stratified set to exhaust.
type independentSampler struct {
	rng *rand.Rand
}

func newIndependent(seed uint64) *independentSampler {
	return &independentSampler{rng: rand.New(rand.NewSource(int64(seed)))}
}

func (s *independentSampler) Advance() {}

func (s *independentSampler) Get1D() float64 {
	return s.rng.Float64()
}

func (s *independentSampler) Get2D() (float64, float64) {
	return s.rng.Float64(), s.rng.Float64()
}
