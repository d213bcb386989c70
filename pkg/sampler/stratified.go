package sampler

import "math/rand"

// stratifiedSampler produces, per dimension-slot, one jittered sample per
// stratum of a SetSize-way partition of [0,1). Strata are consumed in order
// (stratum i of every dimension belongs to the same sample index i), so a
// Get2D call lands on the joint (i,i) cell of the stratification grid rather
// than an arbitrary pairing; see latinHypercubeSampler for the decorrelated
// variant.
type stratifiedSampler struct {
	rng        *rand.Rand
	dimCount   int
	setSize    int
	samples    [][]float64 // [dimension][sample]
	currentDim int
	currentSet int
}

func newStratified(seed uint64, dimCount, setSize int) *stratifiedSampler {
	if setSize < 1 {
		setSize = 1
	}
	s := &stratifiedSampler{
		rng:        rand.New(rand.NewSource(int64(seed))),
		dimCount:   dimCount,
		setSize:    setSize,
		currentSet: -1,
	}
	s.prepareSamples()
	return s
}

func (s *stratifiedSampler) prepareSamples() {
	s.samples = make([][]float64, s.dimCount)
	n := float64(s.setSize)
	for d := 0; d < s.dimCount; d++ {
		col := make([]float64, s.setSize)
		for i := 0; i < s.setSize; i++ {
			begin := float64(i) / n
			col[i] = begin + s.rng.Float64()*(1/n)
		}
		s.samples[d] = col
	}
}

func (s *stratifiedSampler) Advance() {
	s.currentDim = 0
	s.currentSet++
	if s.currentSet >= s.setSize {
		s.prepareSamples()
		s.currentSet = 0
	}
}

func (s *stratifiedSampler) next() float64 {
	if s.currentDim < s.dimCount {
		v := s.samples[s.currentDim][s.currentSet]
		s.currentDim++
		return v
	}
	return s.rng.Float64()
}

func (s *stratifiedSampler) Get1D() float64 {
	return s.next()
}

func (s *stratifiedSampler) Get2D() (float64, float64) {
	return s.next(), s.next()
}
