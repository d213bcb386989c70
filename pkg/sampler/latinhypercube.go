package sampler

import "math/rand"

// latinHypercubeSampler stratifies each dimension independently into
// SetSize bins, then shuffles each dimension's bin order with its own
// permutation. Every 1D projection of the resulting sample set is therefore
// perfectly stratified, at the cost of the joint (x,y) pairs no longer
// falling on the diagonal of the stratification grid the way a plain
// stratifiedSampler's do.
type latinHypercubeSampler struct {
	rng        *rand.Rand
	dimCount   int
	setSize    int
	samples    [][]float64 // [dimension][sample], independently permuted
	currentDim int
	currentSet int
}

func newLatinHypercube(seed uint64, dimCount, setSize int) *latinHypercubeSampler {
	if setSize < 1 {
		setSize = 1
	}
	s := &latinHypercubeSampler{
		rng:        rand.New(rand.NewSource(int64(seed))),
		dimCount:   dimCount,
		setSize:    setSize,
		currentSet: -1,
	}
	s.prepareSamples()
	return s
}

func (s *latinHypercubeSampler) prepareSamples() {
	s.samples = make([][]float64, s.dimCount)
	n := float64(s.setSize)
	for d := 0; d < s.dimCount; d++ {
		col := make([]float64, s.setSize)
		for i := 0; i < s.setSize; i++ {
			begin := float64(i) / n
			col[i] = begin + s.rng.Float64()*(1/n)
		}
		s.rng.Shuffle(s.setSize, func(i, j int) { col[i], col[j] = col[j], col[i] })
		s.samples[d] = col
	}
}

func (s *latinHypercubeSampler) Advance() {
	s.currentDim = 0
	s.currentSet++
	if s.currentSet >= s.setSize {
		s.prepareSamples()
		s.currentSet = 0
	}
}

func (s *latinHypercubeSampler) next() float64 {
	if s.currentDim < s.dimCount {
		v := s.samples[s.currentDim][s.currentSet]
		s.currentDim++
		return v
	}
	return s.rng.Float64()
}

func (s *latinHypercubeSampler) Get1D() float64 {
	return s.next()
}

func (s *latinHypercubeSampler) Get2D() (float64, float64) {
	return s.next(), s.next()
}
