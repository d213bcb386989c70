// Package sampler provides deterministic, per-pixel low-discrepancy sample
// streams for the path tracer, plus the distribution-transform helpers
// (cosine hemisphere, uniform sphere, disc, DecideAndRescale) built on top
// of them.
//
// A Sampler is single-threaded and owned by exactly one pixel's render loop;
// it is never shared across goroutines. Reproducibility comes from seeding
// each pixel's sampler deterministically from (image seed, x, y,
// multisample index) rather than from a single global RNG.
package sampler

// Sampler produces a stream of stratified [0,1) and [0,1)^2 samples, one
// "dimension slot" per call. Advance begins a new sample within the pixel's
// multisample set, cycling through a fixed SetSize and starting a fresh
// stratified set once exhausted.
type Sampler interface {
	Advance()
	Get1D() float64
	Get2D() (float64, float64)
}

// Config describes how a pixel's Sampler should be constructed.
type Config struct {
	Kind        Kind
	Seed        uint64
	Dimensions  int // number of stratified dimension-slots to precompute
	SetSize     int // samples per stratified set (== multisample count)
}

// Kind selects a Sampler implementation.
type Kind int

const (
	Independent Kind = iota
	Stratified
	LatinHypercube
)

// New constructs a Sampler per cfg. Dimensions beyond cfg.Dimensions (or any
// request made by an Independent sampler) fall back to independent draws
// from the same per-pixel RNG, so a caller can never stall waiting on a
// sample that doesn't exist.
func New(cfg Config) Sampler {
	switch cfg.Kind {
	case Stratified:
		return newStratified(cfg.Seed, cfg.Dimensions, cfg.SetSize)
	case LatinHypercube:
		return newLatinHypercube(cfg.Seed, cfg.Dimensions, cfg.SetSize)
	default:
		return newIndependent(cfg.Seed)
	}
}

// SeedFor derives a deterministic per-pixel, per-sample seed from the image
// seed and pixel coordinates, so re-rendering the same scene with the same
// configuration always reproduces the same image regardless of how work is
// scheduled across worker threads.
func SeedFor(imageSeed uint64, x, y, multisampleIndex int) uint64 {
	h := imageSeed
	h = mix(h, uint64(x)*0x9E3779B97F4A7C15+1)
	h = mix(h, uint64(y)*0xBF58476D1CE4E5B9+1)
	h = mix(h, uint64(multisampleIndex)*0x94D049BB133111EB+1)
	return h
}

// mix is a small SplitMix64-style finalizer, used only to decorrelate the
// seed components above; it is not a general-purpose hash.
func mix(h, k uint64) uint64 {
	h ^= k
	h *= 0xFF51AFD7ED558CCD
	h ^= h >> 33
	h *= 0xC4CEB9FE1A85EC53
	h ^= h >> 33
	return h
}
