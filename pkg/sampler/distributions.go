package sampler

import (
	"math"

	"github.com/kestrel-render/raycore/pkg/vecmath"
)

// Sample1DToRange maps a uniform [0,1) sample onto [lo,hi).
func Sample1DToRange(u, lo, hi float64) float64 {
	return lo + u*(hi-lo)
}

// Sample2DToDiscUniform maps a uniform [0,1)^2 sample onto the unit disc
// using Shirley's concentric mapping (avoids the polar method's density
// distortion near the origin).
func Sample2DToDiscUniform(u, v float64) vecmath.Vec2 {
	// Remap to [-1,1]^2.
	sx := 2*u - 1
	sy := 2*v - 1
	if sx == 0 && sy == 0 {
		return vecmath.Vec2{}
	}
	var r, theta float64
	if math.Abs(sx) > math.Abs(sy) {
		r = sx
		theta = (math.Pi / 4) * (sy / sx)
	} else {
		r = sy
		theta = (math.Pi / 2) - (math.Pi/4)*(sx/sy)
	}
	return vecmath.Vec2{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
}

// Sample2DToHemisphereUniformZ maps a uniform [0,1)^2 sample onto the unit
// hemisphere about +Z with constant solid-angle density (pdf = 1/(2*pi)).
func Sample2DToHemisphereUniformZ(u, v float64) vecmath.Vec3 {
	z := u
	r := math.Sqrt(math.Max(0, 1-z*z))
	phi := 2 * math.Pi * v
	return vecmath.Vec3{X: r * math.Cos(phi), Y: r * math.Sin(phi), Z: z}
}

// Sample2DToSphereUniform maps a uniform [0,1)^2 sample onto the unit sphere
// with constant solid-angle density (pdf = 1/(4*pi)).
func Sample2DToSphereUniform(u, v float64) vecmath.Vec3 {
	z := 1 - 2*u
	r := math.Sqrt(math.Max(0, 1-z*z))
	phi := 2 * math.Pi * v
	return vecmath.Vec3{X: r * math.Cos(phi), Y: r * math.Sin(phi), Z: z}
}

// Sample2DToHemisphereCosineZ maps a uniform [0,1)^2 sample onto the unit
// hemisphere about +Z with cosine-weighted density (pdf = z/pi), via
// Malley's method: a disc sample lifted onto the hemisphere.
func Sample2DToHemisphereCosineZ(u, v float64) vecmath.Vec3 {
	d := Sample2DToDiscUniform(u, v)
	z := math.Sqrt(math.Max(0, 1-d.X*d.X-d.Y*d.Y))
	return vecmath.Vec3{X: d.X, Y: d.Y, Z: z}
}

// CosineHemispherePDF returns the cosine-weighted hemisphere density for a
// direction whose Z component (in the hemisphere's local frame) is cosTheta.
func CosineHemispherePDF(cosTheta float64) float64 {
	return math.Max(0, cosTheta) / math.Pi
}

// DecideAndRescale implements the sample-reuse trick used throughout the
// path tracer to turn a single uniform sample into both a Bernoulli decision
// and a fresh uniform sample, rather than consuming two independent draws.
// It returns (true, sample/probability) with probability `probability`, and
// (false, (sample-probability)/(1-probability)) otherwise; the rescaled
// value is itself uniform on [0,1).
func DecideAndRescale(sample, probability float64) (bool, float64) {
	if probability <= 0 {
		return false, sample
	}
	if probability >= 1 {
		return true, sample
	}
	if sample < probability {
		return true, sample / probability
	}
	return false, (sample - probability) / (1 - probability)
}
