// Package bxdf implements the material reflectance models (BxDFs) the path
// tracer evaluates and importance-samples: diffuse, mirror, a probabilistic
// mixture of two BxDFs, and LTC-tabulated glossy lobes. A BxDF is modeled
// as a tagged variant rather than an interface hierarchy: Mix holds
// pointers to its two children, and every call dispatches on the tag with
// a switch rather than through an interface.
package bxdf

import (
	"math"

	"github.com/kestrel-render/raycore/pkg/ltc"
	"github.com/kestrel-render/raycore/pkg/radiance"
	"github.com/kestrel-render/raycore/pkg/sampler"
	"github.com/kestrel-render/raycore/pkg/vecmath"
)

// Kind tags which BxDF variant a value holds.
type Kind int

const (
	Diffuse Kind = iota
	Mirror
	Mix
	LTC
)

// BxDF is a tagged-variant reflectance model. All directions passed to
// Value/Sample are in the local shading frame (+Z = shading normal); the
// caller is responsible for rotating to/from world space.
type BxDF struct {
	kind Kind

	// Diffuse, Mirror: reflectance color.
	kd radiance.Spectrum

	// Mix.
	m1, m2 *BxDF
	alpha  float64

	// LTC.
	table     *ltc.Table
	roughness float64
	color     radiance.Spectrum
}

// NewDiffuse returns a Lambertian BxDF with reflectance kd.
func NewDiffuse(kd radiance.Spectrum) *BxDF { return &BxDF{kind: Diffuse, kd: kd} }

// NewMirror returns a perfect specular BxDF with reflectance kd.
func NewMirror(kd radiance.Spectrum) *BxDF { return &BxDF{kind: Mirror, kd: kd} }

// NewMix returns a BxDF that samples m1 with probability alpha and m2
// otherwise, evaluating as their convex combination.
func NewMix(m1, m2 *BxDF, alpha float64) *BxDF {
	return &BxDF{kind: Mix, m1: m1, m2: m2, alpha: alpha}
}

// NewLTC returns an LTC-tabulated glossy BxDF for the given fitted table,
// roughness in [0,1], and tint color.
func NewLTC(table *ltc.Table, roughness float64, color radiance.Spectrum) *BxDF {
	return &BxDF{kind: LTC, table: table, roughness: roughness, color: color}
}

// Value evaluates the reflectance for incident direction vi and outgoing
// (toward-viewer) direction vr, both in the local shading frame. It
// returns zero when either direction is below the hemisphere.
func (b *BxDF) Value(vi, vr vecmath.Vec3) radiance.Spectrum {
	if vi.Z <= 0 || vr.Z <= 0 {
		return radiance.Black
	}
	switch b.kind {
	case Diffuse:
		return b.kd.Scale(1 / math.Pi)
	case Mirror:
		// A delta distribution is never evaluated at arbitrary pairs.
		return radiance.Black
	case Mix:
		v1 := b.m1.Value(vi, vr)
		v2 := b.m2.Value(vi, vr)
		return v1.Scale(b.alpha).Add(v2.Scale(1 - b.alpha))
	case LTC:
		n := vecmath.New(0, 0, 1)
		pdf := ltc.GetPDF(b.table, n, vr, vi, b.roughness)
		return b.color.Scale(pdf)
	default:
		return radiance.Black
	}
}

// Sample importance-samples an outgoing direction given the incident
// direction vi (in local shading frame) and a 2D sample (u1,u2). It
// returns the sampled direction and the transport weight f*cosθ/pdf,
// canceling analytically for the strategy used. A returned transport of
// zero is a valid, weight-zero sample; the caller continues the path
// rather than resampling (see the LTC-below-hemisphere convention).
func (b *BxDF) Sample(vi vecmath.Vec3, u1, u2 float64) (vecmath.Vec3, radiance.Spectrum) {
	switch b.kind {
	case Diffuse:
		dir := sampler.Sample2DToHemisphereCosineZ(u1, u2)
		return dir, b.kd

	case Mirror:
		dir := vecmath.Vec3{X: -vi.X, Y: -vi.Y, Z: vi.Z}
		return dir, b.kd

	case Mix:
		chooseM1, u1r := sampler.DecideAndRescale(u1, b.alpha)
		if chooseM1 {
			dir, transport := b.m1.Sample(vi, u1r, u2)
			return dir, transport
		}
		dir, transport := b.m2.Sample(vi, u1r, u2)
		return dir, transport

	case LTC:
		n := vecmath.New(0, 0, 1)
		localCos := sampler.Sample2DToHemisphereCosineZ(u1, u2)
		dir := ltc.GetRandom(b.table, n, vi, b.roughness, localCos)
		if dir.Z <= 0 {
			return dir, radiance.Black
		}
		pdf := ltc.GetPDF(b.table, n, dir, vi, b.roughness)
		if pdf <= 0 {
			return dir, radiance.Black
		}
		// f(vi,dir)*cos(dir)/pdf(dir) where f==color*pdf by construction,
		// so this cancels to color*cos(dir).
		return dir, b.color.Scale(dir.Z)

	default:
		return vecmath.Vec3{Z: 1}, radiance.Black
	}
}
