// Package radiance implements linear RGB radiance/spectrum values and their
// sRGB-gamma display-color counterpart, plus the small set of combinators
// the rest of the renderer needs (add, scale, clamp, gamma-correct).
package radiance

import (
	"math"

	"github.com/kestrel-render/raycore/pkg/vecmath"
)

// Spectrum is a linear-RGB radiance or reflectance value. The renderer is
// RGB-only; there is no spectral upsampling (see spec Non-goals).
type Spectrum struct {
	R, G, B float64
}

// Black is the zero spectrum.
var Black = Spectrum{}

// White is the unit spectrum.
var White = Spectrum{1, 1, 1}

// New returns a new Spectrum.
func New(r, g, b float64) Spectrum { return Spectrum{r, g, b} }

// FromVec3 reinterprets a Vec3 as a Spectrum.
func FromVec3(v vecmath.Vec3) Spectrum { return Spectrum{v.X, v.Y, v.Z} }

// Vec3 reinterprets the Spectrum as a Vec3 for geometric operations.
func (s Spectrum) Vec3() vecmath.Vec3 { return vecmath.Vec3{X: s.R, Y: s.G, Z: s.B} }

// Add returns the sum of two spectra.
func (s Spectrum) Add(o Spectrum) Spectrum { return Spectrum{s.R + o.R, s.G + o.G, s.B + o.B} }

// Mul returns the component-wise product of two spectra (e.g. filtering
// incident light by a surface's reflectance).
func (s Spectrum) Mul(o Spectrum) Spectrum { return Spectrum{s.R * o.R, s.G * o.G, s.B * o.B} }

// Scale returns the spectrum scaled by a scalar.
func (s Spectrum) Scale(k float64) Spectrum { return Spectrum{s.R * k, s.G * k, s.B * k} }

// IsZero reports whether every channel is exactly zero.
func (s Spectrum) IsZero() bool { return s.R == 0 && s.G == 0 && s.B == 0 }

// Sum returns R+G+B, used by the original renderer to approximate a
// material's "power" when comparing diffuse vs. specular strength.
func (s Spectrum) Sum() float64 { return s.R + s.G + s.B }

// Max returns the largest of the three channels.
func (s Spectrum) Max() float64 { return math.Max(s.R, math.Max(s.G, s.B)) }

// Luminance returns the Rec.709 perceptual luminance of the spectrum.
func (s Spectrum) Luminance() float64 { return 0.2126*s.R + 0.7152*s.G + 0.0722*s.B }

// Clamp clamps every channel to [0, max]. A non-positive max disables
// clamping on that call (treated as +Inf), matching the "clamp=∞" scenario
// in the spec's end-to-end tests.
func (s Spectrum) Clamp(max float64) Spectrum {
	if max <= 0 {
		max = math.Inf(1)
	}
	clamp1 := func(x float64) float64 {
		if x < 0 {
			return 0
		}
		if x > max {
			return max
		}
		return x
	}
	return Spectrum{clamp1(s.R), clamp1(s.G), clamp1(s.B)}
}

// SanitizeNonNegative replaces any NaN or negative channel with zero. This is
// the final safety net applied to a path's accumulated radiance before it
// reaches the image accumulator.
func (s Spectrum) SanitizeNonNegative() Spectrum {
	fix := func(x float64) float64 {
		if math.IsNaN(x) || x < 0 {
			return 0
		}
		return x
	}
	return Spectrum{fix(s.R), fix(s.G), fix(s.B)}
}

// Color is a display-referred sRGB-gamma color in [0,1] per channel.
type Color struct {
	R, G, B float64
}

// ToColor gamma-encodes linear radiance into a displayable sRGB color using
// a simple power-law approximation (gamma 2.2), matching the teacher's
// Vec3.GammaCorrect combinator.
func (s Spectrum) ToColor() Color {
	const invGamma = 1.0 / 2.2
	enc := func(x float64) float64 {
		if x < 0 {
			x = 0
		}
		return math.Pow(x, invGamma)
	}
	return Color{enc(s.R), enc(s.G), enc(s.B)}
}

// ToSpectrum removes the gamma encoding, returning linear radiance.
func (c Color) ToSpectrum() Spectrum {
	const gamma = 2.2
	dec := func(x float64) float64 { return math.Pow(x, gamma) }
	return Spectrum{dec(c.R), dec(c.G), dec(c.B)}
}
