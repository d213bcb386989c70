// Package ltc implements Linearly Transformed Cosine glossy lobes: a
// size×size table of 3×3 matrices and amplitude scalars indexed by
// (incidence angle, roughness), bilinearly interpolated, used to importance
// sample and evaluate a glossy BxDF as an affine remap of a cosine lobe.
//
// The true fitted coefficients (from Heitz et al., "Real-Time Polygonal
// Light Shading with Linearly Transformed Cosines") are precomputed by an
// offline numerical fit against the measured BRDF; that fit data is not
// vendored here (see the project design notes), so Generate derives
// an analytic approximation with the same invertible-3x3-plus-amplitude
// shape. It is visually plausible but not a faithful reproduction of the
// original fit.
package ltc

import (
	"math"

	"github.com/kestrel-render/raycore/pkg/vecmath"
)

// Family selects which microfacet distribution a table approximates.
type Family int

const (
	Beckmann Family = iota
	GGX
)

// Table is a size×size grid of (M, amplitude) pairs over
// (theta/(pi/2), sqrt(alpha)) in [0,1]^2.
type Table struct {
	size int
	m    []vecmath.Mat3
	amp  []float64
}

// Generate builds an analytic approximation of the LTC fit for the given
// microfacet family. size controls the resolution of the (theta, alpha)
// grid; 32 or 64 are typical.
func Generate(family Family, size int) *Table {
	t := &Table{size: size, m: make([]vecmath.Mat3, size*size), amp: make([]float64, size*size)}
	for ti := 0; ti < size; ti++ {
		theta := (float64(ti) / float64(size-1)) * (math.Pi / 2)
		for ai := 0; ai < size; ai++ {
			a := float64(ai) / float64(size-1)
			alpha := a * a
			t.m[ai+ti*size], t.amp[ai+ti*size] = fit(family, theta, alpha)
		}
	}
	return t
}

// fit computes an approximate LTC matrix and amplitude for a given
// incidence angle and roughness, isotropic in the tangent plane. The
// matrix stretches a cosine lobe along the view-incidence axis by an
// amount that grows with roughness and grazing angle, which is the
// qualitative behavior the real fit captures; amplitude softly falls off
// at grazing angles to approximate energy loss from multiple scattering.
func fit(family Family, theta, alpha float64) (vecmath.Mat3, float64) {
	alpha = math.Max(alpha, 1e-3)
	cosTheta := math.Cos(theta)

	// Stretch magnitude along X (the incidence-plane axis); GGX has a
	// heavier grazing-angle tail than Beckmann.
	grazing := 1 - cosTheta
	var stretch float64
	switch family {
	case GGX:
		stretch = alpha * (1 + 1.5*grazing*grazing)
	default: // Beckmann
		stretch = alpha * (1 + 0.8*grazing*grazing)
	}
	stretch = math.Max(stretch, 1e-3)

	// Off-diagonal term tilts the lobe toward the incidence direction at
	// grazing angles, mimicking the fitted matrix's b13 term.
	skew := grazing * math.Sqrt(alpha)

	m := vecmath.Mat3{
		C0: vecmath.Vec3{X: stretch, Y: 0, Z: 0},
		C1: vecmath.Vec3{X: 0, Y: stretch, Z: 0},
		C2: vecmath.Vec3{X: skew, Y: 0, Z: 1},
	}

	amplitude := 1 / (1 + 0.5*alpha*grazing)
	return m, amplitude
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// lookup returns the bilinearly interpolated (M, amplitude) at the given
// theta (radians) and alpha (roughness, not sqrt-remapped).
func (t *Table) lookup(theta, alpha float64) (vecmath.Mat3, float64) {
	tt := clamp01(theta / (0.5 * math.Pi))
	a := clamp01(math.Sqrt(clamp01(alpha)))
	if tt >= 1 {
		tt = 0.999
	}
	if a >= 1 {
		a = 0.999
	}

	// Generate places grid point i at i/(size-1), so that is the spacing.
	n := float64(t.size - 1)
	t1 := int(tt * n)
	a1 := int(a * n)
	t2 := min(t1+1, t.size-1)
	a2 := min(a1+1, t.size-1)

	dt1 := tt*n - float64(t1)
	dt2 := 1 - dt1
	da1 := a*n - float64(a1)
	da2 := 1 - da1

	get := func(ti, ai int) (vecmath.Mat3, float64) {
		idx := ai + ti*t.size
		return t.m[idx], t.amp[idx]
	}

	m11, amp11 := get(t1, a1)
	m12, amp12 := get(t1, a2)
	m21, amp21 := get(t2, a1)
	m22, amp22 := get(t2, a2)

	resM := m11.Scale(dt2 * da2).Add(m12.Scale(dt2 * da1)).Add(m21.Scale(dt1 * da2)).Add(m22.Scale(dt1 * da1))
	resAmp := amp11*dt2*da2 + amp12*dt2*da1 + amp21*dt1*da2 + amp22*dt1*da1
	return resM, resAmp
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// frame builds the rotation basis (Vi's in-plane projection, tangent,
// normal) that GetPDF/GetRandom both operate in.
func frame(n, vi vecmath.Vec3) (tangent, viCast vecmath.Vec3) {
	tangent = n.Cross(vi)
	viCast = tangent.Cross(n)
	return
}

// GetPDF returns the LTC density of outgoing direction vr, given the
// shading normal n, incident direction vi, and roughness alpha.
func GetPDF(table *Table, n, vr, vi vecmath.Vec3, alpha float64) float64 {
	tangent, viCast := frame(n, vi)
	rotate := vecmath.NewMat3FromColumns(viCast, tangent, n)
	unrotate := rotate.Inverse()

	vr3 := unrotate.MulVec3(vr)

	theta := angleBetween(vi, n)
	m, amplitude := table.lookup(theta, alpha)
	invM := m.Inverse()
	p := invM.MulVec3(vr3).Normalize()

	lVec := m.MulVec3(p)
	l := lVec.Length()
	if l < 1e-12 {
		return 0
	}
	detM := m.Determinant()
	jacobian := detM / (l * l * l)
	if jacobian <= 0 {
		return 0
	}
	d := math.Max(0, p.Z) / math.Pi
	return amplitude * d / jacobian
}

// GetRandom maps a cosine-hemisphere sample randHSCos into a world-frame
// direction distributed per the LTC lobe for roughness alpha.
func GetRandom(table *Table, n, vi vecmath.Vec3, alpha float64, randHSCos vecmath.Vec3) vecmath.Vec3 {
	tangent, viCast := frame(n, vi)
	rotate := vecmath.NewMat3FromColumns(viCast, tangent, n)

	theta := math.Max(angleBetween(vi, n), math.Pi/4)
	m, _ := table.lookup(theta, alpha)

	s := m.MulVec3(randHSCos)
	s = rotate.MulVec3(s)
	return s.Normalize()
}

func angleBetween(a, b vecmath.Vec3) float64 {
	d := clampFloat(a.Normalize().Dot(b.Normalize()), -1, 1)
	return math.Acos(d)
}

func clampFloat(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
