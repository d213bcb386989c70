package bxdf

import (
	"math"

	"github.com/kestrel-render/raycore/pkg/vecmath"
)

// Fresnel returns the unpolarized Fresnel reflectance for an incident
// direction i and surface normal n, given a relative index of refraction
// ior (transmitted/incident). Total internal reflection returns 1.
func Fresnel(i, n vecmath.Vec3, ior float64) float64 {
	cosi := i.Dot(n)
	etai, etat := 1.0, ior
	if cosi > 0 {
		etai, etat = etat, etai
	}
	sint := etai / etat * math.Sqrt(math.Max(0, 1-cosi*cosi))
	if sint >= 1 {
		return 1
	}
	cost := math.Sqrt(math.Max(0, 1-sint*sint))
	cosi = math.Abs(cosi)
	rs := ((etat * cosi) - (etai * cost)) / ((etat * cosi) + (etai * cost))
	rp := ((etai * cosi) - (etat * cost)) / ((etai * cosi) + (etat * cost))
	return (rs*rs + rp*rp) / 2
}

// Refract bends incident direction `in` (pointing away from the surface,
// i.e. toward the previous vertex) across normal n with relative index of
// refraction ior. The second return is false on total internal reflection.
func Refract(in, n vecmath.Vec3, ior float64) (vecmath.Vec3, bool) {
	cosEta1 := in.Dot(n)
	if cosEta1 > 0.999 {
		return in.Negate(), true
	}
	tangent := n.Cross(in).Normalize()
	sinEta1 := math.Sqrt(math.Max(0, 1-cosEta1*cosEta1))
	sinEta2 := sinEta1 * ior
	if sinEta2 >= 1 {
		return vecmath.Vec3{}, false
	}
	eta2 := math.Asin(sinEta2)
	return rotateAroundAxis(n.Negate(), tangent, eta2), true
}

// rotateAroundAxis rotates v by angle radians about unit axis, using
// Rodrigues' formula.
func rotateAroundAxis(v, axis vecmath.Vec3, angle float64) vecmath.Vec3 {
	cosA, sinA := math.Cos(angle), math.Sin(angle)
	return v.Scale(cosA).Add(axis.Cross(v).Scale(sinA)).Add(axis.Scale(axis.Dot(v) * (1 - cosA)))
}
