package scene

import (
	"math"

	"github.com/kestrel-render/raycore/pkg/vecmath"
)

// Plane is a triangle's precomputed supporting plane: unit normal plus
// signed distance, satisfying dot(Normal, p) + D == 0 for p on the plane.
type Plane struct {
	Normal vecmath.Vec3
	D      float64
}

// Triangle references three vertices and a material by arena index. It
// never holds pointers into the scene's arrays, so the scene can be moved,
// copied by value, or shared across goroutines without pointer-chasing.
type Triangle struct {
	A, B, C    int
	MaterialID int
	Plane      Plane
}

// CalculatePlane recomputes Plane from the scene's current vertex
// positions. Called once per triangle at Commit.
func (t *Triangle) CalculatePlane(positions []vecmath.Vec3) {
	v0, v1, v2 := positions[t.A], positions[t.B], positions[t.C]
	d0 := v1.Sub(v0)
	d1 := v2.Sub(v0)
	n := d1.Cross(d0).Normalize()
	t.Plane = Plane{Normal: n, D: -n.Dot(v0)}
}

// Bounds returns the triangle's AABB in the given vertex position array.
func (t *Triangle) Bounds(positions []vecmath.Vec3) vecmath.AABB {
	return vecmath.NewAABBFromPoints(positions[t.A], positions[t.B], positions[t.C])
}

const triangleEpsilon = 1e-5

// Intersect performs the classic plane-then-2D-barycentric (Badouel) test.
// It returns the hit distance t and barycentric coordinates (a,b,c) with
// a+b+c==1, where a weights vertex A's attributes.
func (t *Triangle) Intersect(positions []vecmath.Vec3, origin, direction vecmath.Vec3, tMin, tMax float64) (hitT, a, b, c float64, ok bool) {
	n := t.Plane.Normal
	denom := direction.Dot(n)
	if denom > -triangleEpsilon && denom < triangleEpsilon {
		return 0, 0, 0, 0, false
	}

	ht := -(t.Plane.D + origin.Dot(n)) / denom
	if ht <= 0 || ht < tMin || ht > tMax {
		return 0, 0, 0, 0, false
	}

	// Project onto the plane of the largest |normal| component to avoid
	// degenerate 2D barycentrics.
	i1, i2 := 0, 1
	absN := vecmath.New(math.Abs(n.X), math.Abs(n.Y), math.Abs(n.Z))
	if absN.X > absN.Y && absN.X > absN.Z {
		i1, i2 = 1, 2
	} else if absN.Y > absN.Z {
		i1, i2 = 0, 2
	}

	v0, v1, v2 := positions[t.A], positions[t.B], positions[t.C]
	hit := origin.Add(direction.Scale(ht))

	pt := func(v vecmath.Vec3) (float64, float64) { return v.Component(i1), v.Component(i2) }
	px, py := pt(hit)
	v0x, v0y := pt(v0)
	v1x, v1y := pt(v1)
	v2x, v2y := pt(v2)

	q0x, q0y := px-v0x, py-v0y
	q1x, q1y := v1x-v0x, v1y-v0y
	q2x, q2y := v2x-v0x, v2y-v0y

	var alpha, beta float64
	if q1x > -triangleEpsilon && q1x < triangleEpsilon {
		if q2x == 0 {
			return 0, 0, 0, 0, false
		}
		beta = q0x / q2x
		if beta < 0 || beta > 1 {
			return 0, 0, 0, 0, false
		}
		if q1y == 0 {
			return 0, 0, 0, 0, false
		}
		alpha = (q0y - beta*q2y) / q1y
	} else {
		denom2 := q2y*q1x - q2x*q1y
		if denom2 == 0 {
			return 0, 0, 0, 0, false
		}
		beta = (q0y*q1x - q0x*q1y) / denom2
		if beta < 0 || beta > 1 {
			return 0, 0, 0, 0, false
		}
		alpha = (q0x - beta*q2x) / q1x
	}

	if alpha < 0 || alpha+beta > 1 {
		return 0, 0, 0, 0, false
	}

	return ht, 1 - alpha - beta, alpha, beta, true
}
