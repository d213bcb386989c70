package vecmath

import "math"

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max Vec3
}

// EmptyAABB returns an AABB with inverted bounds, the correct identity
// element for repeated Union calls when accumulating a box from scratch.
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{Min: Vec3{X: inf, Y: inf, Z: inf}, Max: Vec3{X: -inf, Y: -inf, Z: -inf}}
}

// NewAABBFromPoints returns the smallest AABB containing all given points.
func NewAABBFromPoints(points ...Vec3) AABB {
	box := EmptyAABB()
	for _, p := range points {
		box = box.ExpandPoint(p)
	}
	return box
}

// ExpandPoint returns an AABB grown, if necessary, to contain p.
func (b AABB) ExpandPoint(p Vec3) AABB {
	return AABB{
		Min: Vec3{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y), Z: math.Min(b.Min.Z, p.Z)},
		Max: Vec3{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y), Z: math.Max(b.Max.Z, p.Z)},
	}
}

// Union returns an AABB bounding both b and other.
func (b AABB) Union(other AABB) AABB {
	return AABB{
		Min: Vec3{X: math.Min(b.Min.X, other.Min.X), Y: math.Min(b.Min.Y, other.Min.Y), Z: math.Min(b.Min.Z, other.Min.Z)},
		Max: Vec3{X: math.Max(b.Max.X, other.Max.X), Y: math.Max(b.Max.Y, other.Max.Y), Z: math.Max(b.Max.Z, other.Max.Z)},
	}
}

// Center returns the midpoint of the box.
func (b AABB) Center() Vec3 { return b.Min.Add(b.Max).Scale(0.5) }

// Size returns the extent of the box along each axis.
func (b AABB) Size() Vec3 { return b.Max.Sub(b.Min) }

// SurfaceArea returns the total surface area of the box, used by the SAH
// cost model. A degenerate (zero-volume) box still has a well-defined,
// possibly zero, area.
func (b AABB) SurfaceArea() float64 {
	s := b.Size()
	return 2 * (s.X*s.Y + s.Y*s.Z + s.Z*s.X)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the greatest extent.
func (b AABB) LongestAxis() int {
	s := b.Size()
	if s.X > s.Y && s.X > s.Z {
		return 0
	}
	if s.Y > s.Z {
		return 1
	}
	return 2
}

// AxisBounds returns (min,max) of the box along the given axis.
func (b AABB) AxisBounds(axis int) (float64, float64) {
	switch axis {
	case 0:
		return b.Min.X, b.Max.X
	case 1:
		return b.Min.Y, b.Max.Y
	default:
		return b.Min.Z, b.Max.Z
	}
}

// Diagonal returns the Euclidean length of the box's diagonal, used to
// derive the scene's adaptive intersection epsilon.
func (b AABB) Diagonal() float64 { return b.Size().Length() }

// IntersectSlab performs the slab test against ray (origin,direction)
// restricted to [tMin,tMax], returning the intersected (t0,t1) range and
// whether it is non-empty.
func (b AABB) IntersectSlab(origin, direction Vec3, tMin, tMax float64) (float64, float64, bool) {
	for axis := 0; axis < 3; axis++ {
		lo, hi := b.AxisBounds(axis)
		o := origin.Component(axis)
		d := direction.Component(axis)
		if math.Abs(d) < 1e-12 {
			if o < lo || o > hi {
				return 0, 0, false
			}
			continue
		}
		invD := 1 / d
		t1 := (lo - o) * invD
		t2 := (hi - o) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tMin {
			tMin = t1
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return 0, 0, false
		}
	}
	return tMin, tMax, true
}
