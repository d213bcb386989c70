package vecmath

// Ray is a parametric ray with an explicit valid parameter range [TMin, TMax].
// The kd-tree and scene intersection queries take their range as separate
// tMin/tMax arguments and do not read these fields.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	TMin      float64
	TMax      float64
}

const defaultTMax = 1e30

// NewRay returns a ray with the default [TMin, TMax] of [0, +inf).
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, TMin: 0, TMax: defaultTMax}
}

// NewRayRange returns a ray with an explicit valid parameter range.
func NewRayRange(origin, direction Vec3, tMin, tMax float64) Ray {
	return Ray{Origin: origin, Direction: direction, TMin: tMin, TMax: tMax}
}

// NewRayTo returns a unit-direction ray from origin toward target.
func NewRayTo(origin, target Vec3) Ray {
	return NewRay(origin, target.Sub(origin).Normalize())
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// WithRange returns a copy of r with a new valid parameter range.
func (r Ray) WithRange(tMin, tMax float64) Ray {
	r.TMin, r.TMax = tMin, tMax
	return r
}
