package scene

import (
	"math"

	"github.com/kestrel-render/raycore/pkg/kdtree"
	"github.com/kestrel-render/raycore/pkg/vecmath"
)

// Hit is a resolved ray-scene intersection: the hit triangle, its
// barycentric weights, and the shading data the path tracer needs.
type Hit struct {
	TriangleIndex      int
	T                  float64
	Alpha, Beta, Gamma float64 // barycentric weights for A, B, C
	Point              vecmath.Vec3
	// Normal is the flat face normal from the triangle's precomputed plane.
	Normal vecmath.Vec3
	// ShadingNormal and Tangent are interpolated from per-vertex attributes;
	// they equal Normal and a zero vector respectively when the scene
	// carries no vertex normals/tangents for this triangle.
	ShadingNormal vecmath.Vec3
	Tangent       vecmath.Vec3
	UV            vecmath.Vec2
	Material      *Material
}

func (s *Scene) interpolate(tri *Triangle, a, b, c float64) (normal, tangent vecmath.Vec3, uv vecmath.Vec2) {
	if len(s.Vertices.Normals) > 0 {
		na, nb, nc := s.Vertices.Normals[tri.A], s.Vertices.Normals[tri.B], s.Vertices.Normals[tri.C]
		normal = na.Scale(a).Add(nb.Scale(b)).Add(nc.Scale(c)).Normalize()
	}
	if len(s.Vertices.Tangents) > 0 {
		ta, tb, tc := s.Vertices.Tangents[tri.A], s.Vertices.Tangents[tri.B], s.Vertices.Tangents[tri.C]
		tangent = ta.Scale(a).Add(tb.Scale(b)).Add(tc.Scale(c))
	}
	if len(s.Vertices.UVs) > 0 {
		ua, ub, uc := s.Vertices.UVs[tri.A], s.Vertices.UVs[tri.B], s.Vertices.UVs[tri.C]
		uv = ua.Scale(a).Add(ub.Scale(b)).Add(uc.Scale(c))
	}
	return normal, tangent, uv
}

// Intersect implements kdtree.Intersector by delegating to the indexed
// triangle's Badouel test. It discards the barycentric weights the
// kd-tree doesn't need; IntersectClosest recomputes them once, on the
// single triangle that actually won the traversal.
func (s *Scene) Intersect(i int, origin, direction vecmath.Vec3, tMin, tMax float64) (float64, bool) {
	t, _, _, _, ok := s.Triangles[i].Intersect(s.Vertices.Positions, origin, direction, tMin, tMax)
	return t, ok
}

// ThinGlass implements kdtree.Intersector.
func (s *Scene) ThinGlass(i int) bool {
	return s.Materials[s.Triangles[i].MaterialID].ThinGlass
}

// skipIntersector wraps a Scene's Intersector so that one triangle index is
// reported as always missed, letting IntersectIgnoring reuse the shared
// kd-tree traversal instead of duplicating it.
type skipIntersector struct {
	*Scene
	skip int
}

func (w skipIntersector) Intersect(i int, origin, direction vecmath.Vec3, tMin, tMax float64) (float64, bool) {
	if i == w.skip {
		return 0, false
	}
	return w.Scene.Intersect(i, origin, direction, tMin, tMax)
}

func (s *Scene) resolveHit(h kdtree.Hit, origin, direction vecmath.Vec3) Hit {
	tri := &s.Triangles[h.Index]
	_, a, b, c, _ := tri.Intersect(s.Vertices.Positions, origin, direction, h.T-s.epsilon, h.T+s.epsilon)
	if a == 0 && b == 0 && c == 0 {
		// Degenerate epsilon window (can happen at t==0); fall back to a
		// wide-open re-test purely for the barycentric weights.
		_, a, b, c, _ = tri.Intersect(s.Vertices.Positions, origin, direction, 0, math.Inf(1))
	}
	point := origin.Add(direction.Scale(h.T))
	shadingNormal, tangent, uv := s.interpolate(tri, a, b, c)
	if shadingNormal.IsZero() || shadingNormal.HasNaN() {
		shadingNormal = tri.Plane.Normal
	}
	return Hit{
		TriangleIndex: h.Index,
		T:             h.T,
		Alpha:         a, Beta: b, Gamma: c,
		Point:         point,
		Normal:        tri.Plane.Normal,
		ShadingNormal: shadingNormal,
		Tangent:       tangent,
		UV:            uv,
		Material:      &s.Materials[tri.MaterialID],
	}
}

// IntersectClosest returns the closest triangle hit along the ray within
// [tMin,tMax], if any.
func (s *Scene) IntersectClosest(origin, direction vecmath.Vec3, tMin, tMax float64) (Hit, bool) {
	h, ok := s.tree.Intersect(s, origin, direction, tMin, tMax, s.epsilon)
	if !ok {
		return Hit{}, false
	}
	return s.resolveHit(h, origin, direction), true
}

// IntersectIgnoring behaves like IntersectClosest but never reports a hit
// against the given triangle index, used to continue a path off the
// surface it just left without re-hitting itself due to epsilon error.
func (s *Scene) IntersectIgnoring(origin, direction vecmath.Vec3, tMin, tMax float64, ignore int) (Hit, bool) {
	h, ok := s.tree.Intersect(skipIntersector{s, ignore}, origin, direction, tMin, tMax, s.epsilon)
	if !ok {
		return Hit{}, false
	}
	return s.resolveHit(h, origin, direction), true
}

// IntersectAny reports whether anything lies along the ray within
// [tMin,tMax], without resolving which triangle or where. Used for shadow
// tests where only occlusion, not identity, matters.
func (s *Scene) IntersectAny(origin, direction vecmath.Vec3, tMin, tMax float64) bool {
	return s.tree.IntersectAny(s, origin, direction, tMin, tMax)
}

// IntersectThinGlass behaves like IntersectClosest, but additionally
// collects every thin-glass triangle crossing along the way (deduplicated
// within the scene epsilon), for the path tracer's thin-glass absorption
// filter. ignore, if >= 0, is a triangle index never reported as a hit or
// a crossing (the surface the ray just left).
func (s *Scene) IntersectThinGlass(origin, direction vecmath.Vec3, tMin, tMax float64, ignore int) (Hit, bool, []kdtree.Hit) {
	var crossings []kdtree.Hit
	var isect kdtree.Intersector = s
	if ignore >= 0 {
		isect = skipIntersector{s, ignore}
	}
	h, ok := s.tree.IntersectThinGlass(isect, origin, direction, tMin, tMax, s.epsilon, &crossings)
	if !ok {
		return Hit{}, false, crossings
	}
	return s.resolveHit(h, origin, direction), true, crossings
}

// Visibility reports whether two points can see each other, testing a
// segment ray pulled in by 10*epsilon at each end to avoid self-shadowing
// at the endpoints.
func (s *Scene) Visibility(a, b vecmath.Vec3) bool {
	delta := b.Sub(a)
	length := delta.Length()
	if length <= 20*s.epsilon {
		return true
	}
	dir := delta.Scale(1 / length)
	near := 10 * s.epsilon
	far := length - 10*s.epsilon
	return !s.IntersectAny(a, dir, near, far)
}

// VisibilityThinGlass behaves like Visibility, but lets the segment pass
// through thin-glass triangles (returning them as crossings) instead of
// treating them as occluders.
func (s *Scene) VisibilityThinGlass(a, b vecmath.Vec3) (bool, []kdtree.Hit) {
	delta := b.Sub(a)
	length := delta.Length()
	if length <= 20*s.epsilon {
		return true, nil
	}
	dir := delta.Scale(1 / length)
	near := 10 * s.epsilon
	far := length - 10*s.epsilon
	var crossings []kdtree.Hit
	_, hit := s.tree.IntersectThinGlass(s, a, dir, near, far, s.epsilon, &crossings)
	return !hit, crossings
}

// GetRandomLight selects a light proportional to its radiant power and, for
// an areal light, a point on its emitting triangle. sample, u and v are
// independent uniforms in [0,1); sample drives light selection (and, for
// areal lights, the prefix-sum triangle scan after rescaling), u and v
// drive the barycentric point pick on the chosen triangle.
func (s *Scene) GetRandomLight(sample, u, v float64) (Light, bool) {
	total := s.totalPointPower + s.totalArealPower
	if total <= 0 {
		return Light{}, false
	}
	x := sample * total

	for _, l := range s.PointLights {
		p := l.Intensity * 4 * math.Pi
		if x <= p {
			return l, true
		}
		x -= p
	}

	for _, g := range s.arealGroups {
		if x <= g.power {
			return s.sampleArealGroup(g, x/g.power, u, v), true
		}
		x -= g.power
	}

	// Numerical fallback: rounding error pushed x past every light's power.
	if len(s.arealGroups) > 0 {
		g := s.arealGroups[len(s.arealGroups)-1]
		return s.sampleArealGroup(g, 0, u, v), true
	}
	return s.PointLights[len(s.PointLights)-1], true
}

func (s *Scene) sampleArealGroup(g arealLightGroup, areaFrac, u, v float64) Light {
	target := areaFrac * g.totalArea
	chosen := g.triangles[len(g.triangles)-1]
	acc := 0.0
	for _, at := range g.triangles {
		acc += at.area
		if target <= acc {
			chosen = at
			break
		}
	}

	tri := &s.Triangles[chosen.index]
	va := s.Vertices.Positions[tri.A]
	vb := s.Vertices.Positions[tri.B]
	vc := s.Vertices.Positions[tri.C]

	su := math.Sqrt(u)
	a := 1 - su
	b := su * (1 - v)
	c := su * v
	point := va.Scale(a).Add(vb.Scale(b)).Add(vc.Scale(c))

	return Light{
		Kind:      HemisphereOnAreal,
		Position:  point,
		Normal:    tri.Plane.Normal,
		Color:     g.emission,
		Intensity: 1,
	}
}
