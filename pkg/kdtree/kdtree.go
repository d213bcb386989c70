// Package kdtree builds and traverses a Surface-Area-Heuristic kd-tree over
// an arbitrary indexed set of bounded, intersectable primitives. It is
// deliberately generic over the PrimitiveSet interface so that it owns no
// knowledge of triangles, materials, or scenes; a caller (pkg/scene) adapts
// its triangle arena to this interface.
package kdtree

import "github.com/kestrel-render/raycore/pkg/vecmath"

// SAH cost constants, tuned for triangle-soup scenes.
const (
	IsectCost  = 80.0
	TravCost   = 2.0
	EmptyBonus = 0.5
)

// PrimitiveSet is the minimal view the kd-tree needs of the primitives it
// indexes. Index values are stable arena indices owned by the caller.
type PrimitiveSet interface {
	Len() int
	Bounds(i int) vecmath.AABB
}

// Hit is a single accepted intersection against a primitive.
type Hit struct {
	Index int
	T     float64
}

// Intersector is implemented by the caller to test a ray against one
// primitive. ok reports whether the primitive was hit within [tMin,tMax].
type Intersector interface {
	Intersect(i int, origin, direction vecmath.Vec3, tMin, tMax float64) (t float64, ok bool)
	// ThinGlass reports whether primitive i should never terminate a
	// thin-glass-accumulating traversal.
	ThinGlass(i int) bool
}
