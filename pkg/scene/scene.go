// Package scene owns the frozen, arena-indexed world the kd-tree and path
// tracer operate on: vertex arrays, triangles, materials, and lights.
// Nothing in this package holds a pointer into another entity; every
// cross-reference is an integer index into one of Scene's own arrays, so
// the scene can be built up in any order by an external ingester and then
// frozen by Commit into an immutable, concurrency-safe structure.
package scene

import (
	"math"
	"sort"

	"github.com/kestrel-render/raycore/pkg/kdtree"
	"github.com/kestrel-render/raycore/pkg/radiance"
	"github.com/kestrel-render/raycore/pkg/vecmath"
)

// VertexArrays holds parallel, equal-length attribute streams indexed by a
// single vertex index. Missing sources (e.g. no tangents in the source
// mesh) are zero-filled by the ingester before Commit.
type VertexArrays struct {
	Positions []vecmath.Vec3
	Normals   []vecmath.Vec3
	Tangents  []vecmath.Vec3
	UVs       []vecmath.Vec2
}

// Len returns the number of vertices, or -1 if the arrays disagree in
// length (a bug in the ingester).
func (v *VertexArrays) Len() int {
	n := len(v.Positions)
	if len(v.Normals) != n || len(v.Tangents) != n || len(v.UVs) != n {
		return -1
	}
	return n
}

// Scene owns all triangles, materials, and lights. Built incrementally by
// an external ingester, then frozen by Commit; read-only and safe for
// concurrent queries thereafter.
type Scene struct {
	Vertices  VertexArrays
	Triangles []Triangle
	Materials []Material

	PointLights []Light
	arealGroups []arealLightGroup

	totalPointPower float64
	totalArealPower float64

	tree    *kdtree.Tree
	epsilon float64

	// ThinGlassSubstrings configures Material.DeriveThinGlass at Commit.
	ThinGlassSubstrings []string

	anyThinGlass bool
}

// New returns an empty Scene ready for ingestion.
func New() *Scene {
	return &Scene{}
}

// AddPointLight registers a point light; power is computed at Commit.
func (s *Scene) AddPointLight(pos vecmath.Vec3, color radiance.Spectrum, intensity, size float64) {
	s.PointLights = append(s.PointLights, Light{
		Kind: PointOnSphere, Position: pos, Color: color, Intensity: intensity, Size: size,
	})
}

// Commit freezes the scene: it recomputes triangle planes, derives
// thin-glass flags, builds and compresses the kd-tree, synthesizes areal
// lights from emissive triangles, computes light powers, and picks an
// adaptive intersection epsilon. Calling Commit twice is idempotent: it
// recomputes everything from the same source arrays and yields the same
// tree statistics.
func (s *Scene) Commit() {
	for i := range s.Materials {
		s.Materials[i].DeriveThinGlass(s.ThinGlassSubstrings)
		if s.Materials[i].ThinGlass {
			s.anyThinGlass = true
		}
	}

	for i := range s.Triangles {
		s.Triangles[i].CalculatePlane(s.Vertices.Positions)
	}

	s.tree = kdtree.Compress(kdtree.Build(s))
	s.epsilon = adaptiveEpsilon(s.tree.Bounds())

	s.buildArealLights()
	s.computeLightPowers()
}

// adaptiveEpsilon derives a scene-scale-relative intersection tolerance.
func adaptiveEpsilon(box vecmath.AABB) float64 {
	d := box.Diagonal()
	if math.IsInf(d, 0) || math.IsNaN(d) || d <= 0 {
		return 1e-5
	}
	return 1e-5 * d
}

// Epsilon returns the scene's adaptive intersection epsilon, valid only
// after Commit.
func (s *Scene) Epsilon() float64 { return s.epsilon }

// Len implements kdtree.PrimitiveSet.
func (s *Scene) Len() int { return len(s.Triangles) }

// Bounds implements kdtree.PrimitiveSet.
func (s *Scene) Bounds(i int) vecmath.AABB {
	return s.Triangles[i].Bounds(s.Vertices.Positions)
}

// HasThinGlass reports whether any material was derived thin-glass.
func (s *Scene) HasThinGlass() bool { return s.anyThinGlass }

func (s *Scene) buildArealLights() {
	s.arealGroups = nil
	// Group emissive triangles by material (they share one emission color).
	byMaterial := make(map[int][]arealTriangle)
	for i := range s.Triangles {
		tri := &s.Triangles[i]
		mat := &s.Materials[tri.MaterialID]
		if mat.Emission.IsZero() {
			continue
		}
		area := triangleArea(s.Vertices.Positions, tri)
		if area <= 0 {
			continue
		}
		byMaterial[tri.MaterialID] = append(byMaterial[tri.MaterialID], arealTriangle{index: i, area: area})
	}
	// Deterministic iteration order for reproducible light indexing.
	matIDs := make([]int, 0, len(byMaterial))
	for id := range byMaterial {
		matIDs = append(matIDs, id)
	}
	sort.Ints(matIDs)

	for _, matID := range matIDs {
		tris := byMaterial[matID]
		sort.Slice(tris, func(i, j int) bool { return tris[i].area > tris[j].area })
		total := 0.0
		for _, t := range tris {
			total += t.area
		}
		emission := s.Materials[matID].Emission
		s.arealGroups = append(s.arealGroups, arealLightGroup{
			triangles: tris,
			emission:  emission,
			power:     total * emission.Sum(),
			totalArea: total,
		})
	}
}

func triangleArea(positions []vecmath.Vec3, t *Triangle) float64 {
	v0, v1, v2 := positions[t.A], positions[t.B], positions[t.C]
	return v1.Sub(v0).Cross(v2.Sub(v0)).Length() * 0.5
}

func (s *Scene) computeLightPowers() {
	s.totalPointPower = 0
	for _, l := range s.PointLights {
		s.totalPointPower += l.Intensity * 4 * math.Pi
	}
	s.totalArealPower = 0
	for _, g := range s.arealGroups {
		s.totalArealPower += g.power
	}
}
