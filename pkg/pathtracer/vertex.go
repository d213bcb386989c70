package pathtracer

import (
	"github.com/kestrel-render/raycore/pkg/kdtree"
	"github.com/kestrel-render/raycore/pkg/radiance"
	"github.com/kestrel-render/raycore/pkg/scene"
	"github.com/kestrel-render/raycore/pkg/vecmath"
)

// VertexType classifies how a path continued past a surface hit.
type VertexType int

const (
	// Scattered is a BxDF-sampled bounce off an opaque (or partially
	// translucent, non-refracting) surface.
	Scattered VertexType = iota
	// Reflected is a perfect-specular mirror bounce.
	Reflected
	// Entered is a refraction into a translucent medium.
	Entered
	// Left is a refraction out of a translucent medium back into air.
	Left
)

// Vertex is one point along a generated path: either a surface hit or,
// when Infinity is true, the path's final escape into the sky.
type Vertex struct {
	Type VertexType

	Point         vecmath.Vec3
	ShadingNormal vecmath.Vec3
	// Vr points away from the surface, back toward the previous vertex
	// (or the camera, for the path's first vertex).
	Vr vecmath.Vec3
	// Vi is the sampled outgoing direction toward the next vertex. Unset
	// at an Infinity vertex, which has no further bounce.
	Vi vecmath.Vec3

	Material *scene.Material
	Diffuse  radiance.Spectrum
	Specular radiance.Spectrum
	Backside bool

	// Contribution is the cumulative transfer coefficient of the path up
	// to (but not including) this vertex's own bounce: multiplying a
	// radiance value arriving at this vertex by Contribution gives its
	// effect on the pixel.
	Contribution radiance.Spectrum
	// TransferCoefficients is this vertex's own bounce's contribution to
	// the running product (BxDF weight, or a translucency tint on entry).
	TransferCoefficients radiance.Spectrum

	// LightFromSource is filled in by TracePath, for light-path vertices
	// only: the radiance the light path has carried from the emitter to
	// this point.
	LightFromSource radiance.Spectrum

	Infinity bool

	// ThinGlassCrossings holds every thin-glass triangle the ray crossed
	// to reach this vertex (or, for an Infinity vertex, to escape to the
	// sky), for the thin-glass absorption filter.
	ThinGlassCrossings []kdtree.Hit
}
