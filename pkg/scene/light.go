package scene

import "github.com/kestrel-render/raycore/pkg/radiance"
import "github.com/kestrel-render/raycore/pkg/vecmath"

// LightKind distinguishes the two light variants the scene supports.
type LightKind int

const (
	// PointOnSphere is an omnidirectional point light with a nominal
	// sphere size (used only for soft-shadow area-sampling, not geometry).
	PointOnSphere LightKind = iota
	// HemisphereOnAreal is the light synthesized from an emissive
	// triangle: it emits over the hemisphere above its outward normal.
	HemisphereOnAreal
)

// Light is a runtime sample drawn from the scene's light set: either a
// point light or a sampled point on an areal (emissive triangle) light.
type Light struct {
	Kind      LightKind
	Position  vecmath.Vec3
	Normal    vecmath.Vec3 // meaningful only for HemisphereOnAreal
	Color     radiance.Spectrum
	Intensity float64
	Size      float64 // nominal sphere radius, PointOnSphere only
}

// arealLightGroup bundles the emissive triangles that share one emitted
// color, with per-triangle areas kept in descending order so that
// GetRandomLight's linear scan through the (sorted) prefix typically
// terminates after touching only the first few, largest, triangles.
type arealLightGroup struct {
	triangles []arealTriangle
	emission  radiance.Spectrum
	power     float64
	totalArea float64
}

type arealTriangle struct {
	index int
	area  float64
}

// DirectionalFactor returns the attenuation of this light's emitted
// intensity in direction v (pointing away from the light, toward the
// illuminated point): 1 for an isotropic point light, and the cosine
// falloff against the emitting triangle's normal for an areal light.
func (l *Light) DirectionalFactor(v vecmath.Vec3) float64 {
	if l.Kind == PointOnSphere {
		return 1
	}
	d := v.Dot(l.Normal)
	if d < 0 {
		return 0
	}
	return d
}
