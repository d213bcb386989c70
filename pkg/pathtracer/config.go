package pathtracer

import (
	"github.com/kestrel-render/raycore/pkg/radiance"
	"github.com/kestrel-render/raycore/pkg/vecmath"
)

// SkyFunc returns the radiance arriving from infinity along dir (a unit
// direction the camera or a bounced ray is looking along). A nil SkyFunc
// in Config is treated as a black sky.
type SkyFunc func(dir vecmath.Vec3) radiance.Spectrum

// Config bundles the path tracer's tunable behavior, mirroring the
// renderer's command-line surface: recursion limits, Russian-roulette
// survival probability, firefly clamping, bump-map strength, and the
// force-Fresnel heuristic for non-translucent materials.
type Config struct {
	// MaxDepth bounds the forward (camera) path's vertex count.
	MaxDepth int
	// ReverseDepth bounds the backward (light) path's vertex count. Zero
	// disables light-path generation (pure forward path tracing).
	ReverseDepth int
	// Russian is the per-bounce survival probability for Russian-roulette
	// termination after the first bounce; <= 0 disables it (fixed-depth
	// termination only).
	Russian float64
	// Clamp bounds a single bounce's contribution before it's added to
	// the running total, suppressing fireflies; <= 0 disables clamping.
	Clamp float64
	// BumpScale scales the tangent-plane normal perturbation a bump
	// texture contributes.
	BumpScale float64
	// ForceFresnel makes every opaque material probabilistically choose
	// between a mirror bounce and its BxDF, weighted by specular
	// strength and the dielectric Fresnel term, instead of always
	// sampling the BxDF directly.
	ForceFresnel bool
	// Sky supplies the radiance for rays that escape the scene.
	Sky SkyFunc
}

func (c Config) sky(dir vecmath.Vec3) radiance.Spectrum {
	if c.Sky == nil {
		return radiance.Black
	}
	return c.Sky(dir)
}
