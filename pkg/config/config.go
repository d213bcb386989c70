// Package config is the render core's one external collaborator the spec
// names explicitly but declares out of scope for the core itself:
// "Configuration loading and command-line handling." It loads the
// enumerated options of spec §6 from YAML and turns them into the structs
// pkg/pathtracer, pkg/camera, and pkg/sampler actually consume.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kestrel-render/raycore/pkg/bxdf"
	"github.com/kestrel-render/raycore/pkg/camera"
	"github.com/kestrel-render/raycore/pkg/ltc"
	"github.com/kestrel-render/raycore/pkg/pathtracer"
	"github.com/kestrel-render/raycore/pkg/radiance"
	"github.com/kestrel-render/raycore/pkg/sampler"
	"github.com/kestrel-render/raycore/pkg/vecmath"
)

// BRDFKind names the default reflectance model assigned to a material that
// doesn't specify one of its own. The legacy names diffusecosine and
// diffuseuniform both resolve to the core's single Diffuse BxDF (the
// sampling-strategy distinction the names imply collapsed into BxDF.Sample
// itself during the redesign); cooktorr and phongenergy resolve to the LTC
// GGX and Beckmann tables respectively, the closest equivalent glossy model
// the core keeps.
type BRDFKind string

const (
	BRDFDiffuse        BRDFKind = "diffuse"
	BRDFDiffuseCosine  BRDFKind = "diffusecosine"
	BRDFDiffuseUniform BRDFKind = "diffuseuniform"
	BRDFCookTorrance   BRDFKind = "cooktorr"
	BRDFPhongEnergy    BRDFKind = "phongenergy"
	BRDFLTCBeckmann    BRDFKind = "ltc_beckmann"
	BRDFLTCGGX         BRDFKind = "ltc_ggx"
)

// SkyConfig is the constant-color environment the path tracer evaluates for
// camera rays and light-path rays that miss the scene entirely.
type SkyConfig struct {
	Color     [3]float64 `yaml:"color"`
	Intensity float64    `yaml:"intensity"`
}

// CameraConfig carries the subset of camera.New's parameters a scene file
// or command line needs to expose; Position/LookAt/Up are left to the scene
// ingester (out of the core's scope) and are not modeled here.
type CameraConfig struct {
	FieldOfView  float64 `yaml:"field_of_view"`
	FocusPlane   float64 `yaml:"focus_plane"`
	LensSize     float64 `yaml:"lens_size"`
}

// Configuration is the full set of options spec §6 enumerates.
type Configuration struct {
	Multisample    int       `yaml:"multisample"`
	RecursionMax   int       `yaml:"recursion_max"`
	Reverse        int       `yaml:"reverse"`
	Russian        float64   `yaml:"russian"`
	Clamp          float64   `yaml:"clamp"`
	BumpScale      float64   `yaml:"bumpscale"`
	ForceFresnel   bool      `yaml:"force_fresnell"`
	ThinGlass      []string  `yaml:"thinglass"`
	Sky            SkyConfig `yaml:"sky"`
	Camera         CameraConfig `yaml:"camera"`
	BRDFDefault    BRDFKind  `yaml:"brdf"`
	SamplerKind    string    `yaml:"sampler"`
	Seed           uint64    `yaml:"seed"`
}

// Default returns the configuration the core falls back to when a scene
// file leaves an option unset: one sample, eight-deep paths, no reverse
// light paths, Russian roulette disabled, no clamp, a pale blue sky of
// color (0.2, 0.3, 0.4).
func Default() Configuration {
	return Configuration{
		Multisample:  1,
		RecursionMax: 8,
		Reverse:      0,
		Russian:      -1,
		Clamp:        0,
		BumpScale:    1,
		ForceFresnel: false,
		Sky:          SkyConfig{Color: [3]float64{0.2, 0.3, 0.4}, Intensity: 1},
		Camera:       CameraConfig{FieldOfView: 1.0, FocusPlane: 10, LensSize: 0},
		BRDFDefault:  BRDFDiffuse,
		SamplerKind:  "stratified",
		Seed:         1,
	}
}

// Load reads a YAML configuration file and validates it, reporting a single
// "invalid configuration" error per spec §7's error taxonomy rather than
// letting the core start against a malformed render description.
func Load(path string) (Configuration, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Configuration{}, fmt.Errorf("invalid configuration: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Configuration{}, fmt.Errorf("invalid configuration: parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Configuration{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the constraints spec §6 states for each option.
func (c Configuration) Validate() error {
	if c.Multisample < 1 {
		return fmt.Errorf("multisample must be >= 1, got %d", c.Multisample)
	}
	if c.RecursionMax < 1 {
		return fmt.Errorf("recursion_max must be >= 1, got %d", c.RecursionMax)
	}
	if c.Reverse < 0 {
		return fmt.Errorf("reverse must be >= 0, got %d", c.Reverse)
	}
	if c.Russian != -1 && (c.Russian <= 0 || c.Russian > 1) {
		return fmt.Errorf("russian must be in (0,1] or -1, got %g", c.Russian)
	}
	if c.Camera.LensSize < 0 {
		return fmt.Errorf("camera.lens_size must be >= 0, got %g", c.Camera.LensSize)
	}
	if c.Camera.FocusPlane <= 0 {
		return fmt.Errorf("camera.focus_plane must be > 0, got %g", c.Camera.FocusPlane)
	}
	switch c.BRDFDefault {
	case BRDFDiffuse, BRDFDiffuseCosine, BRDFDiffuseUniform, BRDFCookTorrance, BRDFPhongEnergy, BRDFLTCBeckmann, BRDFLTCGGX, "":
	default:
		return fmt.Errorf("unrecognized brdf default %q", c.BRDFDefault)
	}
	return nil
}

// PathTracerConfig builds the lower-level pathtracer.Config this
// Configuration describes, wiring the sky color/intensity into a
// pathtracer.SkyFunc closure.
func (c Configuration) PathTracerConfig() pathtracer.Config {
	sky := radiance.New(c.Sky.Color[0], c.Sky.Color[1], c.Sky.Color[2]).Scale(c.Sky.Intensity)
	return pathtracer.Config{
		MaxDepth:     c.RecursionMax,
		ReverseDepth: c.Reverse,
		Russian:      c.Russian,
		Clamp:        c.Clamp,
		BumpScale:    c.BumpScale,
		ForceFresnel: c.ForceFresnel,
		Sky:          func(dir vecmath.Vec3) radiance.Spectrum { _ = dir; return sky },
	}
}

// SamplerConfig builds the sampler.Config this Configuration describes for
// a single pixel's stream, parameterized by its own deterministic seed so
// two different pixels never draw the same sequence.
func (c Configuration) SamplerConfig(pixelSeed uint64) sampler.Config {
	kind := sampler.Stratified
	switch c.SamplerKind {
	case "independent":
		kind = sampler.Independent
	case "latinhypercube":
		kind = sampler.LatinHypercube
	}
	return sampler.Config{
		Kind:       kind,
		Seed:       pixelSeed,
		Dimensions: 4,
		SetSize:    c.Multisample,
	}
}

// Camera builds a camera.Camera from this Configuration's focus plane and
// lens size plus the scene-provided placement the core's scope excludes
// (position, look-at target, up vector) and the view extents xView and
// yView, which are passed to camera.New unchanged. The camera section's
// FieldOfView is not read.
func (c Configuration) Camera(pos, lookAt, up vecmath.Vec3, xView, yView float64) *camera.Camera {
	return camera.New(pos, lookAt, up, xView, yView, c.Camera.FocusPlane, c.Camera.LensSize)
}

// ltcTableSize is the resolution of the analytic LTC approximation tables
// built for the glossy BRDF defaults; see pkg/ltc for why they're analytic
// rather than the fitted reference data.
const ltcTableSize = 32

// BxDF resolves a named BRDF default into a concrete BxDF instance,
// constructing a fresh LTC table only for the LTC variants.
func (c Configuration) BxDF(kd radiance.Spectrum) (*bxdf.BxDF, error) {
	switch c.BRDFDefault {
	case "", BRDFDiffuse, BRDFDiffuseCosine, BRDFDiffuseUniform:
		return bxdf.NewDiffuse(kd), nil
	case BRDFCookTorrance, BRDFLTCGGX:
		return bxdf.NewLTC(ltc.Generate(ltc.GGX, ltcTableSize), 0.3, kd), nil
	case BRDFPhongEnergy, BRDFLTCBeckmann:
		return bxdf.NewLTC(ltc.Generate(ltc.Beckmann, ltcTableSize), 0.3, kd), nil
	default:
		return nil, fmt.Errorf("unrecognized brdf default %q", c.BRDFDefault)
	}
}
