package pathtracer

import (
	"math"
	"sort"

	"github.com/kestrel-render/raycore/pkg/camera"
	"github.com/kestrel-render/raycore/pkg/kdtree"
	"github.com/kestrel-render/raycore/pkg/radiance"
	"github.com/kestrel-render/raycore/pkg/sampler"
	"github.com/kestrel-render/raycore/pkg/scene"
	"github.com/kestrel-render/raycore/pkg/vecmath"
)

// CameraSplat is a light-path vertex's contribution to a pixel other than
// the one the forward path is being traced for, discovered by connecting
// the light path directly to the camera.
type CameraSplat struct {
	X, Y  int
	Value radiance.Spectrum
}

// TracePath bidirectionally traces a single camera ray: it generates a
// forward path from the camera and a backward path from a randomly chosen
// light, sums direct lighting and forward/backward path connections along
// the forward path, and returns any backward-path vertices that land
// directly on the image as CameraSplats.
func TracePath(sc *scene.Scene, cam *camera.Camera, imageWidth, imageHeight int, ray vecmath.Ray, samp sampler.Sampler, cfg Config) (radiance.Spectrum, []CameraSplat) {
	cameraPos := ray.Origin

	arealBary := vecmath.NewVec2(samp.Get2D())
	lightDirU, lightDirV := samp.Get2D()
	lightPick := samp.Get1D()

	light, hasLight := sc.GetRandomLight(lightPick, arealBary.X, arealBary.Y)

	path := GeneratePath(sc, ray, cfg.MaxDepth, cfg.Russian, samp, cfg)

	var lightPath []Vertex
	var lightAtPathStart radiance.Spectrum
	if hasLight {
		var mainLightDir vecmath.Vec3
		if light.Kind == scene.PointOnSphere {
			dir := sampler.Sample2DToSphereUniform(arealBary.X, arealBary.Y)
			light.Position = light.Position.Add(dir.Scale(light.Size))
			mainLightDir = newFrame(dir).toWorld(sampler.Sample2DToHemisphereCosineZ(lightDirU, lightDirV))
		} else {
			mainLightDir = newFrame(light.Normal).toWorld(sampler.Sample2DToHemisphereCosineZ(lightDirU, lightDirV))
		}

		if cfg.ReverseDepth > 0 {
			lightOrigin := light.Position.Add(light.Normal.Scale(sc.Epsilon() * 100))
			lightRay := vecmath.NewRay(lightOrigin, mainLightDir)
			lightPath = GeneratePath(sc, lightRay, cfg.ReverseDepth, -1, samp, cfg)
		}

		lightAtPathStart = light.Color.Scale(light.Intensity * light.DirectionalFactor(mainLightDir))
	}

	var splats []CameraSplat
	for i := range lightPath {
		l := &lightPath[i]
		l.LightFromSource = l.Contribution.Mul(lightAtPathStart)

		if l.Type != Scattered || l.Infinity {
			continue
		}
		if !sc.Visibility(l.Point, cameraPos) {
			continue
		}

		toCamera := cameraPos.Sub(l.Point).Normalize()
		fromCamera := toCamera.Negate()
		f := l.Material.BxDF.Value(newFrame(l.ShadingNormal).toLocal(l.Vr), newFrame(l.ShadingNormal).toLocal(toCamera))
		g := geometricTerm(l.ShadingNormal, toCamera, l.Point, cameraPos)
		if g < 1e-5 {
			continue
		}
		q := l.LightFromSource.Mul(f).Scale(g)
		if hasNaN(q) {
			continue
		}
		if px, py, ok := cam.ProjectToPixel(fromCamera, imageWidth, imageHeight); ok {
			splats = append(splats, CameraSplat{X: px, Y: py, Value: q})
		}
	}

	pathTotal := radiance.Black
	for _, p := range path {
		if p.Infinity {
			skyDir := p.Vr.Negate()
			skyRadiance := applyThinGlass(sc, cfg.sky(skyDir), p.ThinGlassCrossings, skyDir)
			pathTotal = pathTotal.Add(p.Contribution.Mul(skyRadiance))
			continue
		}

		mat := p.Material
		totalHere := radiance.Black

		if p.Type == Scattered && hasLight {
			totalHere = totalHere.Add(directLighting(sc, light, p))
			totalHere = totalHere.Add(reverseLightContribution(sc, p, lightPath))
		}

		if !mat.Emission.IsZero() && !p.Backside {
			totalHere = totalHere.Add(mat.Emission)
		}

		totalHere = totalHere.Clamp(cfg.Clamp)
		pathTotal = pathTotal.Add(totalHere.Mul(p.Contribution))
	}

	return pathTotal.Clamp(cfg.Clamp).SanitizeNonNegative(), splats
}

func directLighting(sc *scene.Scene, light scene.Light, p Vertex) radiance.Spectrum {
	var visible bool
	var crossings []kdtree.Hit
	if sc.HasThinGlass() {
		visible, crossings = sc.VisibilityThinGlass(light.Position, p.Point)
	} else {
		visible = sc.Visibility(light.Position, p.Point)
	}
	if !visible {
		return radiance.Black
	}

	vi := light.Position.Sub(p.Point).Normalize()
	f := p.Material.BxDF.Value(newFrame(p.ShadingNormal).toLocal(vi), newFrame(p.ShadingNormal).toLocal(p.Vr))
	g := geometricTerm(p.ShadingNormal, vi, p.Point, light.Position)

	incoming := light.Color.Scale(light.Intensity * light.DirectionalFactor(vi.Negate()))
	incoming = applyThinGlass(sc, incoming, crossings, vi)

	return incoming.Mul(f).Scale(g)
}

func reverseLightContribution(sc *scene.Scene, p Vertex, lightPath []Vertex) radiance.Spectrum {
	total := radiance.Black
	for i := range lightPath {
		l := &lightPath[i]
		if l.Infinity {
			continue
		}

		var visible bool
		var crossings []kdtree.Hit
		if sc.HasThinGlass() {
			visible, crossings = sc.VisibilityThinGlass(l.Point, p.Point)
		} else {
			visible = sc.Visibility(l.Point, p.Point)
		}
		if !visible {
			continue
		}

		lightToP := p.Point.Sub(l.Point)
		dist := lightToP.Length()
		if dist < 1e-9 {
			continue
		}
		lightToP = lightToP.Scale(1 / dist)
		pToLight := lightToP.Negate()

		fLight := l.Material.BxDF.Value(newFrame(l.ShadingNormal).toLocal(lightToP), newFrame(l.ShadingNormal).toLocal(l.Vr))
		fPoint := p.Material.BxDF.Value(newFrame(p.ShadingNormal).toLocal(p.Vr), newFrame(p.ShadingNormal).toLocal(pToLight))
		g := geometricTerm(p.ShadingNormal, pToLight, p.Point, l.Point)

		contribution := l.LightFromSource.Mul(fLight).Mul(fPoint).Scale(g)
		total = total.Add(applyThinGlass(sc, contribution, crossings, pToLight))
	}
	return total
}

func geometricTerm(normal, toOther vecmath.Vec3, a, b vecmath.Vec3) float64 {
	cosTheta := math.Max(0, normal.Dot(toOther))
	distSq := a.Sub(b).LengthSquared()
	if distSq < 1e-12 {
		return 0
	}
	return cosTheta / distSq
}

func hasNaN(s radiance.Spectrum) bool {
	return math.IsNaN(s.R) || math.IsNaN(s.G) || math.IsNaN(s.B)
}

// applyThinGlass tints input by the diffuse color of every thin-glass
// crossing whose triangle plane normal points along rayDirection
// (dot >= 0),
// merging crossings within the scene epsilon of each other (near-coincident
// clones of the same triangle at a kd-tree split plane).
func applyThinGlass(sc *scene.Scene, input radiance.Spectrum, crossings []kdtree.Hit, rayDirection vecmath.Vec3) radiance.Spectrum {
	if len(crossings) == 0 {
		return input
	}
	sorted := append([]kdtree.Hit(nil), crossings...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].T < sorted[j].T })

	result := input
	lastT := math.Inf(-1)
	eps := sc.Epsilon()
	for _, c := range sorted {
		if c.T <= lastT+eps {
			continue
		}
		lastT = c.T
		tri := sc.Triangles[c.Index]
		if tri.Plane.Normal.Dot(rayDirection) >= 0 {
			result = result.Mul(sc.Materials[tri.MaterialID].Diffuse)
		}
	}
	return result
}
