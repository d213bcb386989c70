package pathtracer

import (
	"github.com/kestrel-render/raycore/pkg/bxdf"
	"github.com/kestrel-render/raycore/pkg/kdtree"
	"github.com/kestrel-render/raycore/pkg/radiance"
	"github.com/kestrel-render/raycore/pkg/sampler"
	"github.com/kestrel-render/raycore/pkg/scene"
	"github.com/kestrel-render/raycore/pkg/vecmath"
)

// GeneratePath walks a ray through the scene, producing one Vertex per
// bounce, up to maxDepth vertices or until Russian-roulette termination,
// whichever comes first. A negative russian disables roulette entirely
// (used for the light path, which is always a fixed, short length).
func GeneratePath(sc *scene.Scene, ray vecmath.Ray, maxDepth int, russian float64, samp sampler.Sampler, cfg Config) []Vertex {
	var path []Vertex

	cumulative := radiance.White
	origin, direction := ray.Origin, ray.Direction.Normalize()
	lastTriangle := -1

	for n := 0; n < maxDepth; n++ {
		var hit scene.Hit
		var ok bool
		var crossings []kdtree.Hit

		if sc.HasThinGlass() {
			h, found, c := sc.IntersectThinGlass(origin, direction, 1e-9, 1e30, lastTriangle)
			hit, ok, crossings = h, found, c
		} else {
			h, found := sc.IntersectIgnoring(origin, direction, 1e-9, 1e30, lastTriangle)
			hit, ok = h, found
		}

		v := Vertex{Contribution: cumulative, ThinGlassCrossings: crossings}

		if !ok {
			v.Infinity = true
			v.Vr = direction.Negate()
			path = append(path, v)
			break
		}

		v.Point = hit.Point
		faceN := hit.ShadingNormal
		v.Vr = direction.Negate()

		fromInside := false
		if faceN.Dot(v.Vr) < 0 {
			fromInside = true
			faceN = faceN.Negate()
			v.Backside = true
		}

		mat := hit.Material
		v.Material = mat

		diffuse, specular := sampleMaterialColors(mat, hit.UV)
		v.Diffuse, v.Specular = diffuse, specular

		if mat.BumpTex != nil {
			faceN = applyBumpMap(mat, hit, faceN, cfg.BumpScale)
		}

		ptypeSample := samp.Get1D()
		vtype := classifyVertex(mat, faceN, v.Vr, fromInside, cfg.ForceFresnel, diffuse, specular, ptypeSample)

		dir, transfer := nextDirection(mat, vtype, faceN, v.Vr, samp, diffuse)
		vtype = dir.resolvedType
		v.Type = vtype
		v.ShadingNormal = faceN
		v.Vi = dir.direction
		v.TransferCoefficients = transfer

		russianCoeff := 1.0
		if russian > 0 && n > 0 {
			russianCoeff = 1 / russian
		}
		cumulative = cumulative.Scale(russianCoeff).Mul(transfer)

		path = append(path, v)

		if cumulative.Max() < 0.001 {
			break
		}
		if russian > 0 {
			if samp.Get1D() > russian {
				break
			}
		}

		pushEps := sc.Epsilon() * 10
		sign := 1.0
		if vtype == Entered || vtype == Left {
			sign = -1.0
		}
		origin = v.Point.Add(faceN.Scale(pushEps * sign))
		direction = v.Vi.Normalize()
		lastTriangle = hit.TriangleIndex
	}

	return path
}

func sampleMaterialColors(mat *scene.Material, uv vecmath.Vec2) (radiance.Spectrum, radiance.Spectrum) {
	diffuse, specular := mat.Diffuse, mat.Specular
	if mat.DiffuseTex != nil {
		diffuse = mat.DiffuseTex.FetchBilinear(uv.X, uv.Y).ToSpectrum()
	}
	if mat.SpecularTex != nil {
		specular = mat.SpecularTex.FetchBilinear(uv.X, uv.Y).ToSpectrum()
	}
	return diffuse, specular
}

func applyBumpMap(mat *scene.Material, hit scene.Hit, faceN vecmath.Vec3, scale float64) vecmath.Vec3 {
	tangent := hit.Tangent
	if tangent.LengthSquared() < 0.001 {
		return faceN
	}
	tangent = tangent.Normalize()
	bitangent := faceN.Cross(tangent).Normalize()
	tangent2 := bitangent.Cross(faceN)

	right := mat.BumpTex.GetSlopeRight(hit.UV.X, hit.UV.Y)
	bottom := mat.BumpTex.GetSlopeBottom(hit.UV.X, hit.UV.Y)

	perturbed := faceN.Add(tangent2.Scale(right * scale)).Add(bitangent.Scale(bottom * scale)).Normalize()
	if perturbed.IsZero() || perturbed.HasNaN() {
		return faceN
	}
	return perturbed
}

// classifyVertex decides a hit's VertexType, mirroring the
// DecideAndRescale chain: translucent materials choose among
// reflect/enter/scatter via the dielectric Fresnel term and opacity;
// opaque materials either always scatter, or (with ForceFresnel) choose
// between a mirror bounce and the BxDF by specular strength and Fresnel.
func classifyVertex(mat *scene.Material, faceN, vr vecmath.Vec3, fromInside, forceFresnel bool, diffuse, specular radiance.Spectrum, ptypeSample float64) VertexType {
	if mat.Translucent() {
		if fromInside {
			return Left
		}
		fresnel := bxdf.Fresnel(vr, faceN, 1/mat.IOR)
		reflect, rescaled := sampler.DecideAndRescale(ptypeSample, fresnel)
		if reflect {
			return Reflected
		}
		translucency := 1 - mat.Opacity
		enter, _ := sampler.DecideAndRescale(rescaled, translucency)
		if enter {
			return Entered
		}
		return Scattered
	}

	if !forceFresnel {
		return Scattered
	}

	total := diffuse.Sum() + specular.Sum()
	if total <= 0 {
		return Scattered
	}
	strength := specular.Sum() / total
	chooseMirrorBranch, rescaled := sampler.DecideAndRescale(ptypeSample, strength)
	if !chooseMirrorBranch {
		return Scattered
	}
	fresnel := bxdf.Fresnel(vr, faceN, 1/mat.IOR)
	reflect, _ := sampler.DecideAndRescale(rescaled, fresnel)
	if reflect {
		return Reflected
	}
	return Scattered
}

type nextDirResult struct {
	direction    vecmath.Vec3
	resolvedType VertexType
}

// nextDirection computes the outgoing direction and transfer coefficient
// for a classified vertex. A Reflected direction that would re-enter the
// surface it bounced off falls back to a BxDF-sampled Scattered bounce,
// matching the source renderer's guard against self-intersection.
func nextDirection(mat *scene.Material, vtype VertexType, faceN, vr vecmath.Vec3, samp sampler.Sampler, diffuse radiance.Spectrum) (nextDirResult, radiance.Spectrum) {
	switch vtype {
	case Reflected:
		dir := vr.Reflect(faceN)
		if dir.Dot(faceN) > 0 {
			return nextDirResult{dir, Reflected}, radiance.White
		}
		vtype = Scattered
		fallthrough

	case Scattered:
		f := newFrame(faceN)
		u1, u2 := samp.Get2D()
		localDir, transport := mat.BxDF.Sample(f.toLocal(vr), u1, u2)
		return nextDirResult{f.toWorld(localDir), Scattered}, transport

	case Entered:
		dir, ok := bxdf.Refract(vr, faceN, 1/mat.IOR)
		if !ok {
			return nextDirResult{vr.Reflect(faceN), Reflected}, radiance.White
		}
		return nextDirResult{dir, Entered}, diffuse

	case Left:
		dir, ok := bxdf.Refract(vr, faceN, mat.IOR)
		if !ok {
			return nextDirResult{vr.Reflect(faceN), Reflected}, radiance.White
		}
		return nextDirResult{dir, Left}, radiance.White
	}

	return nextDirResult{faceN, Scattered}, radiance.Black
}
