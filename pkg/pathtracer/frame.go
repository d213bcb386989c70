package pathtracer

import "github.com/kestrel-render/raycore/pkg/vecmath"

// frame is an orthonormal shading basis built around a surface normal,
// used to move directions between world space and the local +Z-up space
// every BxDF operates in.
type frame struct {
	tangent, bitangent, normal vecmath.Vec3
}

func newFrame(normal vecmath.Vec3) frame {
	t, b := vecmath.OrthonormalBasis(normal)
	return frame{tangent: t, bitangent: b, normal: normal}
}

func (f frame) toLocal(v vecmath.Vec3) vecmath.Vec3 {
	return vecmath.New(f.tangent.Dot(v), f.bitangent.Dot(v), f.normal.Dot(v))
}

func (f frame) toWorld(v vecmath.Vec3) vecmath.Vec3 {
	return f.tangent.Scale(v.X).Add(f.bitangent.Scale(v.Y)).Add(f.normal.Scale(v.Z))
}
