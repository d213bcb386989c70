// Package camera builds view rays from a pinhole or thin-lens camera model
// and maps world directions back onto the view screen for light-path
// camera splats.
package camera

import (
	"github.com/kestrel-render/raycore/pkg/sampler"
	"github.com/kestrel-render/raycore/pkg/vecmath"
)

// Camera is a perspective camera with an optional thin lens for
// depth-of-field. All of its derived basis vectors are precomputed at
// construction so ray generation is a handful of scalar multiplies.
type Camera struct {
	origin    vecmath.Vec3
	direction vecmath.Vec3
	left      vecmath.Vec3
	up        vecmath.Vec3

	lensSize float64

	// viewScreen is the world-space point corresponding to (u,v)=(0,0);
	// viewScreenX/Y span the full screen width/height.
	viewScreen  vecmath.Vec3
	viewScreenX vecmath.Vec3
	viewScreenY vecmath.Vec3
}

// New builds a camera at pos looking toward lookAt, with up as the
// approximate up direction (re-orthonormalized against the view
// direction). xView and yView are the horizontal and vertical extents of
// the view screen per unit of distance (twice the tangent of the
// half-angle); New places the screen at focusDistance and multiplies both
// extents by it. lensSize is the thin-lens aperture radius (0 for a
// pinhole).
func New(pos, lookAt, up vecmath.Vec3, xView, yView, focusDistance, lensSize float64) *Camera {
	direction := lookAt.Sub(pos).Normalize()
	left := up.Cross(direction).Normalize()
	cameraUp := left.Cross(direction).Normalize()

	viewScreenX := left.Scale(-xView * focusDistance)
	viewScreenY := cameraUp.Scale(yView * focusDistance)
	viewScreen := pos.Add(direction.Scale(focusDistance)).
		Sub(viewScreenY.Scale(0.5)).
		Sub(viewScreenX.Scale(0.5))

	return &Camera{
		origin: pos, direction: direction, left: left, up: cameraUp,
		lensSize:    lensSize,
		viewScreen:  viewScreen,
		viewScreenX: viewScreenX,
		viewScreenY: viewScreenY,
	}
}

// ViewScreenPoint returns the world-space point at normalized screen
// coordinates (u,v) in [0,1]x[0,1].
func (c *Camera) ViewScreenPoint(u, v float64) vecmath.Vec3 {
	return c.viewScreen.Add(c.viewScreenX.Scale(u)).Add(c.viewScreenY.Scale(v))
}

// GenerateRay returns a ray through pixel (px,py) of a (width,height)
// image, jittered within the pixel by the given 2D sampler draw and, when
// lensSize > 0, originating from a random point on the thin lens for
// depth-of-field, sampled from its own independent 2D draw (lensU,lensV):
// reusing the pixel jitter for the lens would perfectly correlate sub-pixel
// AA with aperture position, degenerating the bokeh and biasing DOF.
func (c *Camera) GenerateRay(px, py, width, height int, jitterU, jitterV, lensU, lensV float64) vecmath.Ray {
	u := (float64(px) + jitterU) / float64(width)
	v := (float64(py) + jitterV) / float64(height)
	target := c.ViewScreenPoint(u, v)

	origin := c.origin
	if c.lensSize > 0 {
		disc := sampler.Sample2DToDiscUniform(lensU, lensV).Scale(c.lensSize)
		origin = origin.Add(c.left.Scale(disc.X)).Add(c.up.Scale(disc.Y))
	}
	return vecmath.NewRay(origin, target.Sub(origin).Normalize())
}

// CenterRay returns the unjittered ray through the center of pixel
// (px,py), used for deterministic preview or debug rendering.
func (c *Camera) CenterRay(px, py, width, height int) vecmath.Ray {
	return c.GenerateRay(px, py, width, height, 0.5, 0.5, 0.5, 0.5)
}

// ProjectDirection maps a world-space direction back onto the camera's
// view screen, for splatting a light-traced path vertex onto the image.
// It returns the (u,v) screen-fraction coordinates and false if the
// direction doesn't cross the screen in front of the camera.
func (c *Camera) ProjectDirection(dir vecmath.Vec3) (u, v float64, ok bool) {
	const epsilon = 1e-4
	q := dir.Dot(c.direction)
	if q < epsilon {
		return 0, 0, false
	}
	t := c.viewScreen.Sub(c.origin).Dot(c.direction) / q
	if t <= 0 {
		return 0, 0, false
	}
	p := c.origin.Add(dir.Scale(t))

	vp := p.Sub(c.viewScreen)
	plen := vp.Length()
	if plen == 0 {
		return 0, 0, true
	}
	vpUnit := vp.Scale(1 / plen)

	xLen := c.viewScreenX.Length()
	yLen := c.viewScreenY.Length()
	u = plen * vpUnit.Dot(c.viewScreenX.Scale(1/xLen)) / xLen
	v = plen * vpUnit.Dot(c.viewScreenY.Scale(1/yLen)) / yLen

	if u < 0 || u > 1 || v < 0 || v > 1 {
		return u, v, false
	}
	return u, v, true
}

// ProjectToPixel is ProjectDirection followed by scaling into pixel
// coordinates of a (width,height) image.
func (c *Camera) ProjectToPixel(dir vecmath.Vec3, width, height int) (px, py int, ok bool) {
	u, v, ok := c.ProjectDirection(dir)
	if !ok {
		return 0, 0, false
	}
	px = int(u * float64(width))
	py = int(v * float64(height))
	if px < 0 || px >= width || py < 0 || py >= height {
		return px, py, false
	}
	return px, py, true
}

// Origin returns the camera's pinhole/lens-center position.
func (c *Camera) Origin() vecmath.Vec3 { return c.origin }

// Direction returns the camera's normalized view direction.
func (c *Camera) Direction() vecmath.Vec3 { return c.direction }
