package pathtracer

import (
	"github.com/kestrel-render/raycore/pkg/camera"
	"github.com/kestrel-render/raycore/pkg/radiance"
	"github.com/kestrel-render/raycore/pkg/sampler"
	"github.com/kestrel-render/raycore/pkg/scene"
)

// RenderPixel traces multisample independent camera rays through pixel
// (x,y) of a (width,height) image and returns their average radiance
// plus every camera splat produced by the contributing light paths. The
// caller is expected to route splats through an accumulator that can
// handle writes landing on pixels other than (x,y) (see pkg/imagebuf).
func RenderPixel(sc *scene.Scene, cam *camera.Camera, x, y, width, height, multisample int, samplerCfg sampler.Config, cfg Config) (radiance.Spectrum, []CameraSplat) {
	samp := sampler.New(samplerCfg)

	total := radiance.Black
	var allSplats []CameraSplat

	for i := 0; i < multisample; i++ {
		samp.Advance()
		u, v := samp.Get2D()
		lensU, lensV := samp.Get2D()
		ray := cam.GenerateRay(x, y, width, height, u, v, lensU, lensV)

		color, splats := TracePath(sc, cam, width, height, ray, samp, cfg)
		total = total.Add(color)
		allSplats = append(allSplats, splats...)
	}

	if multisample > 0 {
		total = total.Scale(1 / float64(multisample))
	}
	return total, allSplats
}
