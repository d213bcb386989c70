// Command demo exercises the render core end to end: it builds a small
// procedural scene directly against the pkg/scene arena API (standing in
// for the out-of-scope MeshSource ingester the spec describes), commits it,
// and path-traces every pixel through pkg/camera and
// pkg/pathtracer into a PNG via pkg/imagebuf. It is not a tiling render
// driver — see spec §1's explicit non-goal for that — just a proof that the
// pieces wire together.
package main

import (
	"fmt"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/kestrel-render/raycore/pkg/bxdf"
	"github.com/kestrel-render/raycore/pkg/config"
	"github.com/kestrel-render/raycore/pkg/imagebuf"
	"github.com/kestrel-render/raycore/pkg/pathtracer"
	"github.com/kestrel-render/raycore/pkg/radiance"
	"github.com/kestrel-render/raycore/pkg/sampler"
	"github.com/kestrel-render/raycore/pkg/scene"
	"github.com/kestrel-render/raycore/pkg/vecmath"
)

func main() {
	var (
		width, height int
		multisample   int
		out           string
		cfgPath       string
	)

	root := &cobra.Command{
		Use:   "demo",
		Short: "Render a small procedural Cornell-style scene to a PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if cfgPath != "" {
				loaded, err := config.Load(cfgPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			cfg.Multisample = multisample
			if err := cfg.Validate(); err != nil {
				return err
			}
			return render(cfg, width, height, out)
		},
	}

	root.Flags().IntVar(&width, "width", 160, "image width in pixels")
	root.Flags().IntVar(&height, "height", 120, "image height in pixels")
	root.Flags().IntVar(&multisample, "samples", 16, "camera samples per pixel")
	root.Flags().StringVar(&out, "out", "demo.png", "output PNG path")
	root.Flags().StringVar(&cfgPath, "config", "", "optional YAML configuration overriding defaults")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func render(cfg config.Configuration, width, height int, outPath string) error {
	sc := buildCornellBox()
	sc.Commit()

	cam := cfg.Camera(
		vecmath.New(0, 1, 4.5),
		vecmath.New(0, 1, 0),
		vecmath.New(0, 1, 0),
		float64(width)/float64(height)*0.35,
		0.35,
	)

	ptCfg := cfg.PathTracerConfig()
	buf := imagebuf.New(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			seed := sampler.SeedFor(cfg.Seed, x, y, 0)
			samplerCfg := cfg.SamplerConfig(seed)
			color, splats := pathtracer.RenderPixel(sc, cam, x, y, width, height, cfg.Multisample, samplerCfg, ptCfg)
			buf.AddSample(x, y, color)
			for _, s := range splats {
				buf.AddSplat(s.X, s.Y, s.Value.Scale(1/float64(cfg.Multisample)))
			}
		}
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	defer f.Close()
	return png.Encode(f, buf.ToImage())
}

// buildCornellBox hand-assembles a minimal Cornell-box-style scene: five
// diffuse walls, one emissive ceiling patch as an areal light, and a single
// point light for the direct-lighting path. It stands in for the scene
// ingestion the spec declares external.
func buildCornellBox() *scene.Scene {
	sc := scene.New()

	red := radiance.New(0.65, 0.05, 0.05)
	green := radiance.New(0.12, 0.45, 0.15)
	white := radiance.New(0.73, 0.73, 0.73)
	light := radiance.New(1, 1, 1)

	addMat := func(diffuse radiance.Spectrum, emission radiance.Spectrum) int {
		sc.Materials = append(sc.Materials, scene.Material{
			Diffuse:  diffuse,
			BxDF:     bxdf.NewDiffuse(diffuse),
			Emission: emission,
			IOR:      1,
			Opacity:  1,
		})
		return len(sc.Materials) - 1
	}

	redMat := addMat(red, radiance.Black)
	greenMat := addMat(green, radiance.Black)
	whiteMat := addMat(white, radiance.Black)
	lightMat := addMat(white, light.Scale(8))

	addQuad := func(a, b, c, d vecmath.Vec3, mat int) {
		base := len(sc.Vertices.Positions)
		for _, p := range []vecmath.Vec3{a, b, c, d} {
			sc.Vertices.Positions = append(sc.Vertices.Positions, p)
			sc.Vertices.Normals = append(sc.Vertices.Normals, vecmath.Vec3{})
			sc.Vertices.Tangents = append(sc.Vertices.Tangents, vecmath.Vec3{})
			sc.Vertices.UVs = append(sc.Vertices.UVs, vecmath.Vec2{})
		}
		sc.Triangles = append(sc.Triangles,
			scene.Triangle{A: base, B: base + 1, C: base + 2, MaterialID: mat},
			scene.Triangle{A: base, B: base + 2, C: base + 3, MaterialID: mat},
		)
	}

	// Box spans x,z in [-2,2], y in [0,4].
	floor := []vecmath.Vec3{{X: -2, Y: 0, Z: -2}, {X: 2, Y: 0, Z: -2}, {X: 2, Y: 0, Z: 2}, {X: -2, Y: 0, Z: 2}}
	ceiling := []vecmath.Vec3{{X: -2, Y: 4, Z: 2}, {X: 2, Y: 4, Z: 2}, {X: 2, Y: 4, Z: -2}, {X: -2, Y: 4, Z: -2}}
	back := []vecmath.Vec3{{X: -2, Y: 0, Z: -2}, {X: -2, Y: 4, Z: -2}, {X: 2, Y: 4, Z: -2}, {X: 2, Y: 0, Z: -2}}
	leftWall := []vecmath.Vec3{{X: -2, Y: 0, Z: 2}, {X: -2, Y: 4, Z: 2}, {X: -2, Y: 4, Z: -2}, {X: -2, Y: 0, Z: -2}}
	rightWall := []vecmath.Vec3{{X: 2, Y: 0, Z: -2}, {X: 2, Y: 4, Z: -2}, {X: 2, Y: 4, Z: 2}, {X: 2, Y: 0, Z: 2}}
	ceilingLight := []vecmath.Vec3{{X: -0.5, Y: 3.99, Z: 0.5}, {X: 0.5, Y: 3.99, Z: 0.5}, {X: 0.5, Y: 3.99, Z: -0.5}, {X: -0.5, Y: 3.99, Z: -0.5}}

	addQuad(floor[0], floor[1], floor[2], floor[3], whiteMat)
	addQuad(ceiling[0], ceiling[1], ceiling[2], ceiling[3], whiteMat)
	addQuad(back[0], back[1], back[2], back[3], whiteMat)
	addQuad(leftWall[0], leftWall[1], leftWall[2], leftWall[3], redMat)
	addQuad(rightWall[0], rightWall[1], rightWall[2], rightWall[3], greenMat)
	addQuad(ceilingLight[0], ceilingLight[1], ceilingLight[2], ceilingLight[3], lightMat)

	sc.AddPointLight(vecmath.New(0, 3.5, 0), radiance.White, 4, 0.05)

	return sc
}
