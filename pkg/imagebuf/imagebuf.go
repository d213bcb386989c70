// Package imagebuf implements the per-pixel radiance accumulator the spec's
// concurrency model calls for: an image-sized grid that tolerates
// arbitrary-order writes from both a pixel's own camera path and splats
// thrown onto it from light paths traced for other pixels entirely.
package imagebuf

import (
	"image"
	"image/color"
	"sync"

	"github.com/kestrel-render/raycore/pkg/radiance"
)

// cell tracks one pixel's running sum and sample count, each behind its own
// lock so that two workers splatting into neighboring pixels never contend.
type cell struct {
	mu  sync.Mutex
	sum radiance.Spectrum
	n   int
}

// Buffer is a fixed-size grid of cells. The zero value is not usable; build
// one with New. A Buffer is safe for concurrent AddSample/AddSplat calls
// from any number of goroutines once constructed.
type Buffer struct {
	width, height int
	cells         []cell
}

// New allocates a Buffer for an image of the given dimensions. All cells
// start empty.
func New(width, height int) *Buffer {
	if width <= 0 || height <= 0 {
		width, height = 0, 0
	}
	return &Buffer{
		width:  width,
		height: height,
		cells:  make([]cell, width*height),
	}
}

// Width and Height report the buffer's fixed dimensions.
func (b *Buffer) Width() int  { return b.width }
func (b *Buffer) Height() int { return b.height }

func (b *Buffer) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return 0, false
	}
	return y*b.width + x, true
}

// AddSample accumulates one full-weight camera-path sample into pixel
// (x, y). Out-of-bounds coordinates are silently dropped, matching the
// spec's requirement that a light-path splat may legally target a pixel
// outside the tile that produced it.
func (b *Buffer) AddSample(x, y int, value radiance.Spectrum) {
	b.add(x, y, value, 1)
}

// AddSplat accumulates a light-path connection's contribution into pixel
// (x, y) without counting it as a full sample of that pixel: splats are
// bonus energy discovered while tracing a *different* pixel's path, and are
// normalized by the total sample count of the image, not of the pixel they
// land on.
func (b *Buffer) AddSplat(x, y int, value radiance.Spectrum) {
	b.add(x, y, value, 0)
}

func (b *Buffer) add(x, y int, value radiance.Spectrum, sampleCount int) {
	i, ok := b.index(x, y)
	if !ok {
		return
	}
	c := &b.cells[i]
	c.mu.Lock()
	c.sum = c.sum.Add(value)
	c.n += sampleCount
	c.mu.Unlock()
}

// Resolve returns the averaged radiance at (x, y): the accumulated sum
// divided by the pixel's own sample count. Splats contribute to the sum but
// not to n, so their weight must already reflect the image's overall
// per-pixel sample count (the render driver divides splat values by that
// fixed count before calling AddSplat, or calls AddSplat once per camera
// sample so n and splat weight stay consistent).
func (b *Buffer) Resolve(x, y int) radiance.Spectrum {
	i, ok := b.index(x, y)
	if !ok {
		return radiance.Black
	}
	c := &b.cells[i]
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.n == 0 {
		return c.sum
	}
	return c.sum.Scale(1 / float64(c.n))
}

// ToImage renders the accumulated radiance into a standard-library RGBA
// image via Spectrum.ToColor's gamma encoding. This is the one place the
// core-adjacent code touches image I/O; encoding that image.Image to PNG or
// any other file format is left to the external ImageSink the spec
// describes.
func (b *Buffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			img.Set(x, y, toRGBA(b.Resolve(x, y).ToColor()))
		}
	}
	return img
}

func toRGBA(c radiance.Color) color.RGBA {
	clamp8 := func(v float64) uint8 {
		if v <= 0 {
			return 0
		}
		if v >= 1 {
			return 255
		}
		return uint8(v*255 + 0.5)
	}
	return color.RGBA{clamp8(c.R), clamp8(c.G), clamp8(c.B), 255}
}
