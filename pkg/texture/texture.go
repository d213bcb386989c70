// Package texture adapts an externally decoded pixel buffer into the
// fetch operations the path tracer needs: wrapped integer lookup, bilinear
// interpolation at normalized UV coordinates, and the finite-difference
// slopes a bump map contributes to shading normals. Decoding image files
// into pixels is an external concern (see PixelProvider); this package only
// interpolates and differentiates whatever a provider hands it.
package texture

import "github.com/kestrel-render/raycore/pkg/radiance"

// PixelProvider is implemented by an external image-decoding collaborator.
// The core never parses an image file itself.
type PixelProvider interface {
	Width() int
	Height() int
	// At returns the color at integer pixel (x,y). x and y are not
	// guaranteed to be in range; implementations of Texture wrap them
	// before calling At.
	At(x, y int) radiance.Color
}

// WrapMode selects how out-of-range integer coordinates are folded back
// into the provider's bounds.
type WrapMode int

const (
	WrapRepeat WrapMode = iota
	WrapClamp
)

// Texture wraps a PixelProvider with wrap-mode fetch, bilinear
// interpolation, and bump-map slope helpers.
type Texture struct {
	src  PixelProvider
	wrap WrapMode
}

// New wraps src for sampling with the given wrap mode.
func New(src PixelProvider, wrap WrapMode) *Texture {
	return &Texture{src: src, wrap: wrap}
}

func wrapCoord(v, size int, mode WrapMode) int {
	if size <= 0 {
		return 0
	}
	switch mode {
	case WrapClamp:
		if v < 0 {
			return 0
		}
		if v >= size {
			return size - 1
		}
		return v
	default: // WrapRepeat
		v %= size
		if v < 0 {
			v += size
		}
		return v
	}
}

// Fetch returns the color at integer pixel (x,y), wrapping out-of-range
// coordinates per t's wrap mode.
func (t *Texture) Fetch(x, y int) radiance.Color {
	w, h := t.src.Width(), t.src.Height()
	return t.src.At(wrapCoord(x, w, t.wrap), wrapCoord(y, h, t.wrap))
}

// FetchBilinear samples the texture at normalized coordinates (u,v), each
// conventionally in [0,1), using bilinear interpolation between the four
// nearest texels.
func (t *Texture) FetchBilinear(u, v float64) radiance.Color {
	w, h := float64(t.src.Width()), float64(t.src.Height())
	fx := u*w - 0.5
	fy := v*h - 0.5
	x0 := int(floor(fx))
	y0 := int(floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	c00 := t.Fetch(x0, y0)
	c10 := t.Fetch(x0+1, y0)
	c01 := t.Fetch(x0, y0+1)
	c11 := t.Fetch(x0+1, y0+1)

	top := lerpColor(c00, c10, tx)
	bottom := lerpColor(c01, c11, tx)
	return lerpColor(top, bottom, ty)
}

func lerpColor(a, b radiance.Color, t float64) radiance.Color {
	return radiance.Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
	}
}

func floor(x float64) float64 {
	i := int(x)
	if x < 0 && float64(i) != x {
		i--
	}
	return float64(i)
}

// luminance reduces a color to a single height value for bump mapping.
func luminance(c radiance.Color) float64 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

// GetSlopeRight returns the finite-difference luminance slope in the +U
// direction at normalized coordinates (u,v), one texel wide, for use as a
// bump-map perturbation of the shading tangent.
func (t *Texture) GetSlopeRight(u, v float64) float64 {
	w := float64(t.src.Width())
	if w <= 0 {
		return 0
	}
	du := 1 / w
	a := luminance(t.FetchBilinear(u, v))
	b := luminance(t.FetchBilinear(u+du, v))
	return (b - a) / du
}

// GetSlopeBottom returns the finite-difference luminance slope in the +V
// direction, analogous to GetSlopeRight.
func (t *Texture) GetSlopeBottom(u, v float64) float64 {
	h := float64(t.src.Height())
	if h <= 0 {
		return 0
	}
	dv := 1 / h
	a := luminance(t.FetchBilinear(u, v))
	b := luminance(t.FetchBilinear(u, v+dv))
	return (b - a) / dv
}
