package texture

import (
	"testing"

	"github.com/kestrel-render/raycore/pkg/radiance"
)

// checkerProvider is a 2x2 black/white checkerboard test fixture.
type checkerProvider struct{}

func (checkerProvider) Width() int  { return 2 }
func (checkerProvider) Height() int { return 2 }
func (checkerProvider) At(x, y int) radiance.Color {
	if (x+y)%2 == 0 {
		return radiance.Color{R: 1, G: 1, B: 1}
	}
	return radiance.Color{R: 0, G: 0, B: 0}
}

func TestFetchWrapsRepeat(t *testing.T) {
	tex := New(checkerProvider{}, WrapRepeat)
	if tex.Fetch(0, 0) != tex.Fetch(2, 0) {
		t.Errorf("WrapRepeat did not wrap x=2 onto x=0")
	}
	if tex.Fetch(-1, 0) != tex.Fetch(1, 0) {
		t.Errorf("WrapRepeat did not wrap x=-1 onto x=1")
	}
}

func TestFetchClampsOutOfRange(t *testing.T) {
	tex := New(checkerProvider{}, WrapClamp)
	if tex.Fetch(100, 100) != tex.Fetch(1, 1) {
		t.Errorf("WrapClamp did not clamp to the last pixel")
	}
	if tex.Fetch(-50, -50) != tex.Fetch(0, 0) {
		t.Errorf("WrapClamp did not clamp to the first pixel")
	}
}

func TestFetchBilinearMidpoint(t *testing.T) {
	tex := New(checkerProvider{}, WrapRepeat)
	// At the exact texel center the bilinear result equals the texel.
	got := tex.FetchBilinear(0.25, 0.25)
	want := tex.Fetch(0, 0)
	const tol = 1e-9
	if abs(got.R-want.R) > tol || abs(got.G-want.G) > tol || abs(got.B-want.B) > tol {
		t.Errorf("FetchBilinear at texel center = %v, want %v", got, want)
	}
}

func TestSlopeZeroOnUniformTexture(t *testing.T) {
	flat := flatProvider{c: radiance.Color{R: 0.5, G: 0.5, B: 0.5}}
	tex := New(flat, WrapRepeat)
	if s := tex.GetSlopeRight(0.3, 0.3); s != 0 {
		t.Errorf("GetSlopeRight on flat texture = %v, want 0", s)
	}
	if s := tex.GetSlopeBottom(0.3, 0.3); s != 0 {
		t.Errorf("GetSlopeBottom on flat texture = %v, want 0", s)
	}
}

type flatProvider struct{ c radiance.Color }

func (f flatProvider) Width() int                { return 8 }
func (f flatProvider) Height() int               { return 8 }
func (f flatProvider) At(x, y int) radiance.Color { return f.c }

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
