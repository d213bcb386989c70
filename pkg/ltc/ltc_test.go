package ltc

import (
	"math"
	"math/rand"
	"testing"

	"github.com/kestrel-render/raycore/pkg/vecmath"
)

func TestLookupStaysWithinGridExtremes(t *testing.T) {
	table := Generate(GGX, 16)
	for _, theta := range []float64{0, math.Pi / 4, math.Pi/2 - 0.01} {
		for _, alpha := range []float64{0.01, 0.5, 0.99} {
			m, amp := table.lookup(theta, alpha)
			if amp <= 0 {
				t.Errorf("amplitude <= 0 at theta=%v alpha=%v", theta, alpha)
			}
			if math.Abs(m.Determinant()) < 1e-9 {
				t.Errorf("near-singular M at theta=%v alpha=%v", theta, alpha)
			}
		}
	}
}

func TestGetRandomProducesUpperHemisphereDirections(t *testing.T) {
	table := Generate(Beckmann, 32)
	n := vecmath.New(0, 0, 1)
	vi := vecmath.New(0.3, 0, 0.95).Normalize()
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 200; i++ {
		cosSample := cosineHemisphereZ(rng.Float64(), rng.Float64())
		dir := GetRandom(table, n, vi, 0.3, cosSample)
		if math.IsNaN(dir.X) || math.IsNaN(dir.Y) || math.IsNaN(dir.Z) {
			t.Fatalf("GetRandom produced NaN direction")
		}
		if math.Abs(dir.Length()-1) > 1e-6 {
			t.Errorf("GetRandom direction not unit length: %v", dir.Length())
		}
	}
}

func TestGetPDFNonNegative(t *testing.T) {
	table := Generate(GGX, 32)
	n := vecmath.New(0, 0, 1)
	vi := vecmath.New(0, 0, 1)
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 200; i++ {
		vr := cosineHemisphereZ(rng.Float64(), rng.Float64())
		pdf := GetPDF(table, n, vr, vi, 0.4)
		if pdf < 0 {
			t.Errorf("GetPDF returned negative density %v", pdf)
		}
	}
}

func cosineHemisphereZ(u, v float64) vecmath.Vec3 {
	r := math.Sqrt(u)
	phi := 2 * math.Pi * v
	x := r * math.Cos(phi)
	y := r * math.Sin(phi)
	z := math.Sqrt(math.Max(0, 1-u))
	return vecmath.New(x, y, z)
}
