package sampler

import (
	"math"
	"math/rand"
	"testing"

	"github.com/kestrel-render/raycore/pkg/vecmath"
)

func TestSample2DToDiscUniformStaysInDisc(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		p := Sample2DToDiscUniform(rng.Float64(), rng.Float64())
		if p.X*p.X+p.Y*p.Y > 1+1e-9 {
			t.Fatalf("disc sample %v outside unit disc", p)
		}
	}
}

func TestSample2DToHemisphereUniformZMeanZ(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	const n = 20000
	var sumZ, sumLenSq float64
	for i := 0; i < n; i++ {
		d := Sample2DToHemisphereUniformZ(rng.Float64(), rng.Float64())
		if d.Z < 0 {
			t.Fatalf("uniform hemisphere sample below equator: %v", d)
		}
		sumZ += d.Z
		sumLenSq += d.LengthSquared()
	}
	// E[z] over a uniform hemisphere is 1/2.
	if got, want := sumZ/n, 0.5; math.Abs(got-want) > 0.02 {
		t.Errorf("E[z] = %v, want ~%v", got, want)
	}
	if got, want := sumLenSq/n, 1.0; math.Abs(got-want) > 1e-6 {
		t.Errorf("E[d.d] = %v, want %v (unit vectors)", got, want)
	}
}

func TestSample2DToHemisphereCosineZMeanZ(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	const n = 20000
	var sumZ float64
	for i := 0; i < n; i++ {
		d := Sample2DToHemisphereCosineZ(rng.Float64(), rng.Float64())
		if d.Z < 0 {
			t.Fatalf("cosine hemisphere sample below equator: %v", d)
		}
		sumZ += d.Z
	}
	// E[z] over a cosine-weighted hemisphere is 2/3.
	if got, want := sumZ/n, 2.0/3.0; math.Abs(got-want) > 0.02 {
		t.Errorf("E[z] = %v, want ~%v", got, want)
	}
}

func TestSample2DToSphereUniformMeanIsOrigin(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	const n = 20000
	var sum vecmath.Vec3
	var sumLenSq float64
	for i := 0; i < n; i++ {
		d := Sample2DToSphereUniform(rng.Float64(), rng.Float64())
		sum = sum.Add(d)
		sumLenSq += d.LengthSquared()
	}
	mean := sum.Scale(1 / float64(n))
	if mean.Length() > 0.02 {
		t.Errorf("E[d] = %v, want ~0", mean)
	}
	if got, want := sumLenSq/n, 1.0; math.Abs(got-want) > 1e-6 {
		t.Errorf("E[d.d] = %v, want %v", got, want)
	}
}

func TestSample1DToRange(t *testing.T) {
	if got := Sample1DToRange(0.5, 10, 20); got != 15 {
		t.Errorf("Sample1DToRange(0.5,10,20) = %v, want 15", got)
	}
	if got := Sample1DToRange(0, -5, 5); got != -5 {
		t.Errorf("Sample1DToRange(0,-5,5) = %v, want -5", got)
	}
}
