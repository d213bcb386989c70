package radiance

import (
	"math"
	"testing"
)

func TestClampDisabledWhenNonPositive(t *testing.T) {
	s := New(10, 20, 30)
	got := s.Clamp(0)
	if got != s {
		t.Errorf("Clamp(0) = %v, want unclamped %v", got, s)
	}
}

func TestClampBounds(t *testing.T) {
	s := New(-1, 2, 10)
	got := s.Clamp(5)
	want := New(0, 2, 5)
	if got != want {
		t.Errorf("Clamp(5) = %v, want %v", got, want)
	}
}

func TestSanitizeNonNegative(t *testing.T) {
	s := New(math.NaN(), -3, 2)
	got := s.SanitizeNonNegative()
	if got.R != 0 || got.G != 0 || got.B != 2 {
		t.Errorf("SanitizeNonNegative() = %v, want {0 0 2}", got)
	}
}

func TestColorRoundTrip(t *testing.T) {
	s := New(0.25, 0.5, 0.75)
	back := s.ToColor().ToSpectrum()
	const tol = 1e-9
	if math.Abs(back.R-s.R) > tol || math.Abs(back.G-s.G) > tol || math.Abs(back.B-s.B) > tol {
		t.Errorf("round trip = %v, want %v", back, s)
	}
}
