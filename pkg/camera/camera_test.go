package camera

import (
	"math"
	"testing"

	"github.com/kestrel-render/raycore/pkg/vecmath"
)

func TestCenterRayPointsTowardLookAt(t *testing.T) {
	c := New(
		vecmath.New(0, 0, 0), vecmath.New(0, 0, -1), vecmath.New(0, 1, 0),
		1.0, 1.0, 1.0, 0,
	)

	// With an odd resolution, pixel 50's center sits exactly on the screen
	// center: (50+0.5)/101 == 0.5.
	ray := c.CenterRay(50, 50, 101, 101)
	expected := vecmath.New(0, 0, -1)

	if ray.Direction.Sub(expected).Length() > 1e-6 {
		t.Errorf("center ray direction = %v, want %v", ray.Direction, expected)
	}
}

func TestCenterRayOriginIsCameraPosition(t *testing.T) {
	pos := vecmath.New(278, 278, -800)
	c := New(pos, vecmath.New(278, 278, 0), vecmath.New(0, 1, 0), 0.5, 0.5, 800, 0)

	ray := c.CenterRay(200, 200, 400, 400)
	if ray.Origin.Sub(pos).Length() > 1e-9 {
		t.Errorf("center ray origin = %v, want %v", ray.Origin, pos)
	}
}

func TestGenerateRayWithLensStaysNearAxis(t *testing.T) {
	c := New(
		vecmath.New(0, 0, 0), vecmath.New(0, 0, -1), vecmath.New(0, 1, 0),
		1.0, 1.0, 1.0, 0.05,
	)

	for i := 0; i < 50; i++ {
		u := float64(i%7) / 7
		v := float64(i%5) / 5
		ray := c.GenerateRay(50, 50, 100, 100, u, v, v, u)
		if ray.Origin.Length() > 0.05+1e-9 {
			t.Fatalf("lens-offset ray origin too far from axis: %v", ray.Origin)
		}
	}
}

func TestProjectDirectionRoundTripsCenterRay(t *testing.T) {
	c := New(
		vecmath.New(0, 0, 0), vecmath.New(0, 0, -1), vecmath.New(0, 1, 0),
		1.0, 1.0, 1.0, 0,
	)

	ray := c.CenterRay(30, 70, 100, 100)
	px, py, ok := c.ProjectToPixel(ray.Direction, 100, 100)
	if !ok {
		t.Fatalf("ProjectToPixel rejected a ray generated from the same camera")
	}
	if abs(px-30) > 1 || abs(py-70) > 1 {
		t.Errorf("round-tripped pixel = (%d,%d), want near (30,70)", px, py)
	}
}

func TestProjectDirectionRejectsBackwardRay(t *testing.T) {
	c := New(
		vecmath.New(0, 0, 0), vecmath.New(0, 0, -1), vecmath.New(0, 1, 0),
		1.0, 1.0, 1.0, 0,
	)

	_, _, ok := c.ProjectDirection(vecmath.New(0, 0, 1))
	if ok {
		t.Errorf("ProjectDirection accepted a ray pointing away from the view screen")
	}
}

func TestViewScreenPointSpansExpectedExtent(t *testing.T) {
	c := New(
		vecmath.New(0, 0, 0), vecmath.New(0, 0, -1), vecmath.New(0, 1, 0),
		1.0, 1.0, 2.0, 0,
	)

	corner00 := c.ViewScreenPoint(0, 0)
	corner11 := c.ViewScreenPoint(1, 1)
	width := corner11.Sub(corner00).Length()
	if math.IsNaN(width) || width <= 0 {
		t.Errorf("view screen diagonal extent = %v, want a positive finite value", width)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
