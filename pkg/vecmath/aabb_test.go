package vecmath

import "testing"

func TestAABBUnionAndSurfaceArea(t *testing.T) {
	a := NewAABBFromPoints(New(0, 0, 0), New(1, 1, 1))
	b := NewAABBFromPoints(New(2, 0, 0), New(3, 1, 1))
	u := a.Union(b)
	want := AABB{Min: New(0, 0, 0), Max: New(3, 1, 1)}
	if u != want {
		t.Fatalf("Union = %v, want %v", u, want)
	}
	if got, want := a.SurfaceArea(), 6.0; got != want {
		t.Errorf("SurfaceArea = %v, want %v", got, want)
	}
}

func TestAABBLongestAxis(t *testing.T) {
	b := NewAABBFromPoints(New(0, 0, 0), New(5, 1, 2))
	if got := b.LongestAxis(); got != 0 {
		t.Errorf("LongestAxis = %d, want 0", got)
	}
}

func TestAABBIntersectSlabHitAndMiss(t *testing.T) {
	b := NewAABBFromPoints(New(-1, -1, -1), New(1, 1, 1))
	t0, t1, ok := b.IntersectSlab(New(-5, 0, 0), New(1, 0, 0), 0, 1e30)
	if !ok || t0 != 4 || t1 != 6 {
		t.Errorf("IntersectSlab hit = (%v,%v,%v), want (4,6,true)", t0, t1, ok)
	}
	_, _, ok = b.IntersectSlab(New(-5, 5, 0), New(1, 0, 0), 0, 1e30)
	if ok {
		t.Errorf("IntersectSlab should miss a parallel ray outside the slab")
	}
}
