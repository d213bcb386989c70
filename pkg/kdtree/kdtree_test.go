package kdtree

import (
	"math/rand"
	"testing"

	"github.com/kestrel-render/raycore/pkg/vecmath"
)

// sphereSet is a tiny axis-aligned-box PrimitiveSet/Intersector test fixture:
// primitive i is a box of side 0.2 centered at centers[i], intersected as a slab.
type sphereSet struct {
	centers []vecmath.Vec3
}

func (s sphereSet) Len() int { return len(s.centers) }
func (s sphereSet) Bounds(i int) vecmath.AABB {
	c := s.centers[i]
	half := vecmath.New(0.1, 0.1, 0.1)
	return vecmath.AABB{Min: c.Sub(half), Max: c.Add(half)}
}
func (s sphereSet) Intersect(i int, origin, direction vecmath.Vec3, tMin, tMax float64) (float64, bool) {
	t0, _, ok := s.Bounds(i).IntersectSlab(origin, direction, tMin, tMax)
	if !ok || t0 < 0 {
		return 0, false
	}
	return t0, true
}
func (s sphereSet) ThinGlass(i int) bool { return false }

func buildRandomSet(n int, seed int64) sphereSet {
	rng := rand.New(rand.NewSource(seed))
	centers := make([]vecmath.Vec3, n)
	for i := range centers {
		centers[i] = vecmath.New(rng.Float64()*10-5, rng.Float64()*10-5, rng.Float64()*10-5)
	}
	return sphereSet{centers: centers}
}

func bruteForce(s sphereSet, origin, direction vecmath.Vec3, tMin, tMax float64) (Hit, bool) {
	best := Hit{}
	found := false
	bestT := tMax
	for i := 0; i < s.Len(); i++ {
		if t, ok := s.Intersect(i, origin, direction, tMin, bestT); ok && t < bestT {
			bestT = t
			best = Hit{Index: i, T: t}
			found = true
		}
	}
	return best, found
}

func TestBuildCompressNodeCountBound(t *testing.T) {
	set := buildRandomSet(2000, 1)
	tree := Compress(Build(set))
	if tree.NodeCount() > 4*set.Len() {
		t.Errorf("NodeCount = %d, want <= %d", tree.NodeCount(), 4*set.Len())
	}
}

func TestIntersectMatchesBruteForce(t *testing.T) {
	set := buildRandomSet(500, 2)
	tree := Compress(Build(set))
	rng := rand.New(rand.NewSource(3))

	mismatches := 0
	const trials = 200
	for i := 0; i < trials; i++ {
		origin := vecmath.New(rng.Float64()*10-5, rng.Float64()*10-5, rng.Float64()*10-5)
		dir := vecmath.New(rng.Float64()*2-1, rng.Float64()*2-1, rng.Float64()*2-1).Normalize()

		got, gotOK := tree.Intersect(set, origin, dir, 0, 1e30, 1e-6)
		want, wantOK := bruteForce(set, origin, dir, 0, 1e30)

		if gotOK != wantOK {
			mismatches++
			continue
		}
		if gotOK && abs(got.T-want.T) > 1e-4 {
			mismatches++
		}
	}
	if mismatches > trials/100 { // allow rare float-tolerance edge misses
		t.Errorf("%d/%d rays disagreed with brute force", mismatches, trials)
	}
}

func TestIntersectAnyFindsSomething(t *testing.T) {
	set := sphereSet{centers: []vecmath.Vec3{vecmath.New(0, 0, 5)}}
	tree := Compress(Build(set))
	hit := tree.IntersectAny(set, vecmath.New(0, 0, 0), vecmath.New(0, 0, 1), 0, 1e30)
	if !hit {
		t.Errorf("IntersectAny missed a box directly ahead")
	}
}

func TestEmptySceneAlwaysMisses(t *testing.T) {
	set := sphereSet{}
	tree := Compress(Build(set))
	_, ok := tree.Intersect(set, vecmath.New(0, 0, 0), vecmath.New(0, 0, 1), 0, 1e30, 1e-6)
	if ok {
		t.Errorf("empty scene should never report a hit")
	}
}
