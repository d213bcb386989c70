package kdtree

import "github.com/kestrel-render/raycore/pkg/vecmath"

// defaultEpsilon is a fallback slop around a leaf's [tmin,tmax] window.
// Intersect and IntersectThinGlass take the caller's epsilon as a
// parameter and do not read this constant.
const defaultEpsilon = 1e-5

type stackEntry struct {
	node       int
	tmin, tmax float64
}

// Intersect returns the closest accepted hit along the ray, or ok=false on
// a miss. eps is the caller's adaptive intersection epsilon.
func (t *Tree) Intersect(isect Intersector, origin, direction vecmath.Vec3, tMin, tMax, eps float64) (Hit, bool) {
	if len(t.nodes) == 0 {
		return Hit{}, false
	}
	t0, t1, ok := t.bounds.IntersectSlab(origin, direction, tMin, tMax)
	if !ok {
		return Hit{}, false
	}

	var stack [128]stackEntry
	sp := 0
	stack[sp] = stackEntry{node: 0, tmin: t0, tmax: t1}
	sp++

	best := Hit{}
	found := false
	bestT := tMax

	for sp > 0 {
		sp--
		entry := stack[sp]
		if bestT < entry.tmin {
			continue
		}
		n := t.nodes[entry.node]
		if n.isLeaf() {
			offset, count := n.leafOffset(), n.leafCount()
			for i := 0; i < count; i++ {
				tri := t.triangles[offset+i]
				if hitT, ok := isect.Intersect(tri, origin, direction, entry.tmin-eps, entry.tmax+eps); ok {
					if hitT < bestT {
						bestT = hitT
						best = Hit{Index: tri, T: hitT}
						found = true
					}
				}
			}
			continue
		}

		axis := n.axis()
		split := n.splitPos()
		o := origin.Component(axis)
		d := direction.Component(axis)

		left := entry.node + 1
		right := n.rightChild()
		firstChild, secondChild := left, right
		if o > split || (o == split && d > 0) {
			firstChild, secondChild = right, left
		}

		if d == 0 {
			stack[sp] = stackEntry{node: firstChild, tmin: entry.tmin, tmax: entry.tmax}
			sp++
			continue
		}
		tplane := (split - o) / d

		if tplane > entry.tmax || tplane <= 0 {
			stack[sp] = stackEntry{node: firstChild, tmin: entry.tmin, tmax: entry.tmax}
			sp++
		} else if tplane < entry.tmin {
			stack[sp] = stackEntry{node: secondChild, tmin: entry.tmin, tmax: entry.tmax}
			sp++
		} else {
			stack[sp] = stackEntry{node: secondChild, tmin: tplane, tmax: entry.tmax}
			sp++
			stack[sp] = stackEntry{node: firstChild, tmin: entry.tmin, tmax: tplane}
			sp++
		}
	}

	return best, found
}

// IntersectAny returns true as soon as any triangle accepts the ray,
// without epsilon slop, for shadow/visibility queries.
func (t *Tree) IntersectAny(isect Intersector, origin, direction vecmath.Vec3, tMin, tMax float64) bool {
	if len(t.nodes) == 0 {
		return false
	}
	t0, t1, ok := t.bounds.IntersectSlab(origin, direction, tMin, tMax)
	if !ok {
		return false
	}

	var stack [128]stackEntry
	sp := 0
	stack[sp] = stackEntry{node: 0, tmin: t0, tmax: t1}
	sp++

	for sp > 0 {
		sp--
		entry := stack[sp]
		n := t.nodes[entry.node]
		if n.isLeaf() {
			offset, count := n.leafOffset(), n.leafCount()
			for i := 0; i < count; i++ {
				tri := t.triangles[offset+i]
				if _, ok := isect.Intersect(tri, origin, direction, entry.tmin, entry.tmax); ok {
					return true
				}
			}
			continue
		}

		axis := n.axis()
		split := n.splitPos()
		o := origin.Component(axis)
		d := direction.Component(axis)

		left := entry.node + 1
		right := n.rightChild()
		firstChild, secondChild := left, right
		if o > split || (o == split && d > 0) {
			firstChild, secondChild = right, left
		}

		if d == 0 {
			stack[sp] = stackEntry{node: firstChild, tmin: entry.tmin, tmax: entry.tmax}
			sp++
			continue
		}
		tplane := (split - o) / d

		if tplane > entry.tmax || tplane <= 0 {
			stack[sp] = stackEntry{node: firstChild, tmin: entry.tmin, tmax: entry.tmax}
			sp++
		} else if tplane < entry.tmin {
			stack[sp] = stackEntry{node: secondChild, tmin: entry.tmin, tmax: entry.tmax}
			sp++
		} else {
			stack[sp] = stackEntry{node: secondChild, tmin: tplane, tmax: entry.tmax}
			sp++
			stack[sp] = stackEntry{node: firstChild, tmin: entry.tmin, tmax: tplane}
			sp++
		}
	}
	return false
}

// IntersectThinGlass walks exactly like Intersect but never stops at a
// thin-glass triangle; every such crossing is appended to out (deduplicated
// by t within eps) while the search for the first non-thin-glass hit
// continues. It returns that hit, if any.
func (t *Tree) IntersectThinGlass(isect Intersector, origin, direction vecmath.Vec3, tMin, tMax, eps float64, out *[]Hit) (Hit, bool) {
	if len(t.nodes) == 0 {
		return Hit{}, false
	}
	t0, t1, ok := t.bounds.IntersectSlab(origin, direction, tMin, tMax)
	if !ok {
		return Hit{}, false
	}

	var stack [128]stackEntry
	sp := 0
	stack[sp] = stackEntry{node: 0, tmin: t0, tmax: t1}
	sp++

	best := Hit{}
	found := false
	bestT := tMax

	appendCrossing := func(h Hit) {
		for _, existing := range *out {
			if abs(existing.T-h.T) < eps {
				return
			}
		}
		*out = append(*out, h)
	}

	for sp > 0 {
		sp--
		entry := stack[sp]
		if bestT < entry.tmin {
			continue
		}
		n := t.nodes[entry.node]
		if n.isLeaf() {
			offset, count := n.leafOffset(), n.leafCount()
			for i := 0; i < count; i++ {
				tri := t.triangles[offset+i]
				hitT, ok := isect.Intersect(tri, origin, direction, entry.tmin-eps, entry.tmax+eps)
				if !ok {
					continue
				}
				if isect.ThinGlass(tri) {
					appendCrossing(Hit{Index: tri, T: hitT})
					continue
				}
				if hitT < bestT {
					bestT = hitT
					best = Hit{Index: tri, T: hitT}
					found = true
				}
			}
			continue
		}

		axis := n.axis()
		split := n.splitPos()
		o := origin.Component(axis)
		d := direction.Component(axis)

		left := entry.node + 1
		right := n.rightChild()
		firstChild, secondChild := left, right
		if o > split || (o == split && d > 0) {
			firstChild, secondChild = right, left
		}

		if d == 0 {
			stack[sp] = stackEntry{node: firstChild, tmin: entry.tmin, tmax: entry.tmax}
			sp++
			continue
		}
		tplane := (split - o) / d

		if tplane > entry.tmax || tplane <= 0 {
			stack[sp] = stackEntry{node: firstChild, tmin: entry.tmin, tmax: entry.tmax}
			sp++
		} else if tplane < entry.tmin {
			stack[sp] = stackEntry{node: secondChild, tmin: entry.tmin, tmax: entry.tmax}
			sp++
		} else {
			stack[sp] = stackEntry{node: secondChild, tmin: tplane, tmax: entry.tmax}
			sp++
			stack[sp] = stackEntry{node: firstChild, tmin: entry.tmin, tmax: tplane}
			sp++
		}
	}

	return best, found
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
