package kdtree

import (
	"math"
	"sort"

	"github.com/kestrel-render/raycore/pkg/vecmath"
)

// node is a build-phase kd-tree node, owned in a plain Go heap via pointers
// until Compress flattens the tree and discards it.
type node struct {
	bounds   vecmath.AABB
	indices  []int // leaf only
	axis     int
	splitPos float64
	left     *node
	right    *node
}

func (n *node) isLeaf() bool { return n.left == nil }

// Build constructs an SAH kd-tree over every primitive in prims.
func Build(prims PrimitiveSet) *node {
	n := prims.Len()
	bounds := vecmath.EmptyAABB()
	if n == 0 {
		return &node{bounds: bounds}
	}
	indices := make([]int, n)
	for i := 0; i < n; i++ {
		indices[i] = i
		bounds = bounds.Union(prims.Bounds(i))
	}
	maxDepth := int(math.Log2(float64(n))) + 8
	return subdivide(prims, indices, bounds, 0, maxDepth)
}

type bbEvent struct {
	pos         float64
	triangle    int
	isBeginType bool // true = BEGIN, false = END; BEGIN sorts before END at equal pos
}

func subdivide(prims PrimitiveSet, indices []int, bounds vecmath.AABB, depth, maxDepth int) *node {
	leaf := &node{bounds: bounds, indices: indices}
	n := len(indices)
	if depth >= maxDepth || n < 2 {
		return leaf
	}

	size := bounds.Size()
	sizes := [3]float64{size.X, size.Y, size.Z}
	axis := 0
	if sizes[1] > sizes[0] && sizes[1] >= sizes[2] {
		axis = 1
	} else if sizes[2] > sizes[0] && sizes[2] > sizes[1] {
		axis = 2
	}

	nosplitCost := IsectCost * float64(n)

	for attempt := 0; attempt < 3; attempt++ {
		a2, a3 := (axis+1)%3, (axis+2)%3
		lo, hi := bounds.AxisBounds(axis)
		loA2, hiA2 := bounds.AxisBounds(a2)
		loA3, hiA3 := bounds.AxisBounds(a3)
		sizeA2, sizeA3 := hiA2-loA2, hiA3-loA3
		totalSA := bounds.SurfaceArea()
		if totalSA <= 0 {
			axis = (axis + 1) % 3
			continue
		}
		invTotalSA := 1 / totalSA

		events := make([]bbEvent, 0, 2*n)
		for _, t := range indices {
			tLo, tHi := prims.Bounds(t).AxisBounds(axis)
			events = append(events, bbEvent{pos: tLo, triangle: t, isBeginType: true})
			events = append(events, bbEvent{pos: tHi, triangle: t, isBeginType: false})
		}
		sort.Slice(events, func(i, j int) bool {
			if events[i].pos != events[j].pos {
				return events[i].pos < events[j].pos
			}
			// BEGIN (true) sorts before END (false) at equal position.
			return events[i].isBeginType && !events[j].isBeginType
		})

		bestOffset := -1
		bestCost := math.Inf(1)
		bestPos := 0.0
		nBefore, nAfter := 0, n
		for i, ev := range events {
			if !ev.isBeginType {
				nAfter--
			}
			if ev.pos > lo && ev.pos < hi {
				below := 2 * (sizeA2*sizeA3 + (ev.pos-lo)*sizeA2 + (ev.pos-lo)*sizeA3)
				above := 2 * (sizeA2*sizeA3 + (hi-ev.pos)*sizeA2 + (hi-ev.pos)*sizeA3)
				pBefore := below * invTotalSA
				pAfter := above * invTotalSA
				bonus := 0.0
				if nBefore == 0 || nAfter == 0 {
					bonus = EmptyBonus
				}
				cost := TravCost + IsectCost*(1-bonus)*(pBefore*float64(nBefore)+pAfter*float64(nAfter))
				if cost < bestCost {
					bestCost = cost
					bestOffset = i
					bestPos = ev.pos
				}
			}
			if ev.isBeginType {
				nBefore++
			}
		}

		if bestOffset == -1 || bestCost > nosplitCost {
			axis = (axis + 1) % 3
			continue
		}

		var leftIdx, rightIdx []int
		for i := 0; i < bestOffset; i++ {
			if events[i].isBeginType {
				leftIdx = append(leftIdx, events[i].triangle)
			}
		}
		for i := bestOffset + 1; i < len(events); i++ {
			if !events[i].isBeginType {
				rightIdx = append(rightIdx, events[i].triangle)
			}
		}
		if len(leftIdx) == 0 || len(rightIdx) == 0 {
			axis = (axis + 1) % 3
			continue
		}

		leftBounds, rightBounds := bounds, bounds
		switch axis {
		case 0:
			leftBounds.Max.X, rightBounds.Min.X = bestPos, bestPos
		case 1:
			leftBounds.Max.Y, rightBounds.Min.Y = bestPos, bestPos
		case 2:
			leftBounds.Max.Z, rightBounds.Min.Z = bestPos, bestPos
		}

		return &node{
			bounds:   bounds,
			axis:     axis,
			splitPos: bestPos,
			left:     subdivide(prims, leftIdx, leftBounds, depth+1, maxDepth),
			right:    subdivide(prims, rightIdx, rightBounds, depth+1, maxDepth),
		}
	}

	return leaf
}

// Stats summarizes a build-phase tree; Compress uses it to size the
// compressed node and triangle-index arrays.
type Stats struct {
	Nodes, Leaves, Triangles int
}

func (n *node) stats() Stats {
	if n.isLeaf() {
		return Stats{Nodes: 1, Leaves: 1, Triangles: len(n.indices)}
	}
	l := n.left.stats()
	r := n.right.stats()
	return Stats{Nodes: l.Nodes + r.Nodes + 1, Leaves: l.Leaves + r.Leaves, Triangles: l.Triangles + r.Triangles}
}
