package kdtree

import (
	"math"

	"github.com/kestrel-render/raycore/pkg/vecmath"
)

// leafTag marks the 2-bit discriminator value that means "leaf"; axis
// values 0,1,2 mean "internal node split on that axis".
const leafTag = 3

// compressedNode is an 8-byte depth-first flattened kd-tree record.
//
//   internal: wordA low 2 bits = split axis (0-2); wordA>>2 = index of the
//             right child (left child is always the immediate successor in
//             the node array). wordB = math.Float32bits(split position).
//   leaf:     wordA low 2 bits = leafTag; wordA>>2 = triangle count.
//             wordB = offset of the first triangle in the shared
//             triangle-index array.
type compressedNode struct {
	wordA uint32
	wordB uint32
}

func (n compressedNode) tag() uint32 { return n.wordA & 3 }
func (n compressedNode) isLeaf() bool { return n.tag() == leafTag }
func (n compressedNode) axis() int    { return int(n.tag()) }
func (n compressedNode) splitPos() float64 {
	return float64(math.Float32frombits(n.wordB))
}
func (n compressedNode) rightChild() int { return int(n.wordA >> 2) }
func (n compressedNode) leafCount() int  { return int(n.wordA >> 2) }
func (n compressedNode) leafOffset() int { return int(n.wordB) }

func internalNode(axis int, split float64, rightChild int) compressedNode {
	return compressedNode{
		wordA: uint32(axis) | uint32(rightChild)<<2,
		wordB: math.Float32bits(float32(split)),
	}
}

func leafNode(count, offset int) compressedNode {
	return compressedNode{
		wordA: leafTag | uint32(count)<<2,
		wordB: uint32(offset),
	}
}

// Tree is the compressed, read-only kd-tree returned by Compress. It owns
// two flat arrays (nodes, triangle indices) allocated once; no further
// heap allocation happens during traversal.
type Tree struct {
	nodes     []compressedNode
	triangles []int
	bounds    vecmath.AABB
}

// Bounds returns the scene-wide AABB the tree was built over.
func (t *Tree) Bounds() vecmath.AABB { return t.bounds }

// Compress flattens a build tree (from Build) into a depth-first,
// left-first array representation and discards the build tree.
func Compress(root *node) *Tree {
	if root == nil {
		return &Tree{}
	}
	st := root.stats()
	t := &Tree{
		nodes:     make([]compressedNode, 0, st.Nodes),
		triangles: make([]int, 0, st.Triangles),
		bounds:    root.bounds,
	}
	compressRec(root, t)
	return t
}

func compressRec(n *node, t *Tree) int {
	myPos := len(t.nodes)
	if n.isLeaf() {
		offset := len(t.triangles)
		t.triangles = append(t.triangles, n.indices...)
		t.nodes = append(t.nodes, leafNode(len(n.indices), offset))
		return myPos
	}
	// Reserve this node's slot before recursing so left child lands at
	// myPos+1 as the compressed layout requires.
	t.nodes = append(t.nodes, compressedNode{})
	compressRec(n.left, t)
	rightPos := compressRec(n.right, t)
	t.nodes[myPos] = internalNode(n.axis, n.splitPos, rightPos)
	return myPos
}

// NodeCount returns the number of compressed nodes, for statistics and
// tests bounding build quality.
func (t *Tree) NodeCount() int { return len(t.nodes) }

// TriangleRefCount returns the total number of (possibly duplicated)
// triangle references across all leaves.
func (t *Tree) TriangleRefCount() int { return len(t.triangles) }
