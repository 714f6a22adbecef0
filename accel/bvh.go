package accel

import (
	"math"
	"sort"

	"github.com/lumentrace/raytracer/geom"
)

// BVHNode is a single node in the flat BVH array. A leaf has
// NumPrimitives > 0 and addresses Prims[IndexOffset:IndexOffset+NumPrimitives].
// An inner node has NumPrimitives == 0 and children at IndexOffset and
// IndexOffset+1.
type BVHNode struct {
	Box           geom.AABB
	IndexOffset   int32
	NumPrimitives int32
}

// BVH is a Surface-Area-Heuristic bounding volume hierarchy.
type BVH[T geom.Shape] struct {
	nodes []BVHNode
	prims []*geom.Primitive[T]
}

type buildItem struct {
	box           geom.AABB
	centroid      geom.Vec3
	originalIndex int
}

type stackRange struct {
	nodeIndex  int
	begin, end int
}

// NewBVH builds a BVH over prims using the iterative stack-based SAH
// algorithm described in spec section 4.3. The BVH stores a reordered copy
// of the primitive pointers matching leaf ranges; the order of the prims
// slice passed in is left unchanged.
func NewBVH[T geom.Shape](prims []*geom.Primitive[T]) *BVH[T] {
	n := len(prims)
	if n == 0 {
		return &BVH[T]{nodes: []BVHNode{{}}, prims: prims}
	}

	items := make([]buildItem, n)
	for i, p := range prims {
		items[i] = buildItem{box: p.BoundingBox(), centroid: p.Centroid(), originalIndex: i}
	}

	nodes := make([]BVHNode, 1, 2*n-1)
	maxNodeIndex := 0

	stack := make([]stackRange, 0, 64)
	stack = append(stack, stackRange{nodeIndex: 0, begin: 0, end: n})

	for len(stack) > 0 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		rangeSize := r.end - r.begin

		centroidBox := geom.EmptyAABB()
		for i := r.begin; i < r.end; i++ {
			centroidBox = centroidBox.ExtendPoint(items[i].centroid)
		}
		_, axis := centroidBox.Extent().MaxComponent()

		sort.Slice(items[r.begin:r.end], func(i, j int) bool {
			return items[r.begin+i].centroid.Component(axis) < items[r.begin+j].centroid.Component(axis)
		})

		unionBox := geom.EmptyAABB()
		for i := r.begin; i < r.end; i++ {
			unionBox = unionBox.Union(items[i].box)
		}

		if rangeSize <= MaxLeafSize {
			nodes[r.nodeIndex] = BVHNode{Box: unionBox, IndexOffset: int32(r.begin), NumPrimitives: int32(rangeSize)}
			continue
		}

		splitAt := sahSplit(items, r.begin, r.end)

		leftNode := maxNodeIndex + 1
		rightNode := maxNodeIndex + 2
		maxNodeIndex += 2
		for len(nodes) <= rightNode {
			nodes = append(nodes, BVHNode{})
		}

		nodes[r.nodeIndex] = BVHNode{Box: unionBox, IndexOffset: int32(leftNode), NumPrimitives: 0}

		// Push the right range, then recurse into the left range: since
		// this is a stack, pushing right first means left pops next.
		stack = append(stack, stackRange{nodeIndex: rightNode, begin: splitAt, end: r.end})
		stack = append(stack, stackRange{nodeIndex: leftNode, begin: r.begin, end: splitAt})
	}

	nodes = nodes[:maxNodeIndex+1]

	reordered := make([]*geom.Primitive[T], n)
	for i, it := range items {
		reordered[i] = prims[it.originalIndex]
	}

	return &BVH[T]{nodes: nodes, prims: reordered}
}

// sahSplit computes the SAH-minimizing split point for items[begin:end],
// assumed already sorted along the split axis, and returns the split
// index (items[begin:splitAt] goes to the left child, items[splitAt:end]
// to the right). Ties break to the smallest k.
func sahSplit(items []buildItem, begin, end int) (splitAt int) {
	rangeSize := end - begin

	leftArea := make([]float32, rangeSize)
	running := geom.EmptyAABB()
	for i := 0; i < rangeSize; i++ {
		running = running.Union(items[begin+i].box)
		leftArea[i] = running.SurfaceArea()
	}

	rightArea := make([]float32, rangeSize)
	running = geom.EmptyAABB()
	for i := rangeSize - 1; i >= 0; i-- {
		running = running.Union(items[begin+i].box)
		rightArea[i] = running.SurfaceArea()
	}

	bestK := 1
	bestCost := float32(math.Inf(1))
	for k := 1; k < rangeSize; k++ {
		cost := float32(k)*leftArea[k-1] + float32(rangeSize-k)*rightArea[k]
		if cost < bestCost {
			bestCost = cost
			bestK = k
		}
	}

	return begin + bestK
}

// Trace implements the closest-hit query described in spec section 4.4.
func (b *BVH[T]) Trace(hit *geom.Intersection, ray geom.Ray) bool {
	if len(b.nodes) == 0 {
		return false
	}

	var stack [TraversalStackDepth]int32
	sp := 1
	stack[0] = 0

	improved := false
	for sp > 0 {
		sp--
		node := &b.nodes[stack[sp]]

		if !boxHit(node.Box, ray, hit.Length) {
			continue
		}

		if node.NumPrimitives > 0 {
			for i := node.IndexOffset; i < node.IndexOffset+node.NumPrimitives; i++ {
				if b.prims[i].Intersect(hit, ray) {
					improved = true
				}
			}
			continue
		}

		leftIdx, rightIdx := node.IndexOffset, node.IndexOffset+1
		leftHit := boxHit(b.nodes[leftIdx].Box, ray, hit.Length)
		rightHit := boxHit(b.nodes[rightIdx].Box, ray, hit.Length)

		sp = pushChild(stack[:], sp, rightIdx, rightHit)
		sp = pushChild(stack[:], sp, leftIdx, leftHit)
	}

	return improved
}

// ShadowTrace implements the any-hit query described in spec section 4.4,
// returning as soon as a leaf primitive improves hit.Length.
func (b *BVH[T]) ShadowTrace(hit *geom.Intersection, ray geom.Ray) bool {
	if len(b.nodes) == 0 {
		return false
	}

	var stack [TraversalStackDepth]int32
	sp := 1
	stack[0] = 0

	for sp > 0 {
		sp--
		node := &b.nodes[stack[sp]]

		if !boxHit(node.Box, ray, hit.Length) {
			continue
		}

		if node.NumPrimitives > 0 {
			for i := node.IndexOffset; i < node.IndexOffset+node.NumPrimitives; i++ {
				if b.prims[i].Intersect(hit, ray) {
					return true
				}
			}
			continue
		}

		leftIdx, rightIdx := node.IndexOffset, node.IndexOffset+1
		leftHit := boxHit(b.nodes[leftIdx].Box, ray, hit.Length)
		rightHit := boxHit(b.nodes[rightIdx].Box, ray, hit.Length)

		sp = pushChild(stack[:], sp, rightIdx, rightHit)
		sp = pushChild(stack[:], sp, leftIdx, leftHit)
	}

	return false
}

func (b *BVH[T]) Primitives() []*geom.Primitive[T] { return b.prims }

// Nodes exposes the flat node array, used by tests to check BVH invariants.
func (b *BVH[T]) Nodes() []BVHNode { return b.nodes }

func boxHit(box geom.AABB, ray geom.Ray, currentLength float32) bool {
	_, _, ok := box.Hit(ray, 1e-4, currentLength)
	return ok
}

// pushChild pushes nodeIndex onto the stack if hit is true, panicking if
// doing so would overflow the fixed-depth traversal stack — an
// implementation limit that must never be hit for bounded BVH inputs
// (spec section 7, item 6).
func pushChild(stack []int32, sp int, nodeIndex int32, hit bool) int {
	if !hit {
		return sp
	}
	if sp >= len(stack) {
		panic("accel: BVH traversal stack overflow")
	}
	stack[sp] = nodeIndex
	return sp + 1
}
