// Package accel implements the pluggable acceleration strategies that
// answer closest-hit and any-hit queries over a set of primitives: no-op,
// naive linear scan, regular grid and a SAH-built BVH.
package accel

import "github.com/lumentrace/raytracer/geom"

// MaxLeafSize bounds the number of primitives stored in a single BVH leaf
// (spec section 3, "BVH").
const MaxLeafSize = 2

// TraversalStackDepth is the fixed depth of the explicit stack used during
// BVH traversal (spec section 4.4).
const TraversalStackDepth = 512

// GridResolution is the number of voxels per axis used by the regular grid
// (spec section 4.5).
const GridResolution = 32

// Kind enumerates the acceleration strategies a Shader driver can pick
// between at construction time.
type Kind int

const (
	KindNone Kind = iota
	KindNaiveLinear
	KindRegularGrid
	KindBVH
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNaiveLinear:
		return "naive-linear"
	case KindRegularGrid:
		return "regular-grid"
	case KindBVH:
		return "bvh"
	default:
		return "unknown"
	}
}

// Accelerator is the contract shared by every acceleration strategy.
// Trace may only decrease hit.Length. ShadowTrace is permitted to return
// as soon as hit.Length improves.
type Accelerator[T geom.Shape] interface {
	Trace(hit *geom.Intersection, ray geom.Ray) bool
	ShadowTrace(hit *geom.Intersection, ray geom.Ray) bool
	Primitives() []*geom.Primitive[T]
}

// Build constructs the accelerator of the requested kind over prims. The
// accelerator takes ownership of the slice; callers must not retain or
// mutate it afterwards.
func Build[T geom.Shape](kind Kind, prims []*geom.Primitive[T]) Accelerator[T] {
	switch kind {
	case KindNaiveLinear:
		return NewNaive(prims)
	case KindRegularGrid:
		return NewRegularGrid(prims)
	case KindBVH:
		return NewBVH(prims)
	default:
		return NewNone[T]()
	}
}
