package accel

import "github.com/lumentrace/raytracer/geom"

// Naive scans the full primitive slice for every query.
type Naive[T geom.Shape] struct {
	prims []*geom.Primitive[T]
}

func NewNaive[T geom.Shape](prims []*geom.Primitive[T]) *Naive[T] {
	return &Naive[T]{prims: prims}
}

func (n *Naive[T]) Trace(hit *geom.Intersection, ray geom.Ray) bool {
	improved := false
	for _, p := range n.prims {
		if p.Intersect(hit, ray) {
			improved = true
		}
	}
	return improved
}

func (n *Naive[T]) ShadowTrace(hit *geom.Intersection, ray geom.Ray) bool {
	startLength := hit.Length
	for _, p := range n.prims {
		if p.Intersect(hit, ray) {
			return hit.Length < startLength
		}
	}
	return false
}

func (n *Naive[T]) Primitives() []*geom.Primitive[T] { return n.prims }
