package accel

import "github.com/lumentrace/raytracer/geom"

// None is the vacant accelerator used for the "none" kind and for shape
// buckets that a scene simply doesn't populate.
type None[T geom.Shape] struct{}

func NewNone[T geom.Shape]() *None[T] { return &None[T]{} }

func (n *None[T]) Trace(hit *geom.Intersection, ray geom.Ray) bool       { return false }
func (n *None[T]) ShadowTrace(hit *geom.Intersection, ray geom.Ray) bool { return false }
func (n *None[T]) Primitives() []*geom.Primitive[T]                     { return nil }
