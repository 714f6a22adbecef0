package geom

import "math"

// PrimitiveRef is an opaque identity token for a shape, used only for
// self-intersection avoidance on planes (spec section 3, "Ray").
type PrimitiveRef interface{}

// Ray is immutable once constructed.
type Ray struct {
	Origin Vec3
	Dir    Vec3 // unit-normalized

	// Depth is the current bounce depth; -1 is used by callers that don't
	// track depth at all.
	Depth int

	ID uint64

	// FromPrimitive is the primitive the ray left from, used by planes to
	// reject self-intersection.
	FromPrimitive PrimitiveRef
}

// NewRay builds a ray, normalizing its direction.
func NewRay(origin, dir Vec3, depth int, id uint64, originatingPrimitive PrimitiveRef) Ray {
	return Ray{
		Origin:        origin,
		Dir:           dir.Normalize(),
		Depth:         depth,
		ID:            id,
		FromPrimitive: originatingPrimitive,
	}
}

// PointAt evaluates the ray at parameter t.
func (r Ray) PointAt(t float32) Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// Intersection records a ray/shape hit. The miss sentinel has Length set to
// +Inf and Primitive set to nil.
type Intersection struct {
	Point         Vec3
	Length        float32
	Normal        Vec3
	Primitive     PrimitiveRef
	MaterialIndex int
	TexCoord      Vec2
}

// Miss returns the sentinel "no hit" intersection.
func Miss() Intersection {
	return Intersection{Length: float32(math.Inf(1)), MaterialIndex: -1, TexCoord: Vec2{-1, -1}}
}

func (h Intersection) IsHit() bool {
	return h.Primitive != nil
}
