package geom

// HitResult is the shape-local result of a ray/shape test, before the
// wrapping Primitive turns it into a full Intersection.
type HitResult struct {
	T      float32
	Normal Vec3
	// Bary holds the barycentric weights of the hit point for shapes that
	// support per-vertex interpolation (triangles); it is the zero value
	// for shapes that don't (planes, spheres).
	Bary Vec3
}

// Shape is implemented by the primitives the accelerators can store:
// Plane, Sphere and Triangle.
type Shape interface {
	// Hit tests the ray against the shape, only accepting a root in
	// (epsilon, currentLength). self is the identity token of the
	// wrapping Primitive, used by Plane to reject self-intersection.
	Hit(ray Ray, currentLength float32, self PrimitiveRef) (HitResult, bool)

	BoundingBox() AABB
	Centroid() Vec3
	SurfaceArea() float32
}
