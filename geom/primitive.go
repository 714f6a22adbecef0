package geom

// NoTexCoord is the sentinel tex-coord meaning "this primitive carries no
// texture mapping" (spec section 3, "Primitive<T>").
var NoTexCoord = Vec2{-1, -1}

// Primitive wraps a shape with a material index and optional per-vertex
// normals/tex-coords. Only Triangle uses the per-vertex slots for
// barycentric interpolation; Plane and Sphere are built with NewPrimitive,
// which supplies no per-vertex data, and Intersect falls back to the
// shape's own analytic normal and NoTexCoord.
type Primitive[T Shape] struct {
	Shape         T
	MaterialIndex int
	Normals       [3]Vec3
	TexCoords     [3]Vec2

	// hasVertexData is set when Normals/TexCoords were supplied by the
	// loader, distinguishing "flat shape, no per-vertex data" from a
	// genuine all-zero normal.
	hasVertexData bool
}

// NewPrimitive wraps shape with a material index and no per-vertex data.
func NewPrimitive[T Shape](shape T, materialIndex int) *Primitive[T] {
	return &Primitive[T]{
		Shape:         shape,
		MaterialIndex: materialIndex,
		TexCoords:     [3]Vec2{NoTexCoord, NoTexCoord, NoTexCoord},
	}
}

// NewTrianglePrimitive wraps a triangle with per-vertex normals/tex-coords.
func NewTrianglePrimitive(tri Triangle, materialIndex int, normals [3]Vec3, texCoords [3]Vec2) *Primitive[Triangle] {
	return &Primitive[Triangle]{
		Shape:         tri,
		MaterialIndex: materialIndex,
		Normals:       normals,
		TexCoords:     texCoords,
		hasVertexData: true,
	}
}

func (p *Primitive[T]) BoundingBox() AABB   { return p.Shape.BoundingBox() }
func (p *Primitive[T]) Centroid() Vec3      { return p.Shape.Centroid() }
func (p *Primitive[T]) SurfaceArea() float32 { return p.Shape.SurfaceArea() }

// Intersect updates hit in place iff the shape is hit closer than
// hit.Length, returning whether it did so.
func (p *Primitive[T]) Intersect(hit *Intersection, ray Ray) bool {
	res, ok := p.Shape.Hit(ray, hit.Length, p)
	if !ok || res.T >= hit.Length {
		return false
	}

	hit.Length = res.T
	hit.Point = ray.PointAt(res.T)
	hit.Primitive = p
	hit.MaterialIndex = p.MaterialIndex

	if p.hasVertexData {
		bary := res.Bary
		hit.Normal = p.Normals[0].Mul(bary[0]).Add(p.Normals[1].Mul(bary[1])).Add(p.Normals[2].Mul(bary[2])).Normalize()
		hit.TexCoord = p.TexCoords[0].Mul(bary[0]).Add(p.TexCoords[1].Mul(bary[1])).Add(p.TexCoords[2].Mul(bary[2]))
	} else {
		hit.Normal = res.Normal
		hit.TexCoord = NoTexCoord
	}

	return true
}

// Overlaps reports whether the primitive's bounding box overlaps box.
func (p *Primitive[T]) Overlaps(box AABB) bool {
	return p.BoundingBox().Overlaps(box)
}
