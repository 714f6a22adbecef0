package geom

// Triangle stores the three vertex positions. Per-vertex normals and
// tex-coords live on the wrapping Primitive[Triangle], not here.
type Triangle struct {
	V [3]Vec3
}

func NewTriangle(a, b, c Vec3) Triangle {
	return Triangle{V: [3]Vec3{a, b, c}}
}

// Hit implements Moller-Trumbore, accepting backfaces on both sides (spec
// section 4.1). Bary holds (1-u-v, u, v), the weights of V[0], V[1] and
// V[2] in that order.
func (tr Triangle) Hit(ray Ray, currentLength float32, self PrimitiveRef) (HitResult, bool) {
	e1 := tr.V[1].Sub(tr.V[0])
	e2 := tr.V[2].Sub(tr.V[0])

	pvec := ray.Dir.Cross(e2)
	det := e1.Dot(pvec)
	if det > -epsilon && det < epsilon {
		return HitResult{}, false
	}
	invDet := 1.0 / det

	tvec := ray.Origin.Sub(tr.V[0])
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return HitResult{}, false
	}

	qvec := tvec.Cross(e1)
	v := ray.Dir.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return HitResult{}, false
	}

	t := e2.Dot(qvec) * invDet
	if t < epsilon || t >= currentLength {
		return HitResult{}, false
	}

	normal := e1.Cross(e2).Normalize()
	return HitResult{
		T:      t,
		Normal: normal,
		Bary:   Vec3{1 - u - v, u, v},
	}, true
}

func (tr Triangle) BoundingBox() AABB {
	box := AABB{Min: tr.V[0], Max: tr.V[0]}
	box = box.ExtendPoint(tr.V[1])
	box = box.ExtendPoint(tr.V[2])
	return box
}

func (tr Triangle) Centroid() Vec3 {
	return tr.V[0].Add(tr.V[1]).Add(tr.V[2]).Mul(1.0 / 3.0)
}

func (tr Triangle) SurfaceArea() float32 {
	e1 := tr.V[1].Sub(tr.V[0])
	e2 := tr.V[2].Sub(tr.V[0])
	return e1.Cross(e2).Len() * 0.5
}

// SamplePoint returns a point on the triangle for barycentric weights
// (u, v), used by AreaLight sampling.
func (tr Triangle) SamplePoint(u, v float32) Vec3 {
	if u+v > 1 {
		u, v = 1-u, 1-v
	}
	w := 1 - u - v
	return tr.V[0].Mul(w).Add(tr.V[1].Mul(u)).Add(tr.V[2].Mul(v))
}
