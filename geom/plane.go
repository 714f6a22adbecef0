package geom

// planeExtent is the half-size of the synthetic AABB generated for planes,
// which have no natural bounds (spec section 4.1).
const planeExtent float32 = 100

// Plane is an infinite plane defined by a point on the plane and a unit
// normal.
type Plane struct {
	Anchor Vec3
	Normal Vec3
}

func NewPlane(anchor, normal Vec3) Plane {
	return Plane{Anchor: anchor, Normal: normal.Normalize()}
}

func (p Plane) Hit(ray Ray, currentLength float32, self PrimitiveRef) (HitResult, bool) {
	if ray.FromPrimitive != nil && ray.FromPrimitive == self {
		return HitResult{}, false
	}

	denom := p.Normal.Dot(ray.Dir)
	if denom > -epsilon && denom < epsilon {
		return HitResult{}, false
	}

	t := p.Normal.Dot(p.Anchor.Sub(ray.Origin)) / denom
	if t < epsilon || t >= currentLength {
		return HitResult{}, false
	}

	return HitResult{T: t, Normal: p.Normal}, true
}

// BoundingBox returns a synthetic square around the anchor point, spanned
// by the two axes orthogonal to the normal.
func (p Plane) BoundingBox() AABB {
	_, axis := absMaxComponent(p.Normal)
	u, v := orthogonalAxes(axis)

	extent := u.Mul(planeExtent).Add(v.Mul(planeExtent))
	return AABB{
		Min: p.Anchor.Sub(extent).Sub(Vec3{epsilon, epsilon, epsilon}),
		Max: p.Anchor.Add(extent).Add(Vec3{epsilon, epsilon, epsilon}),
	}
}

func (p Plane) Centroid() Vec3      { return p.Anchor }
func (p Plane) SurfaceArea() float32 { return (2 * planeExtent) * (2 * planeExtent) }

func absMaxComponent(v Vec3) (value float32, axis int) {
	value, axis = abs32(v[0]), 0
	if a := abs32(v[1]); a > value {
		value, axis = a, 1
	}
	if a := abs32(v[2]); a > value {
		value, axis = a, 2
	}
	return value, axis
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// orthogonalAxes returns two unit vectors orthogonal to the world axis
// identified by normalAxis, used to span the plane's synthetic bounding box.
func orthogonalAxes(normalAxis int) (Vec3, Vec3) {
	switch normalAxis {
	case 0:
		return Vec3{0, 1, 0}, Vec3{0, 0, 1}
	case 1:
		return Vec3{1, 0, 0}, Vec3{0, 0, 1}
	default:
		return Vec3{1, 0, 0}, Vec3{0, 1, 0}
	}
}
