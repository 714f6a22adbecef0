package geom

import "math"

// Sphere is defined by a center and radius.
type Sphere struct {
	Center Vec3
	Radius float32
}

func NewSphere(center Vec3, radius float32) Sphere {
	return Sphere{Center: center, Radius: radius}
}

func (s Sphere) Hit(ray Ray, currentLength float32, self PrimitiveRef) (HitResult, bool) {
	oc := ray.Origin.Sub(s.Center)
	a := ray.Dir.Dot(ray.Dir)
	b := 2 * oc.Dot(ray.Dir)
	c := oc.Dot(oc) - s.Radius*s.Radius

	disc := b*b - 4*a*c
	if disc < 0 {
		return HitResult{}, false
	}

	sqrtDisc := float32(math.Sqrt(float64(disc)))
	inv2a := 1.0 / (2 * a)

	t := (-b - sqrtDisc) * inv2a
	if t < epsilon || t >= currentLength {
		t = (-b + sqrtDisc) * inv2a
		if t < epsilon || t >= currentLength {
			return HitResult{}, false
		}
	}

	point := ray.PointAt(t)
	normal := point.Sub(s.Center).Mul(1.0 / s.Radius)
	return HitResult{T: t, Normal: normal}, true
}

func (s Sphere) BoundingBox() AABB {
	r := Vec3{s.Radius, s.Radius, s.Radius}
	return AABB{Min: s.Center.Sub(r), Max: s.Center.Add(r)}
}

func (s Sphere) Centroid() Vec3 { return s.Center }

func (s Sphere) SurfaceArea() float32 {
	return 4 * float32(math.Pi) * s.Radius * s.Radius
}
