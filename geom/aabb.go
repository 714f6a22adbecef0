package geom

import "math"

// AABB is an axis-aligned bounding box with the invariant Min <= Max
// componentwise.
type AABB struct {
	Min Vec3
	Max Vec3
}

// EmptyAABB returns an AABB primed so that the first Union call always wins.
func EmptyAABB() AABB {
	return AABB{
		Min: Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max: Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
}

func (b AABB) Union(o AABB) AABB {
	return AABB{
		Min: MinVec3(b.Min, o.Min),
		Max: MaxVec3(b.Max, o.Max),
	}
}

func (b AABB) ExtendPoint(p Vec3) AABB {
	return AABB{Min: MinVec3(b.Min, p), Max: MaxVec3(b.Max, p)}
}

func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

func (b AABB) Extent() Vec3 {
	return b.Max.Sub(b.Min)
}

// SurfaceArea implements 2*(dx*dy + dy*dz + dz*dx).
func (b AABB) SurfaceArea() float32 {
	d := b.Extent()
	if d[0] < 0 || d[1] < 0 || d[2] < 0 {
		return 0
	}
	return 2.0 * (d[0]*d[1] + d[1]*d[2] + d[2]*d[0])
}

// Overlaps reports whether the two boxes intersect (touching counts as
// overlap).
func (b AABB) Overlaps(o AABB) bool {
	return b.Min[0] <= o.Max[0] && b.Max[0] >= o.Min[0] &&
		b.Min[1] <= o.Max[1] && b.Max[1] >= o.Min[1] &&
		b.Min[2] <= o.Max[2] && b.Max[2] >= o.Min[2]
}

// Hit performs the slab test used by accelerator traversal, returning
// whether the ray intersects the box within [tMin, tMax] and, if so, the
// entry/exit distances.
func (b AABB) Hit(ray Ray, tMin, tMax float32) (tEnter, tExit float32, ok bool) {
	tEnter, tExit = tMin, tMax
	for axis := 0; axis < 3; axis++ {
		invD := 1.0 / ray.Dir[axis]
		t0 := (b.Min[axis] - ray.Origin[axis]) * invD
		t1 := (b.Max[axis] - ray.Origin[axis]) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}
		if t0 > tEnter {
			tEnter = t0
		}
		if t1 < tExit {
			tExit = t1
		}
		if tExit <= tEnter {
			return 0, 0, false
		}
	}
	return tEnter, tExit, true
}
