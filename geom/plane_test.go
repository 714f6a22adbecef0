package geom

import (
	"math"
	"testing"
)

func TestPlane_Hit(t *testing.T) {
	plane := NewPlane(XYZ(0, 0, 0), XYZ(0, 0, 1))
	primRef := NewPrimitive(plane, 0)

	t.Run("self intersection guard", func(t *testing.T) {
		ray := NewRay(XYZ(0, 0, 0), XYZ(0, 0, 1), -1, 0, primRef)
		_, ok := plane.Hit(ray, float32(math.Inf(1)), primRef)
		if ok {
			t.Fatal("expected miss due to self-intersection guard")
		}
	})

	t.Run("parallel ray does not divide by zero", func(t *testing.T) {
		ray := NewRay(XYZ(0, 0, 5), XYZ(1, 0, 0), -1, 0, nil)
		_, ok := plane.Hit(ray, float32(math.Inf(1)), nil)
		if ok {
			t.Fatal("expected miss for parallel ray")
		}
	})

	t.Run("perpendicular ray hits", func(t *testing.T) {
		ray := NewRay(XYZ(0, 0, 5), XYZ(0, 0, -1), -1, 0, nil)
		res, ok := plane.Hit(ray, float32(math.Inf(1)), nil)
		if !ok {
			t.Fatal("expected hit")
		}
		if absDiff(res.T, 5) > 1e-3 {
			t.Errorf("T = %v, want 5", res.T)
		}
	})
}
