package scene

import (
	"testing"

	"github.com/lumentrace/raytracer/geom"
	"github.com/lumentrace/raytracer/material"
)

func TestScene_AddMaterial_Deduplicates(t *testing.T) {
	s := New()
	red := material.Material{Diffuse: geom.XYZ(1, 0, 0)}
	blue := material.Material{Diffuse: geom.XYZ(0, 0, 1)}

	i0 := s.AddMaterial(red)
	i1 := s.AddMaterial(blue)
	i2 := s.AddMaterial(red)

	if i0 != i2 {
		t.Errorf("AddMaterial should return the same index for a structurally-equal material; got %d and %d", i0, i2)
	}
	if i0 == i1 {
		t.Errorf("distinct materials should get distinct indices")
	}
	if len(s.Materials) != 2 {
		t.Errorf("len(Materials) = %d, want 2", len(s.Materials))
	}
}

func TestScene_Bounds(t *testing.T) {
	s := New()
	s.Spheres = append(s.Spheres, geom.NewPrimitive(geom.NewSphere(geom.XYZ(0, 0, 0), 1), 0))
	s.Spheres = append(s.Spheres, geom.NewPrimitive(geom.NewSphere(geom.XYZ(10, 0, 0), 1), 0))

	box := s.Bounds()
	if box.Min[0] > -1+1e-3 || box.Max[0] < 11-1e-3 {
		t.Errorf("Bounds() = %+v, want an AABB spanning roughly [-1,11] on x", box)
	}
}

func TestScene_TakeTriangles_NilsSourceField(t *testing.T) {
	s := New()
	tri := geom.NewPrimitive(geom.NewTriangle(geom.XYZ(0, 0, 0), geom.XYZ(1, 0, 0), geom.XYZ(0, 1, 0)), 0)
	s.Triangles = append(s.Triangles, tri)

	taken := s.TakeTriangles()
	if len(taken) != 1 {
		t.Fatalf("TakeTriangles() returned %d primitives, want 1", len(taken))
	}
	if s.Triangles != nil {
		t.Error("Triangles field should be nil after TakeTriangles")
	}
}
