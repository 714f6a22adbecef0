package light

import (
	"testing"

	"github.com/lumentrace/raytracer/geom"
	"github.com/lumentrace/raytracer/material"
)

func TestAreaLight_PositionIsCentroid(t *testing.T) {
	tri := geom.NewTriangle(geom.XYZ(0, 0, 0), geom.XYZ(2, 0, 0), geom.XYZ(0, 2, 0))
	prim := geom.NewPrimitive(tri, 0)
	mat := &material.Material{Emission: geom.XYZ(1, 1, 1)}

	l := NewAreaLight(prim, mat)
	got := l.GetPosition()
	want := tri.Centroid()
	if got != want {
		t.Errorf("GetPosition() = %v, want %v", got, want)
	}
}

func TestAreaLight_SamplePointOnSurface(t *testing.T) {
	tri := geom.NewTriangle(geom.XYZ(0, 0, 0), geom.XYZ(2, 0, 0), geom.XYZ(0, 2, 0))
	prim := geom.NewPrimitive(tri, 0)
	l := NewAreaLight(prim, &material.Material{})

	for i := 0; i < 100; i++ {
		p := l.SamplePoint()
		if p[2] != 0 {
			t.Fatalf("sample point %v should stay in the triangle's z=0 plane", p)
		}
		if p[0] < 0 || p[1] < 0 || p[0]+p[1] > 2+1e-4 {
			t.Fatalf("sample point %v should stay within the triangle", p)
		}
	}
}

func TestAreaLight_IntersectDelegatesToTriangle(t *testing.T) {
	tri := geom.NewTriangle(geom.XYZ(0, 0, 1), geom.XYZ(1, 0, 1), geom.XYZ(0, 1, 1))
	prim := geom.NewPrimitive(tri, 0)
	l := NewAreaLight(prim, &material.Material{})

	hit := geom.Miss()
	ray := geom.NewRay(geom.XYZ(0.25, 0.25, 0), geom.XYZ(0, 0, 1), -1, 0, nil)
	if !l.Intersect(&hit, ray) {
		t.Fatal("expected the light's triangle to be hit")
	}
}

func TestAreaLight_RadianceMaterial(t *testing.T) {
	mat := &material.Material{Emission: geom.XYZ(5, 5, 5)}
	tri := geom.NewTriangle(geom.XYZ(0, 0, 0), geom.XYZ(1, 0, 0), geom.XYZ(0, 1, 0))
	l := NewAreaLight(geom.NewPrimitive(tri, 0), mat)

	if l.RadianceMaterial() != mat {
		t.Fatal("RadianceMaterial() should return the light's backing material")
	}
}
