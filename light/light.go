// Package light implements the light capability surface the shading
// driver samples against: any emissive triangle in a loaded scene becomes
// a Light (spec section 4.9).
package light

import (
	"github.com/lumentrace/raytracer/geom"
	"github.com/lumentrace/raytracer/material"
	"github.com/lumentrace/raytracer/sampling"
)

// Light is the capability every light flavor in a scene implements.
type Light interface {
	RadianceMaterial() *material.Material
	GetPosition() geom.Vec3
	ResetSampling()
	Intersect(hit *geom.Intersection, ray geom.Ray) bool
}

// AreaLight is an emissive triangle sampled for next-event estimation: its
// position is its centroid, and SamplePoint draws a barycentric point on
// its surface for shadow-ray construction.
type AreaLight struct {
	prim     *geom.Primitive[geom.Triangle]
	radiance *material.Material
	sampler  *sampling.Sampler2D
}

func NewAreaLight(prim *geom.Primitive[geom.Triangle], radiance *material.Material) *AreaLight {
	return &AreaLight{prim: prim, radiance: radiance, sampler: sampling.NewSampler2D()}
}

func (l *AreaLight) RadianceMaterial() *material.Material { return l.radiance }

func (l *AreaLight) GetPosition() geom.Vec3 { return l.prim.Centroid() }

func (l *AreaLight) ResetSampling() { l.sampler.Reset() }

// Intersect delegates to the underlying triangle primitive so lights
// participate in occlusion tests exactly like any other geometry.
func (l *AreaLight) Intersect(hit *geom.Intersection, ray geom.Ray) bool {
	return l.prim.Intersect(hit, ray)
}

// SamplePoint draws a uniformly-distributed barycentric point on the
// light's triangle, folding samples that land outside the unit triangle
// back in rather than rejecting them.
func (l *AreaLight) SamplePoint() geom.Vec3 {
	u, v := l.sampler.Sample()
	if u+v > 1 {
		u, v = 1-u, 1-v
	}
	return l.prim.Shape.SamplePoint(u, v)
}

// Primitive exposes the underlying triangle primitive.
func (l *AreaLight) Primitive() *geom.Primitive[geom.Triangle] { return l.prim }
