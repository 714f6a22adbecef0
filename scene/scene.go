// Package scene owns the loaded geometry and material palette before it is
// handed off to accelerators (spec section 4, "Scene").
package scene

import (
	"github.com/lumentrace/raytracer/geom"
	"github.com/lumentrace/raytracer/light"
	"github.com/lumentrace/raytracer/material"
)

// Scene is an append-only container until its primitive slices are handed
// to accelerators, at which point the caller nils them out to avoid dual
// ownership (spec section 3, "Scene" — "accelerators take ownership by
// move").
type Scene struct {
	Planes    []*geom.Primitive[geom.Plane]
	Spheres   []*geom.Primitive[geom.Sphere]
	Triangles []*geom.Primitive[geom.Triangle]
	Lights    []light.Light

	Materials []material.Material
	Textures  []*material.Texture

	BgColor geom.Vec3
}

func New() *Scene {
	return &Scene{}
}

// AddMaterial returns the index of mat in the palette, appending it if no
// structurally-equal material is already present (spec section 3,
// "Material equality is structural and drives scene-palette
// de-duplication").
func (s *Scene) AddMaterial(mat material.Material) int {
	for i, existing := range s.Materials {
		if existing == mat {
			return i
		}
	}
	s.Materials = append(s.Materials, mat)
	return len(s.Materials) - 1
}

// AddTexture appends tex to the texture palette and returns its index.
// Callers are expected to have already de-duplicated by path via
// material.TextureCache; AddTexture itself performs no de-duplication.
func (s *Scene) AddTexture(tex *material.Texture) int {
	s.Textures = append(s.Textures, tex)
	return len(s.Textures) - 1
}

// Bounds returns the union AABB of every primitive currently owned by the
// scene.
func (s *Scene) Bounds() geom.AABB {
	box := geom.EmptyAABB()
	for _, p := range s.Planes {
		box = box.Union(p.BoundingBox())
	}
	for _, p := range s.Spheres {
		box = box.Union(p.BoundingBox())
	}
	for _, p := range s.Triangles {
		box = box.Union(p.BoundingBox())
	}
	return box
}

// TakePlanes hands ownership of the plane slice to the caller (normally an
// accelerator constructor), leaving the scene's field nilled out.
func (s *Scene) TakePlanes() []*geom.Primitive[geom.Plane] {
	p := s.Planes
	s.Planes = nil
	return p
}

// TakeSpheres hands ownership of the sphere slice to the caller.
func (s *Scene) TakeSpheres() []*geom.Primitive[geom.Sphere] {
	p := s.Spheres
	s.Spheres = nil
	return p
}

// TakeTriangles hands ownership of the triangle slice to the caller.
func (s *Scene) TakeTriangles() []*geom.Primitive[geom.Triangle] {
	p := s.Triangles
	s.Triangles = nil
	return p
}
