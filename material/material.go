// Package material implements the scene material palette and the texture
// cache used to back textured diffuse/emission lookups.
package material

import "github.com/lumentrace/raytracer/geom"

// NoTexture is the sentinel texture index meaning "this material has no
// texture map".
const NoTexture = -1

// Material is compared by value for scene-palette de-duplication: two
// materials with identical fields are the same material (spec section 3,
// "Material").
type Material struct {
	Diffuse       geom.Vec3
	Specular      geom.Vec3
	Transmittance geom.Vec3
	Emission      geom.Vec3
	IOR           float32

	// TextureIdx indexes into the owning scene's texture slice, or
	// NoTexture when the material is untextured.
	TextureIdx int
}

// IsEmissive reports whether the material should be treated as a light
// source when a triangle using it is loaded.
func (m Material) IsEmissive() bool {
	return m.Emission[0] > 0 || m.Emission[1] > 0 || m.Emission[2] > 0
}
