// Package geom provides the math kernel and primitive intersection
// contracts shared by the accelerators and the shading driver.
package geom

import (
	"math"

	"golang.org/x/image/math/f32"
)

const epsilon float32 = 1e-4

// Vec2 is a two-lane float32 vector, used for texture coordinates.
type Vec2 f32.Vec2

// Vec3 is a three-lane float32 vector.
type Vec3 f32.Vec3

// XY builds a Vec2 from components.
func XY(x, y float32) Vec2 { return Vec2{x, y} }

// XYZ builds a Vec3 from components.
func XYZ(x, y, z float32) Vec3 { return Vec3{x, y, z} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v[0] - o[0], v[1] - o[1]} }
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v[0] + o[0], v[1] + o[1]} }
func (v Vec2) Mul(s float32) Vec2 { return Vec2{v[0] * s, v[1] * s} }

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]} }
func (v Vec3) Mul(s float32) Vec3 { return Vec3{v[0] * s, v[1] * s, v[2] * s} }
func (v Vec3) Mul3(o Vec3) Vec3 { return Vec3{v[0] * o[0], v[1] * o[1], v[2] * o[2]} }
func (v Vec3) Neg() Vec3 { return Vec3{-v[0], -v[1], -v[2]} }

// FlipX mirrors the x component, used when loading OBJ vertices/normals to
// match the renderer's coordinate convention (spec section 6).
func (v Vec3) FlipX() Vec3 { return Vec3{-v[0], v[1], v[2]} }

func (v Vec3) Dot(o Vec3) float32 {
	return v[0]*o[0] + v[1]*o[1] + v[2]*o[2]
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v[1]*o[2] - v[2]*o[1],
		v[2]*o[0] - v[0]*o[2],
		v[0]*o[1] - v[1]*o[0],
	}
}

func (v Vec3) Len() float32 {
	return float32(math.Sqrt(float64(v.Dot(v))))
}

func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < epsilon {
		return Vec3{}
	}
	inv := 1.0 / l
	return Vec3{v[0] * inv, v[1] * inv, v[2] * inv}
}

// MaxComponent returns the value and index of the largest component,
// used to pick the BVH split axis.
func (v Vec3) MaxComponent() (value float32, axis int) {
	value, axis = v[0], 0
	if v[1] > value {
		value, axis = v[1], 1
	}
	if v[2] > value {
		value, axis = v[2], 2
	}
	return value, axis
}

func (v Vec3) Component(axis int) float32 { return v[axis] }

func MinVec3(a, b Vec3) Vec3 {
	out := a
	if b[0] < out[0] {
		out[0] = b[0]
	}
	if b[1] < out[1] {
		out[1] = b[1]
	}
	if b[2] < out[2] {
		out[2] = b[2]
	}
	return out
}

func MaxVec3(a, b Vec3) Vec3 {
	out := a
	if b[0] > out[0] {
		out[0] = b[0]
	}
	if b[1] > out[1] {
		out[1] = b[1]
	}
	if b[2] > out[2] {
		out[2] = b[2]
	}
	return out
}
