// Package shade implements the shading driver: per-shape-type accelerator
// dispatch, light sampling, and the ShadeFunc type describing a
// caller-supplied shading equation (spec section 4.8). The Driver itself
// does not call a ShadeFunc.
package shade

import (
	"math"

	"github.com/lumentrace/raytracer/accel"
	"github.com/lumentrace/raytracer/geom"
	"github.com/lumentrace/raytracer/sampling"
	"github.com/lumentrace/raytracer/scene"
)

// ShadeFunc is the signature of an externally-supplied shading equation. It
// receives the accumulated color to update in place and returns whether the
// ray should continue bouncing. Driver neither stores nor invokes one:
// RayTrace only updates hit and reports whether it improved.
type ShadeFunc func(rgb *geom.Vec3, hit geom.Intersection, ray geom.Ray) bool

// Driver dispatches trace queries across the accelerators built for one
// kind, in plane/sphere/triangle order, then against the scene's lights.
type Driver struct {
	scene           *scene.Scene
	samplesPerLight int
	kind            accel.Kind

	planes    accel.Accelerator[geom.Plane]
	spheres   accel.Accelerator[geom.Sphere]
	triangles accel.Accelerator[geom.Triangle]

	lightSampler *sampling.Sampler2D
}

// New builds a Driver over sc using the given acceleration kind for every
// shape bucket. Buckets the scene didn't populate get a None accelerator
// (spec section 4.2, "the other flavors are vacant").
func New(sc *scene.Scene, samplesPerLight int, kind accel.Kind) *Driver {
	d := &Driver{
		scene:           sc,
		samplesPerLight: samplesPerLight,
		kind:            kind,
		lightSampler:    sampling.NewSampler2D(),
	}

	if len(sc.Planes) > 0 {
		d.planes = accel.Build(kind, sc.TakePlanes())
	} else {
		d.planes = accel.NewNone[geom.Plane]()
	}

	if len(sc.Spheres) > 0 {
		d.spheres = accel.Build(kind, sc.TakeSpheres())
	} else {
		d.spheres = accel.NewNone[geom.Sphere]()
	}

	if len(sc.Triangles) > 0 {
		d.triangles = accel.Build(kind, sc.TakeTriangles())
	} else {
		d.triangles = accel.NewNone[geom.Triangle]()
	}

	return d
}

// Kind returns the acceleration strategy this driver was built with.
func (d *Driver) Kind() accel.Kind { return d.kind }

// RayTrace finds the closest hit across every shape bucket and the scene's
// lights, in plane/sphere/triangle/light order.
func (d *Driver) RayTrace(hit *geom.Intersection, ray geom.Ray) bool {
	improved := false
	if d.planes.Trace(hit, ray) {
		improved = true
	}
	if d.spheres.Trace(hit, ray) {
		improved = true
	}
	if d.triangles.Trace(hit, ray) {
		improved = true
	}
	if d.traceLights(hit, ray) {
		improved = true
	}
	return improved
}

// ShadowTrace is RayTrace's any-hit counterpart: it stops at the first
// improving hit across any bucket.
func (d *Driver) ShadowTrace(hit *geom.Intersection, ray geom.Ray) bool {
	if d.planes.ShadowTrace(hit, ray) {
		return true
	}
	if d.spheres.ShadowTrace(hit, ray) {
		return true
	}
	if d.triangles.ShadowTrace(hit, ray) {
		return true
	}
	return d.traceLightsShadow(hit, ray)
}

func (d *Driver) traceLights(hit *geom.Intersection, ray geom.Ray) bool {
	improved := false
	for _, l := range d.scene.Lights {
		if l.Intersect(hit, ray) {
			improved = true
		}
	}
	return improved
}

func (d *Driver) traceLightsShadow(hit *geom.Intersection, ray geom.Ray) bool {
	startLength := hit.Length
	for _, l := range d.scene.Lights {
		if l.Intersect(hit, ray) && hit.Length < startLength {
			return true
		}
	}
	return false
}

// CosineSampleHemisphere draws a direction in the hemisphere around normal
// weighted by the cosine term, using the shared quasi-random table.
func (d *Driver) CosineSampleHemisphere(normal geom.Vec3) geom.Vec3 {
	u := sampling.Next()
	v := sampling.Next()

	r := float32(math.Sqrt(float64(u)))
	theta := float32(2*math.Pi) * v

	x := r * float32(math.Cos(float64(theta)))
	y := r * float32(math.Sin(float64(theta)))
	z := float32(math.Sqrt(float64(1 - u)))

	tangent, bitangent := orthonormalBasis(normal)
	return tangent.Mul(x).Add(bitangent.Mul(y)).Add(normal.Mul(z))
}

func orthonormalBasis(normal geom.Vec3) (tangent, bitangent geom.Vec3) {
	up := geom.XYZ(0, 1, 0)
	if normal.Dot(up) > 0.999 || normal.Dot(up) < -0.999 {
		up = geom.XYZ(1, 0, 0)
	}
	tangent = up.Cross(normal).Normalize()
	bitangent = normal.Cross(tangent)
	return tangent, bitangent
}

// SampleLightIndex picks a light index uniformly, per spec section 4.8's
// floor(u*N*0.99999) formula, biasing just shy of N to guard against u
// rounding up to N after multiplication.
func (d *Driver) SampleLightIndex() int {
	n := len(d.scene.Lights)
	if n == 0 {
		return -1
	}
	u := sampling.Next()
	return int(u * float32(n) * 0.99999)
}

// ResetSampling resets every light's sampler, used between independent
// render passes.
func (d *Driver) ResetSampling() {
	for _, l := range d.scene.Lights {
		l.ResetSampling()
	}
}
