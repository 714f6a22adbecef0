package accel

import (
	"math"

	"github.com/lumentrace/raytracer/geom"
)

// RegularGrid voxelizes the world AABB into GridResolution^3 cells, each
// holding the indices of primitives whose AABB overlaps it (spec section
// 4.5).
type RegularGrid[T geom.Shape] struct {
	prims    []*geom.Primitive[T]
	worldBox geom.AABB
	cellSize geom.Vec3
	cells    [][]int32
}

func NewRegularGrid[T geom.Shape](prims []*geom.Primitive[T]) *RegularGrid[T] {
	g := &RegularGrid[T]{prims: prims}
	if len(prims) == 0 {
		return g
	}

	box := geom.EmptyAABB()
	for _, p := range prims {
		box = box.Union(p.BoundingBox())
	}
	g.worldBox = box

	extent := box.Extent()
	g.cellSize = geom.Vec3{
		clampMinSize(extent[0] / GridResolution),
		clampMinSize(extent[1] / GridResolution),
		clampMinSize(extent[2] / GridResolution),
	}

	g.cells = make([][]int32, GridResolution*GridResolution*GridResolution)
	for idx, p := range prims {
		pBox := p.BoundingBox()
		minC := g.cellCoord(pBox.Min)
		maxC := g.cellCoord(pBox.Max)
		for x := minC[0]; x <= maxC[0]; x++ {
			for y := minC[1]; y <= maxC[1]; y++ {
				for z := minC[2]; z <= maxC[2]; z++ {
					c := g.cellIndex(x, y, z)
					g.cells[c] = append(g.cells[c], int32(idx))
				}
			}
		}
	}

	return g
}

func clampMinSize(v float32) float32 {
	if v < 1e-4 {
		return 1e-4
	}
	return v
}

func (g *RegularGrid[T]) cellCoord(p geom.Vec3) [3]int {
	var c [3]int
	for axis := 0; axis < 3; axis++ {
		idx := int((p[axis] - g.worldBox.Min[axis]) / g.cellSize[axis])
		if idx < 0 {
			idx = 0
		}
		if idx >= GridResolution {
			idx = GridResolution - 1
		}
		c[axis] = idx
	}
	return c
}

func (g *RegularGrid[T]) cellIndex(x, y, z int) int {
	return (x*GridResolution+y)*GridResolution + z
}

func (g *RegularGrid[T]) Trace(hit *geom.Intersection, ray geom.Ray) bool {
	return g.walk(hit, ray, false)
}

func (g *RegularGrid[T]) ShadowTrace(hit *geom.Intersection, ray geom.Ray) bool {
	return g.walk(hit, ray, true)
}

func (g *RegularGrid[T]) Primitives() []*geom.Primitive[T] { return g.prims }

// walk performs a 3D-DDA line walk from the ray's entry to exit of the
// world AABB, testing every primitive bucketed into each voxel visited.
func (g *RegularGrid[T]) walk(hit *geom.Intersection, ray geom.Ray, shadow bool) bool {
	if len(g.prims) == 0 {
		return false
	}

	tEnter, tExit, ok := g.worldBox.Hit(ray, 1e-4, hit.Length)
	if !ok {
		return false
	}

	cell := g.cellCoord(ray.PointAt(tEnter))

	var step [3]int
	var tMaxAxis, tDelta [3]float32
	for axis := 0; axis < 3; axis++ {
		switch {
		case ray.Dir[axis] > 0:
			step[axis] = 1
			boundary := g.worldBox.Min[axis] + float32(cell[axis]+1)*g.cellSize[axis]
			tMaxAxis[axis] = (boundary - ray.Origin[axis]) / ray.Dir[axis]
			tDelta[axis] = g.cellSize[axis] / ray.Dir[axis]
		case ray.Dir[axis] < 0:
			step[axis] = -1
			boundary := g.worldBox.Min[axis] + float32(cell[axis])*g.cellSize[axis]
			tMaxAxis[axis] = (boundary - ray.Origin[axis]) / ray.Dir[axis]
			tDelta[axis] = -g.cellSize[axis] / ray.Dir[axis]
		default:
			tMaxAxis[axis] = float32(math.Inf(1))
			tDelta[axis] = float32(math.Inf(1))
		}
	}

	improved := false
	for {
		if cell[0] < 0 || cell[0] >= GridResolution ||
			cell[1] < 0 || cell[1] >= GridResolution ||
			cell[2] < 0 || cell[2] >= GridResolution {
			break
		}

		voxelExitT := minOf3(tMaxAxis[0], tMaxAxis[1], tMaxAxis[2])

		idx := g.cellIndex(cell[0], cell[1], cell[2])
		for _, pi := range g.cells[idx] {
			if g.prims[pi].Intersect(hit, ray) {
				improved = true
				if shadow {
					return true
				}
			}
		}

		if hit.Length < voxelExitT || voxelExitT > tExit {
			break
		}

		axis := argMin3(tMaxAxis)
		cell[axis] += step[axis]
		tMaxAxis[axis] += tDelta[axis]
	}

	return improved
}

func minOf3(a, b, c float32) float32 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func argMin3(v [3]float32) int {
	axis := 0
	if v[1] < v[axis] {
		axis = 1
	}
	if v[2] < v[axis] {
		axis = 2
	}
	return axis
}
