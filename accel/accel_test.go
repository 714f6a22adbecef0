package accel

import (
	"testing"

	"github.com/lumentrace/raytracer/geom"
)

func sphereAt(center geom.Vec3, radius float32, materialIndex int) *geom.Primitive[geom.Sphere] {
	return geom.NewPrimitive(geom.NewSphere(center, radius), materialIndex)
}

func rayAt(origin, dir geom.Vec3) geom.Ray {
	return geom.NewRay(origin, dir, -1, 0, nil)
}

var accelKinds = []Kind{KindNaiveLinear, KindRegularGrid, KindBVH}

func TestAccelerator_EmptyMisses(t *testing.T) {
	for _, kind := range accelKinds {
		t.Run(kind.String(), func(t *testing.T) {
			acc := Build(kind, []*geom.Primitive[geom.Sphere]{})
			hit := geom.Miss()
			ray := rayAt(geom.XYZ(0, 0, -5), geom.XYZ(0, 0, 1))
			if acc.Trace(&hit, ray) {
				t.Fatal("Trace on empty accelerator should never report a hit")
			}
			if acc.ShadowTrace(&hit, ray) {
				t.Fatal("ShadowTrace on empty accelerator should never report a hit")
			}
		})
	}
}

func TestAccelerator_SinglePrimitiveDistance(t *testing.T) {
	for _, kind := range accelKinds {
		t.Run(kind.String(), func(t *testing.T) {
			prims := []*geom.Primitive[geom.Sphere]{sphereAt(geom.XYZ(0, 0, 0), 1, 0)}
			acc := Build(kind, prims)

			hit := geom.Miss()
			ray := rayAt(geom.XYZ(0, 0, -5), geom.XYZ(0, 0, 1))
			if !acc.Trace(&hit, ray) {
				t.Fatal("expected a hit")
			}
			if absDiff(hit.Length, 4) > 1e-2 {
				t.Errorf("Length = %v, want ~4", hit.Length)
			}
		})
	}
}

func TestAccelerator_ClosestHitMatchesNaive(t *testing.T) {
	prims := func() []*geom.Primitive[geom.Sphere] {
		return []*geom.Primitive[geom.Sphere]{
			sphereAt(geom.XYZ(0, 0, 0), 1, 0),
			sphereAt(geom.XYZ(3, 0, 0), 1, 1),
			sphereAt(geom.XYZ(-3, 0, 0), 1, 2),
			sphereAt(geom.XYZ(0, 3, 0), 1, 3),
			sphereAt(geom.XYZ(0, -3, 0), 1, 4),
			sphereAt(geom.XYZ(0, 0, 8), 1, 5),
		}
	}

	rays := []geom.Ray{
		rayAt(geom.XYZ(0, 0, -10), geom.XYZ(0, 0, 1)),
		rayAt(geom.XYZ(3, 0, -10), geom.XYZ(0, 0, 1)),
		rayAt(geom.XYZ(-3, 0, -10), geom.XYZ(0, 0, 1)),
		rayAt(geom.XYZ(10, 10, 10), geom.XYZ(-1, -1, -1)),
		rayAt(geom.XYZ(100, 100, 100), geom.XYZ(1, 1, 1)),
	}

	naive := NewNaive(prims())

	for _, kind := range []Kind{KindRegularGrid, KindBVH} {
		t.Run(kind.String(), func(t *testing.T) {
			acc := Build(kind, prims())
			for i, ray := range rays {
				want := geom.Miss()
				naive.Trace(&want, ray)

				got := geom.Miss()
				acc.Trace(&got, ray)

				if want.IsHit() != got.IsHit() {
					t.Fatalf("ray %d: IsHit = %v, want %v", i, got.IsHit(), want.IsHit())
				}
				if want.IsHit() && absDiff(want.Length, got.Length) > 1e-2 {
					t.Errorf("ray %d: Length = %v, want %v", i, got.Length, want.Length)
				}
			}
		})
	}
}

func TestAccelerator_ShadowTraceAnyHit(t *testing.T) {
	for _, kind := range accelKinds {
		t.Run(kind.String(), func(t *testing.T) {
			prims := []*geom.Primitive[geom.Sphere]{
				sphereAt(geom.XYZ(0, 0, 0), 1, 0),
				sphereAt(geom.XYZ(0, 0, 5), 1, 1),
			}
			acc := Build(kind, prims)

			hit := geom.Miss()
			hit.Length = 100
			ray := rayAt(geom.XYZ(0, 0, -10), geom.XYZ(0, 0, 1))
			if !acc.ShadowTrace(&hit, ray) {
				t.Fatal("expected a shadowing hit")
			}
		})
	}
}

func TestAccelerator_ShadowTraceRespectsMaxDistance(t *testing.T) {
	for _, kind := range accelKinds {
		t.Run(kind.String(), func(t *testing.T) {
			prims := []*geom.Primitive[geom.Sphere]{sphereAt(geom.XYZ(0, 0, 10), 1, 0)}
			acc := Build(kind, prims)

			hit := geom.Miss()
			hit.Length = 2
			ray := rayAt(geom.XYZ(0, 0, 0), geom.XYZ(0, 0, 1))
			if acc.ShadowTrace(&hit, ray) {
				t.Fatal("shadow ray should not see past its max distance")
			}
		})
	}
}

func TestBVH_LeafBoxesContainPrimitives(t *testing.T) {
	prims := []*geom.Primitive[geom.Sphere]{
		sphereAt(geom.XYZ(0, 0, 0), 1, 0),
		sphereAt(geom.XYZ(5, 0, 0), 1, 1),
		sphereAt(geom.XYZ(0, 5, 0), 1, 2),
		sphereAt(geom.XYZ(0, 0, 5), 1, 3),
		sphereAt(geom.XYZ(-5, -5, -5), 1, 4),
	}
	bvh := NewBVH(prims)

	for _, node := range bvh.Nodes() {
		if node.NumPrimitives == 0 {
			continue
		}
		for i := node.IndexOffset; i < node.IndexOffset+node.NumPrimitives; i++ {
			box := bvh.Primitives()[i].BoundingBox()
			for axis := 0; axis < 3; axis++ {
				if box.Min[axis] < node.Box.Min[axis] || box.Max[axis] > node.Box.Max[axis] {
					t.Errorf("leaf box does not contain primitive %d's bounding box", i)
				}
			}
		}
	}
}

func TestBVH_InnerNodeUnionsChildren(t *testing.T) {
	prims := []*geom.Primitive[geom.Sphere]{
		sphereAt(geom.XYZ(0, 0, 0), 1, 0),
		sphereAt(geom.XYZ(5, 0, 0), 1, 1),
		sphereAt(geom.XYZ(0, 5, 0), 1, 2),
		sphereAt(geom.XYZ(0, 0, 5), 1, 3),
		sphereAt(geom.XYZ(-5, -5, -5), 1, 4),
		sphereAt(geom.XYZ(10, 10, 10), 1, 5),
	}
	bvh := NewBVH(prims)

	nodes := bvh.Nodes()
	for idx, node := range nodes {
		if node.NumPrimitives > 0 {
			continue
		}
		left := nodes[node.IndexOffset]
		right := nodes[node.IndexOffset+1]
		union := left.Box.Union(right.Box)
		for axis := 0; axis < 3; axis++ {
			if absDiff(union.Min[axis], node.Box.Min[axis]) > 1e-3 ||
				absDiff(union.Max[axis], node.Box.Max[axis]) > 1e-3 {
				t.Errorf("node %d box does not equal union of its children", idx)
			}
		}
	}
}

func TestBVH_ReportMatchesStructure(t *testing.T) {
	prims := []*geom.Primitive[geom.Sphere]{
		sphereAt(geom.XYZ(0, 0, 0), 1, 0),
		sphereAt(geom.XYZ(5, 0, 0), 1, 1),
		sphereAt(geom.XYZ(0, 5, 0), 1, 2),
	}
	bvh := NewBVH(prims)
	report := bvh.Report()

	if report.Primitives != len(prims) {
		t.Errorf("Primitives = %d, want %d", report.Primitives, len(prims))
	}
	if report.Nodes != len(bvh.Nodes()) {
		t.Errorf("Nodes = %d, want %d", report.Nodes, len(bvh.Nodes()))
	}
	if report.Leaves == 0 {
		t.Error("expected at least one leaf")
	}
}

func TestBVH_ReportOnEmptyBVHDoesNotPanic(t *testing.T) {
	bvh := NewBVH[geom.Sphere](nil)
	report := bvh.Report()

	if report.Primitives != 0 {
		t.Errorf("Primitives = %d, want 0", report.Primitives)
	}
	if report.Leaves != 1 {
		t.Errorf("Leaves = %d, want 1", report.Leaves)
	}
}

func absDiff(a, b float32) float32 {
	if a > b {
		return a - b
	}
	return b - a
}

func TestNone_AlwaysMisses(t *testing.T) {
	acc := NewNone[geom.Sphere]()
	hit := geom.Miss()
	ray := rayAt(geom.XYZ(0, 0, -5), geom.XYZ(0, 0, 1))
	if acc.Trace(&hit, ray) || acc.ShadowTrace(&hit, ray) {
		t.Fatal("None accelerator must never report a hit")
	}
	if acc.Primitives() != nil {
		t.Fatal("None accelerator must not own any primitives")
	}
}

func TestBuild_UnknownKindFallsBackToNone(t *testing.T) {
	acc := Build(Kind(99), []*geom.Primitive[geom.Sphere]{sphereAt(geom.XYZ(0, 0, 0), 1, 0)})
	if _, ok := acc.(*None[geom.Sphere]); !ok {
		t.Fatalf("Build with unknown kind = %T, want *None", acc)
	}
}
