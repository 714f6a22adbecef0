package geom

import (
	"math"
	"testing"
)

func TestSphere_Hit(t *testing.T) {
	sphere := NewSphere(XYZ(0, 0, 0), 1)

	tests := []struct {
		name      string
		ray       Ray
		shouldHit bool
		expectedT float32
	}{
		{
			name:      "ray through center",
			ray:       NewRay(XYZ(0, 0, -5), XYZ(0, 0, 1), -1, 0, nil),
			shouldHit: true,
			expectedT: 4,
		},
		{
			name:      "ray misses sphere",
			ray:       NewRay(XYZ(2, 2, -5), XYZ(0, 0, 1), -1, 0, nil),
			shouldHit: false,
		},
		{
			name:      "ray from inside sphere hits far side",
			ray:       NewRay(XYZ(0, 0, 0), XYZ(0, 0, 1), -1, 0, nil),
			shouldHit: true,
			expectedT: 1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, ok := sphere.Hit(tc.ray, float32(math.Inf(1)), nil)
			if ok != tc.shouldHit {
				t.Fatalf("Hit() = %v, want %v", ok, tc.shouldHit)
			}
			if ok && absDiff(res.T, tc.expectedT) > 1e-3 {
				t.Errorf("T = %v, want %v", res.T, tc.expectedT)
			}
		})
	}
}
