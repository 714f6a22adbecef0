package sampling

// Sampler2D draws independent (u, v) pairs from the shared random-value
// table. Area lights use it to pick a barycentric point on their triangle
// for each shadow sample.
type Sampler2D struct{}

func NewSampler2D() *Sampler2D { return &Sampler2D{} }

// Sample returns the next (u, v) pair, both in [0, 1).
func (s *Sampler2D) Sample() (u, v float32) {
	return Next(), Next()
}

// Reset is a no-op: the table is process-global and stateless aside from
// its cursor, so there's nothing per-sampler to reset. It exists so
// AreaLight.ResetSampling has something uniform to call regardless of
// which sampler flavor backs it.
func (s *Sampler2D) Reset() {}
