package lightdist

import (
	"github.com/dfoxwell/lightdist/pkg/core"
	lmath "github.com/dfoxwell/lightdist/pkg/math"
)

// haltonSampler adapts the package's Halton sequences to core.Sampler, so
// the photon tracer can draw deterministic, low-discrepancy 1D/2D values
// the same way the renderer's own samplers do. Each call advances a shared
// dimension counter so repeated Get1D/Get2D calls from the same photon walk
// draw from distinct Halton dimensions rather than repeating one.
type haltonSampler struct {
	index uint64
	dim   int
}

// newHaltonSampler returns a sampler whose sequence starts at Halton index i.
func newHaltonSampler(i uint64) *haltonSampler {
	return &haltonSampler{index: i}
}

// Get1D implements core.Sampler.
func (h *haltonSampler) Get1D() float64 {
	v := lmath.RadicalInverse(h.dim, h.index)
	h.dim++
	return v
}

// Get2D implements core.Sampler.
func (h *haltonSampler) Get2D() core.Vec2 {
	x, y := lmath.Halton2D(h.dim, h.index)
	h.dim += 2
	return core.NewVec2(x, y)
}

// Get3D implements core.Sampler.
func (h *haltonSampler) Get3D() core.Vec3 {
	x, y, z := lmath.Halton3D(h.dim, h.index)
	h.dim += 3
	return core.NewVec3(x, y, z)
}

var _ core.Sampler = (*haltonSampler)(nil)
