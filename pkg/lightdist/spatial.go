package lightdist

import (
	"github.com/dfoxwell/lightdist/pkg/core"
	"github.com/dfoxwell/lightdist/pkg/lights"
	lmath "github.com/dfoxwell/lightdist/pkg/math"
)

// spatialSamples is N_SAMPLES from spec 4.5: the number of Halton points
// sampled per voxel interior when building its distribution.
const spatialSamples = 128

// SpatialLightDistribution is spec's component C5+C6: a VoxelHashCache
// whose per-voxel distributions are built lazily by SpatialBuilder.
type SpatialLightDistribution struct {
	grid    *VoxelGrid
	cache   *VoxelHashCache
	scene   Scene
	lights  []lights.Light
	trivial Distribution1D // precomputed for the 0- or 1-light case, shared across calls
}

// NewSpatialLightDistribution builds the (empty) voxel grid and cache over
// scene's world bound. No per-voxel work happens until the first Lookup
// touches a voxel (spec 4.4's lazy construction).
func NewSpatialLightDistribution(scene Scene, maxVoxels int) (*SpatialLightDistribution, error) {
	grid, err := NewVoxelGrid(scene.WorldBound(), maxVoxels)
	if err != nil {
		return nil, err
	}

	sld := &SpatialLightDistribution{
		grid:   grid,
		scene:  scene,
		lights: scene.SceneLights(),
	}
	switch len(sld.lights) {
	case 0:
		sld.trivial = NewDiscrete1D(nil)
	case 1:
		sld.trivial = NewDiscrete1D([]float64{1})
	}
	sld.cache = NewVoxelHashCache(grid, sld.buildVoxel)
	return sld, nil
}

// Lookup implements LightDistribution. Every call for the same voxel (or,
// for 0/1-light scenes, every call at all) returns the same Distribution1D
// pointer, per spec testable property 7.
func (sld *SpatialLightDistribution) Lookup(p core.Vec3, n core.Vec3) Distribution1D {
	if sld.trivial != nil {
		return sld.trivial
	}
	idx := sld.grid.VoxelIndex(p)
	return sld.cache.Lookup(idx)
}

// buildVoxel is the VoxelBuildFunc passed to the cache: spec 4.5's
// SpatialBuilder.
func (sld *SpatialLightDistribution) buildVoxel(idx [3]int) Distribution1D {
	bounds := sld.grid.VoxelBounds(idx)
	numLights := len(sld.lights)
	contrib := make([]float64, numLights)

	// Every voxel samples the same i in [0, spatialSamples) of the Halton
	// sequence; only voxelBounds differs between voxels, so the relative
	// sample positions inside each cell are identical across the grid.
	for s := 0; s < spatialSamples; s++ {
		haltonIdx := uint64(s)
		px, py, pz := lmath.Halton3D(0, haltonIdx)
		point := core.NewVec3(
			bounds.Min.X+px*(bounds.Max.X-bounds.Min.X),
			bounds.Min.Y+py*(bounds.Max.Y-bounds.Min.Y),
			bounds.Min.Z+pz*(bounds.Max.Z-bounds.Min.Z),
		)
		lu, lv := lmath.Halton2D(3, haltonIdx)
		lightSample := core.NewVec2(lu, lv)

		// The voxel has no shading normal of its own; spec 4.5 only needs
		// a surface-independent position/light sample, so the zero vector
		// is passed where a normal parameter is required.
		zero := core.Vec3{}

		for j, light := range sld.lights {
			ls := light.Sample(point, zero, lightSample)
			if ls.PDF > 0 {
				contrib[j] += ls.Emission.Luminance() / ls.PDF
			}
		}
	}

	applyContributionFloor(contrib, spatialSamples*numLights)

	return NewDiscrete1D(contrib)
}

// applyContributionFloor implements spec 4.5's floor rule: avg over all
// samples and lights, min = 0.001*avg (or 1 if avg is zero), then every
// entry is raised to at least min. This keeps every light's probability
// strictly positive so MIS never divides by zero for a light the Halton
// samples happened to miss.
func applyContributionFloor(contrib []float64, sampleCount int) {
	if sampleCount == 0 || len(contrib) == 0 {
		return
	}
	total := 0.0
	for _, c := range contrib {
		total += c
	}
	avg := total / float64(sampleCount)

	min := 1.0
	if avg > 0 {
		min = 0.001 * avg
	}
	for i, c := range contrib {
		if c < min {
			contrib[i] = min
		}
	}
}
