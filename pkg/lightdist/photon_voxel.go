package lightdist

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/dfoxwell/lightdist/pkg/core"
)

// photonVoxelSlot accumulates photon contributions for one voxel during
// preprocess, then is finalised into an immutable Sparse1D for lookup.
// packedKey transitions INVALID -> key exactly once via CAS, same as
// VoxelHashCache; contrib is guarded by a per-slot mutex instead of one
// global lock (spec 9's "Photon-voxel accumulation mutex" redesign note:
// shard by voxel rather than serialising every photon through one lock).
type photonVoxelSlot struct {
	packedKey atomic.Uint64
	mu        sync.Mutex
	contrib   map[int]float64
	final     atomic.Pointer[SparseDistribution1D]
}

// PhotonVoxelLightDistribution is spec's component C8: photon contributions
// accumulated per voxel at preprocess time, with an optional trilinear
// blend of neighbouring voxels at lookup.
type PhotonVoxelLightDistribution struct {
	grid           *VoxelGrid
	table          []photonVoxelSlot
	numLights      int
	minContribFrac float64
	interpolate    bool
	defaultDistr   *SparseDistribution1D

	dropped int64 // photons with no intersection or non-positive beta
}

// NewPhotonVoxelLightDistribution traces photonCount photons and builds the
// per-voxel Sparse1D table described in spec 4.7.
func NewPhotonVoxelLightDistribution(scene Scene, maxVoxels, photonCount int, sampling PhotonSampling, minContribFrac float64, interpolate bool) (*PhotonVoxelLightDistribution, error) {
	grid, err := NewVoxelGrid(scene.WorldBound(), maxVoxels)
	if err != nil {
		return nil, err
	}

	numLights := len(scene.SceneLights())
	size := grid.TotalVoxels() * 4
	if size < 4 {
		size = 4
	}
	table := make([]photonVoxelSlot, size)
	for i := range table {
		table[i].packedKey.Store(invalidVoxelKey)
	}

	pv := &PhotonVoxelLightDistribution{
		grid:           grid,
		table:          table,
		numLights:      numLights,
		minContribFrac: minContribFrac,
		interpolate:    interpolate,
		defaultDistr:   NewSparseDistribution1D(nil, 1, numLights),
	}

	if numLights == 0 {
		return pv, nil
	}

	photons := TracePhotons(scene, photonCount, sampling)
	pv.accumulate(photons)
	pv.finalize()
	return pv, nil
}

// accumulate claims each photon's voxel slot and adds its beta under that
// slot's mutex (spec 4.7 preprocess).
func (pv *PhotonVoxelLightDistribution) accumulate(photons []Photon) {
	for _, ph := range photons {
		if ph.LightNum == noLight || ph.Beta <= 0 {
			atomic.AddInt64(&pv.dropped, 1)
			continue
		}
		idx := pv.grid.VoxelIndex(ph.Position)
		slot := pv.claimSlot(idx)

		slot.mu.Lock()
		if slot.contrib == nil {
			slot.contrib = make(map[int]float64)
		}
		slot.contrib[ph.LightNum] += ph.Beta
		slot.mu.Unlock()
	}
}

// claimSlot runs the same CAS-probe protocol as VoxelHashCache.Lookup, but
// for accumulation rather than distribution lookup: the slot's contrib map
// is what's being built, not a finished distribution.
func (pv *PhotonVoxelLightDistribution) claimSlot(idx [3]int) *photonVoxelSlot {
	key := PackKey(idx)
	size := uint64(len(pv.table))
	h := mix64(key) % size

	for s := uint64(1); ; s++ {
		slot := &pv.table[h]
		k := slot.packedKey.Load()
		if k == key {
			return slot
		}
		if k != invalidVoxelKey {
			h = (h + s*s) % size
			continue
		}
		if slot.packedKey.CompareAndSwap(invalidVoxelKey, key) {
			return slot
		}
		// lost the race; retry at the same h
	}
}

// finalize converts every occupied slot's contrib map into an immutable
// Sparse1D, in parallel across slots.
func (pv *PhotonVoxelLightDistribution) finalize() {
	var wg sync.WaitGroup
	for i := range pv.table {
		slot := &pv.table[i]
		if slot.packedKey.Load() == invalidVoxelKey {
			continue
		}
		wg.Add(1)
		go func(slot *photonVoxelSlot) {
			defer wg.Done()
			sparse := NewSparseDistribution1D(slot.contrib, pv.minContribFrac, pv.numLights)
			slot.final.Store(sparse)
		}(slot)
	}
	wg.Wait()
}

// lookupSlot finds the finalised distribution for voxel idx without ever
// CASing a new slot into existence: a voxel with no photons was never
// claimed during preprocess and stays INVALID forever (spec 4.7 lookup).
// Because preprocess has fully finished by the time any lookup runs, every
// occupied slot's final pointer is guaranteed non-nil; no spin-wait is
// needed here the way VoxelHashCache.Lookup needs one for lazy building.
func (pv *PhotonVoxelLightDistribution) lookupSlot(idx [3]int) *SparseDistribution1D {
	key := PackKey(idx)
	size := uint64(len(pv.table))
	h := mix64(key) % size

	for s := uint64(1); s <= size; s++ {
		slot := &pv.table[h]
		k := slot.packedKey.Load()
		if k == key {
			if d := slot.final.Load(); d != nil {
				return d
			}
			return pv.defaultDistr
		}
		if k == invalidVoxelKey {
			return pv.defaultDistr
		}
		h = (h + s*s) % size
	}
	return pv.defaultDistr
}

// Lookup implements LightDistribution. With interpolate enabled it blends
// up to 7 neighbouring voxels trilinearly along each axis (spec 4.7).
func (pv *PhotonVoxelLightDistribution) Lookup(p core.Vec3, n core.Vec3) Distribution1D {
	if pv.numLights == 0 {
		return NewDiscrete1D(nil)
	}
	if pv.numLights == 1 {
		return NewDiscrete1D([]float64{1})
	}

	idx := pv.grid.VoxelIndex(p)
	if !pv.interpolate {
		return pv.lookupSlot(idx)
	}

	offset := pv.grid.Offset(p)
	nv := pv.grid.NVoxels()
	axes := [3]float64{offset.X, offset.Y, offset.Z}

	// Per axis: centerWeight/neighborWeight split the influence between
	// idx[d] and the neighbour in the direction offset[d] leans toward;
	// neighborIdx[d] == idx[d] (weight 0) when that neighbour is out of
	// range, which collapses its combinations into the center's.
	var centerWeight, neighborWeight [3]float64
	var neighborIdx [3]int
	for d := 0; d < 3; d++ {
		centerWeight[d] = 1
		neighborIdx[d] = idx[d]

		pos := axes[d] * float64(nv[d])
		frac := (pos - math.Floor(pos)) - 0.5
		if frac == 0 {
			continue
		}
		dir := 1
		if frac < 0 {
			dir = -1
		}
		n := idx[d] + dir
		if n < 0 || n >= nv[d] {
			continue
		}

		absFrac := math.Abs(frac)
		centerWeight[d] = 1 - absFrac
		neighborWeight[d] = absFrac
		neighborIdx[d] = n
	}

	var children []Distribution1D
	var weights []float64
	for mask := 0; mask < 8; mask++ {
		w := 1.0
		corner := idx
		for d := 0; d < 3; d++ {
			if mask&(1<<d) != 0 {
				w *= neighborWeight[d]
				corner[d] = neighborIdx[d]
			} else {
				w *= centerWeight[d]
			}
		}
		if w <= 0 {
			continue
		}
		children = append(children, pv.lookupSlot(corner))
		weights = append(weights, w)
	}

	if len(children) == 1 {
		return children[0]
	}
	return NewInterpolatedDistribution1D(weights, children)
}

// Dropped returns how many traced photons never reached a voxel (spec
// testable property 10's complement — exposed for BuildReport).
func (pv *PhotonVoxelLightDistribution) Dropped() int {
	return int(atomic.LoadInt64(&pv.dropped))
}
