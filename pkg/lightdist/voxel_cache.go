package lightdist

import (
	"runtime"
	"sync/atomic"
)

// voxelSlot is one entry of the open-addressed hash table. packedKey and
// distr are both written with at most one CAS/store per voxel across the
// table's lifetime: EMPTY -> CLAIMED(key set, distr nil) -> READY(distr
// set). There is no transition out of READY (spec 4 "State machines").
type voxelSlot struct {
	packedKey atomic.Uint64
	distr     atomic.Pointer[Distribution1D]
}

// VoxelBuildFunc builds the distribution for a voxel. It is invoked exactly
// once per distinct voxel key across all concurrent callers (spec 4.4,
// testable property 6).
type VoxelBuildFunc func(idx [3]int) Distribution1D

// VoxelHashCache is the concurrent, lock-minimizing cache keyed by packed
// voxel key: spec's component C5. Table size is 4x the voxel count (load
// factor <= 0.25) so quadratic probing stays short (spec 4.4's "expected
// probes < 2").
type VoxelHashCache struct {
	grid  *VoxelGrid
	table []voxelSlot
	build VoxelBuildFunc
}

// NewVoxelHashCache allocates an empty table sized for grid and wires build
// as the per-voxel construction function.
func NewVoxelHashCache(grid *VoxelGrid, build VoxelBuildFunc) *VoxelHashCache {
	size := grid.TotalVoxels() * 4
	if size < 4 {
		size = 4
	}
	table := make([]voxelSlot, size)
	for i := range table {
		table[i].packedKey.Store(invalidVoxelKey)
	}
	return &VoxelHashCache{grid: grid, table: table, build: build}
}

// Lookup runs the protocol from spec 4.4: locate or claim the slot for p's
// voxel, building its distribution at most once, and return it. Safe for
// any number of concurrent callers, including callers racing on the same
// voxel.
func (c *VoxelHashCache) Lookup(p [3]int) Distribution1D {
	key := PackKey(p)
	size := uint64(len(c.table))
	h := mix64(key) % size

	for s := uint64(1); ; s++ {
		slot := &c.table[h]
		k := slot.packedKey.Load()

		if k == key {
			d := slot.distr.Load()
			for d == nil {
				runtime.Gosched()
				d = slot.distr.Load()
			}
			return *d
		}

		if k != invalidVoxelKey {
			h = (h + s*s) % size
			continue
		}

		if slot.packedKey.CompareAndSwap(invalidVoxelKey, key) {
			built := c.build(p)
			slot.distr.Store(&built)
			return built
		}
		// Lost the race for this slot; retry at the same h without
		// advancing the probe sequence, since the winner's key might
		// equal ours.
	}
}

// Stats reports how many of the table's slots are occupied, for
// BuildReport and diagnostics.
func (c *VoxelHashCache) Stats() (occupied, total int) {
	for i := range c.table {
		if c.table[i].packedKey.Load() != invalidVoxelKey {
			occupied++
		}
	}
	return occupied, len(c.table)
}
