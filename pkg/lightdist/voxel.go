package lightdist

import (
	"math"

	"github.com/dfoxwell/lightdist/pkg/core"
)

// invalidVoxelKey is the sentinel packed key meaning "no voxel" / "empty
// hash slot" (spec 3, "Sentinel INVALID = 0xFFFF_FFFF_FFFF_FFFF").
const invalidVoxelKey uint64 = 0xFFFFFFFFFFFFFFFF

// maxVoxelCoordBits is the number of bits available to each packed axis
// coordinate (spec 3: "each coord requires <= 20 bits").
const maxVoxelCoordBits = 20
const maxVoxelCoord = 1 << maxVoxelCoordBits

// VoxelGrid maps points within a scene's world bound to integer voxel
// coordinates and to a 64-bit packed key, spec's component C4.
type VoxelGrid struct {
	bound   core.AABB
	nVoxels [3]int
	diag    core.Vec3
	diagMax float64
	invDiag core.Vec3
}

// NewVoxelGrid sizes a grid over bound so the widest dimension gets
// maxVoxels voxels and voxels stay approximately cubic (spec 3).
func NewVoxelGrid(bound core.AABB, maxVoxels int) (*VoxelGrid, error) {
	diag := bound.Size()
	diagMax := math.Max(diag.X, math.Max(diag.Y, diag.Z))

	var nVoxels [3]int
	axes := [3]float64{diag.X, diag.Y, diag.Z}
	for d := 0; d < 3; d++ {
		n := 1
		if diagMax > 0 {
			n = int(math.Max(1, math.Round(axes[d]/diagMax*float64(maxVoxels))))
		}
		if n > maxVoxelCoord {
			return nil, &ErrInvariantViolation{
				Msg: "voxel grid resolution exceeds 2^20 on one axis",
			}
		}
		nVoxels[d] = n
	}

	inv := core.Vec3{}
	if diag.X > 0 {
		inv.X = 1 / diag.X
	}
	if diag.Y > 0 {
		inv.Y = 1 / diag.Y
	}
	if diag.Z > 0 {
		inv.Z = 1 / diag.Z
	}

	return &VoxelGrid{
		bound:   bound,
		nVoxels: nVoxels,
		diag:    diag,
		diagMax: diagMax,
		invDiag: inv,
	}, nil
}

// NVoxels returns the per-axis voxel count.
func (g *VoxelGrid) NVoxels() [3]int {
	return g.nVoxels
}

// TotalVoxels returns the product of the per-axis counts.
func (g *VoxelGrid) TotalVoxels() int {
	return g.nVoxels[0] * g.nVoxels[1] * g.nVoxels[2]
}

// VoxelIndex clamps p into the scene bound and returns its integer voxel
// coordinates (spec 4.4: "clamping floor(offset[d]*nVoxels[d]) to
// [0, nVoxels[d]-1]", satisfying testable property 9, clamp robustness).
func (g *VoxelGrid) VoxelIndex(p core.Vec3) [3]int {
	offset := g.Offset(p)
	var idx [3]int
	axes := [3]float64{offset.X, offset.Y, offset.Z}
	for d := 0; d < 3; d++ {
		v := int(math.Floor(axes[d] * float64(g.nVoxels[d])))
		if v < 0 {
			v = 0
		}
		if v >= g.nVoxels[d] {
			v = g.nVoxels[d] - 1
		}
		idx[d] = v
	}
	return idx
}

// Offset returns p's fractional position within the world bound, per axis,
// not clamped.
func (g *VoxelGrid) Offset(p core.Vec3) core.Vec3 {
	return core.Vec3{
		X: (p.X - g.bound.Min.X) * g.invDiag.X,
		Y: (p.Y - g.bound.Min.Y) * g.invDiag.Y,
		Z: (p.Z - g.bound.Min.Z) * g.invDiag.Z,
	}
}

// VoxelBounds returns the world-space axis-aligned box covered by voxel idx.
func (g *VoxelGrid) VoxelBounds(idx [3]int) core.AABB {
	min := core.Vec3{
		X: g.bound.Min.X + float64(idx[0])/float64(g.nVoxels[0])*g.diag.X,
		Y: g.bound.Min.Y + float64(idx[1])/float64(g.nVoxels[1])*g.diag.Y,
		Z: g.bound.Min.Z + float64(idx[2])/float64(g.nVoxels[2])*g.diag.Z,
	}
	max := core.Vec3{
		X: g.bound.Min.X + float64(idx[0]+1)/float64(g.nVoxels[0])*g.diag.X,
		Y: g.bound.Min.Y + float64(idx[1]+1)/float64(g.nVoxels[1])*g.diag.Y,
		Z: g.bound.Min.Z + float64(idx[2]+1)/float64(g.nVoxels[2])*g.diag.Z,
	}
	return core.NewAABB(min, max)
}

// PackKey packs three voxel coordinates into the 64-bit key spec 3
// describes: (ix<<40)|(iy<<20)|iz. Callers must ensure each coordinate fits
// in maxVoxelCoordBits bits, which VoxelIndex always guarantees for a grid
// built by NewVoxelGrid.
func PackKey(idx [3]int) uint64 {
	return (uint64(idx[0]) << 40) | (uint64(idx[1]) << 20) | uint64(idx[2])
}

// mix64 is a Murmur-style 64-bit finalizer used to spread packed voxel keys
// across the hash table (spec 4.4's named constants and shifts).
func mix64(key uint64) uint64 {
	key ^= key >> 31
	key *= 0x7fb5d329728ea185
	key ^= key >> 27
	key *= 0x81dadef4bc2dd44d
	key ^= key >> 33
	return key
}

// ErrInvariantViolation signals a debug-assertion-class failure per spec 7b:
// a configuration that is fatal rather than recoverable.
type ErrInvariantViolation struct {
	Msg string
}

func (e *ErrInvariantViolation) Error() string {
	return "lightdist: invariant violation: " + e.Msg
}
