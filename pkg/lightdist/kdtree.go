package lightdist

import (
	"sort"

	"github.com/dfoxwell/lightdist/pkg/core"
	"gonum.org/v1/gonum/spatial/kdtree"
)

// point3 adapts a core.Vec3 plus an opaque payload index into
// gonum's kdtree.Comparable, the contract spec 4.8/4.9 calls "a static
// kd-tree over photons or cluster centroids".
type point3 struct {
	pos     core.Vec3
	payload int // index into the photon or cluster slice this point names
}

func (p point3) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(point3)
	return axis(p.pos, d) - axis(q.pos, d)
}

func (p point3) Dims() int { return 3 }

func (p point3) Distance(c kdtree.Comparable) float64 {
	q := c.(point3)
	dx := p.pos.X - q.pos.X
	dy := p.pos.Y - q.pos.Y
	dz := p.pos.Z - q.pos.Z
	return dx*dx + dy*dy + dz*dz
}

func axis(v core.Vec3, d kdtree.Dim) float64 {
	switch d {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// point3Set implements kdtree.Interface over a slice of point3, the
// adapter gonum's Tree needs to index arbitrary payloads by position.
type point3Set []point3

func (s point3Set) Len() int { return len(s) }

func (s point3Set) Index(i int) kdtree.Comparable { return s[i] }

// Pivot sorts s in place along dimension d and returns the index of the
// median element, the split point gonum's Tree builder uses to recurse.
func (s point3Set) Pivot(d kdtree.Dim) int {
	sort.Slice(s, func(i, j int) bool {
		return axis(s[i].pos, d) < axis(s[j].pos, d)
	})
	return len(s) / 2
}

func (s point3Set) Slice(start, end int) kdtree.Interface {
	return s[start:end]
}

// newPoint3Tree builds a static kd-tree over pts. bounds=true precomputes
// the tree's bounding hyperrectangle, worth it since every one of our
// trees is queried many times after being built once.
func newPoint3Tree(pts point3Set) *kdtree.Tree {
	return kdtree.New(pts, true)
}

// kNearest returns the k points nearest to q and their squared distances,
// ordered nearest-first (spec 4.8's k-NN query mode).
func kNearest(t *kdtree.Tree, q core.Vec3, k int) ([]point3, []float64) {
	keeper := kdtree.NewNKeeper(k)
	t.NearestSet(keeper, point3{pos: q})
	return drainKeeper(keeper.Heap)
}

// withinRadius returns every point within radius of q and their squared
// distances (spec 4.8's radius query mode). radius is a distance, not a
// squared distance; gonum's DistKeeper wants the squared form since
// point3.Distance returns squared Euclidean distance.
func withinRadius(t *kdtree.Tree, q core.Vec3, radius float64) ([]point3, []float64) {
	keeper := kdtree.NewDistKeeper(radius * radius)
	t.NearestSet(keeper, point3{pos: q})
	return drainKeeper(keeper.Heap)
}

func drainKeeper(heap kdtree.Heap) ([]point3, []float64) {
	pts := make([]point3, len(heap))
	dists := make([]float64, len(heap))
	for i, cd := range heap {
		pts[i] = cd.Comparable.(point3)
		dists[i] = cd.Dist
	}
	return pts, dists
}

// kdTreeIndex wraps a gonum kd-tree over payload positions (cluster
// centroids or k-means means), used by the ClusterKdTree and MlCdfKdTree
// variants' second-stage lookup (spec 4.9).
type kdTreeIndex struct {
	tree *kdtree.Tree
}

func newKdTreeIndex(positions []core.Vec3) *kdTreeIndex {
	pts := make(point3Set, len(positions))
	for i, p := range positions {
		pts[i] = point3{pos: p, payload: i}
	}
	return &kdTreeIndex{tree: newPoint3Tree(pts)}
}

// kNearest returns the payload indices of the k nearest positions to q and
// their squared distances, nearest-first.
func (idx *kdTreeIndex) kNearest(q core.Vec3, k int) ([]int, []float64) {
	pts, sqDist := kNearest(idx.tree, q, k)
	payloads := make([]int, len(pts))
	for i, pt := range pts {
		payloads[i] = pt.payload
	}
	return payloads, sqDist
}

// newCentroidIndex builds a kdTreeIndex over a cluster slice's centroids.
func newCentroidIndex(clusters []clusterRecord) *kdTreeIndex {
	positions := make([]core.Vec3, len(clusters))
	for i, c := range clusters {
		positions[i] = c.centroid
	}
	return newKdTreeIndex(positions)
}
