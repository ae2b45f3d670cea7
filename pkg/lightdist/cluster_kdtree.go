package lightdist

import (
	"github.com/dfoxwell/lightdist/pkg/core"
	"gonum.org/v1/gonum/spatial/kdtree"
)

// clusterRecord is spec 3's Cluster record: a centroid, its aggregated
// Sparse1D, and the photon count it was built from.
type clusterRecord struct {
	centroid core.Vec3
	distr    *SparseDistribution1D
	weight   int
}

// ClusterKdTreeLightDistribution is spec's component C10, kd-tree-leaf
// variant: photons are bucketed into leaves of a position kd-tree, each
// leaf becomes one cluster, and lookup does k-NN over kept cluster
// centroids.
type ClusterKdTreeLightDistribution struct {
	clusters     []clusterRecord
	discarded    int
	centroidTree *kdTreeIndex
	numLights    int
	kernel       Kernel
	intSmooth    float64
	knCdf        int
	defaultDistr *SparseDistribution1D
}

// ClusterKdTreeConfig collects the params table entries §6 lists for the
// cluster-kdtree strategy.
type ClusterKdTreeConfig struct {
	PhotonCount     int
	Sampling        PhotonSampling
	CdfCount        int
	PhotonThreshold int
	KnCdf           int
	Kernel          Kernel
	IntSmooth       float64
	MinContribFrac  float64
}

// NewClusterKdTreeLightDistribution traces photons, buckets them into
// kd-tree leaves sized photonCount/cdfCount, aggregates each surviving
// leaf into a cluster, and indexes the kept centroids (spec 4.9).
func NewClusterKdTreeLightDistribution(scene Scene, cfg ClusterKdTreeConfig) *ClusterKdTreeLightDistribution {
	numLights := len(scene.SceneLights())
	ck := &ClusterKdTreeLightDistribution{
		numLights:    numLights,
		kernel:       cfg.Kernel,
		intSmooth:    cfg.IntSmooth,
		knCdf:        cfg.KnCdf,
		defaultDistr: NewSparseDistribution1D(nil, 1, numLights),
	}
	if numLights == 0 {
		return ck
	}

	traced := TracePhotons(scene, cfg.PhotonCount, cfg.Sampling)
	var photons []Photon
	for _, ph := range traced {
		if ph.LightNum != noLight && ph.Beta > 0 {
			photons = append(photons, ph)
		}
	}
	if len(photons) == 0 {
		return ck
	}

	maxLeaf := cfg.CdfCount
	if maxLeaf < 1 {
		maxLeaf = 1
	}
	maxLeaf = len(photons) / maxLeaf
	if maxLeaf < 1 {
		maxLeaf = 1
	}

	idxs := make([]int, len(photons))
	for i := range idxs {
		idxs[i] = i
	}
	buckets := kdBucketize(idxs, func(i int) core.Vec3 { return photons[i].Position }, maxLeaf)

	ck.clusters = make([]clusterRecord, 0, len(buckets))
	for _, bucket := range buckets {
		if len(bucket) < cfg.PhotonThreshold {
			ck.discarded++
			continue
		}
		ck.clusters = append(ck.clusters, buildCluster(photons, bucket, numLights, cfg.MinContribFrac))
	}

	if len(ck.clusters) > 0 {
		ck.centroidTree = newCentroidIndex(ck.clusters)
	}
	return ck
}

// buildCluster aggregates the photons named by bucket into one
// clusterRecord: a mean position and a Sparse1D over per-light beta sums.
func buildCluster(photons []Photon, bucket []int, numLights int, minContribFrac float64) clusterRecord {
	var sum core.Vec3
	contrib := make(map[int]float64)
	for _, i := range bucket {
		ph := photons[i]
		sum = sum.Add(ph.Position)
		contrib[ph.LightNum] += ph.Beta
	}
	n := float64(len(bucket))
	centroid := core.NewVec3(sum.X/n, sum.Y/n, sum.Z/n)
	return clusterRecord{
		centroid: centroid,
		distr:    NewSparseDistribution1D(contrib, minContribFrac, numLights),
		weight:   len(bucket),
	}
}

// Lookup implements LightDistribution: k-NN over cluster centroids,
// weighted by kernel and multiplied by cluster weight (spec 4.9).
func (ck *ClusterKdTreeLightDistribution) Lookup(p core.Vec3, n core.Vec3) Distribution1D {
	if ck.numLights == 0 {
		return NewDiscrete1D(nil)
	}
	if ck.numLights == 1 {
		return NewDiscrete1D([]float64{1})
	}
	if ck.centroidTree == nil {
		return ck.defaultDistr
	}

	idxs, sqDist := ck.centroidTree.kNearest(p, ck.knCdf)
	if len(idxs) == 0 {
		return ck.defaultDistr
	}

	weights := kernelWeights(ck.kernel, sqDist, ck.intSmooth)
	children := make([]Distribution1D, len(idxs))
	mixWeights := make([]float64, len(idxs))
	total := 0.0
	for i, ci := range idxs {
		w := weights[i] * float64(ck.clusters[ci].weight)
		children[i] = ck.clusters[ci].distr
		mixWeights[i] = w
		total += w
	}
	if total <= 0 {
		return ck.clusters[idxs[0]].distr
	}
	return NewInterpolatedDistribution1D(mixWeights, children)
}

// kdBucketize builds a gonum kd-tree over idxs' positions (the same
// median-split build point3Set.Pivot drives for every other index in this
// package, spec 4.8/4.9's "static kd-tree") and walks it bottom-up,
// merging each subtree of at most maxLeaf points into one leaf bucket.
func kdBucketize(idxs []int, pos func(int) core.Vec3, maxLeaf int) [][]int {
	if len(idxs) == 0 {
		return nil
	}

	pts := make(point3Set, len(idxs))
	for i, idx := range idxs {
		pts[i] = point3{pos: pos(idx), payload: idx}
	}
	tree := newPoint3Tree(pts)

	buckets, _ := bucketizeNode(tree.Root, maxLeaf)
	return buckets
}

// bucketizeNode returns n's subtree as leaf buckets of at most maxLeaf
// points each, plus the subtree's total point count. A subtree small
// enough to fit under maxLeaf collapses into a single bucket; otherwise
// its children's buckets are kept separate and n's own point becomes a
// singleton bucket (swept up by the caller's photon-threshold discard).
func bucketizeNode(n *kdtree.Node, maxLeaf int) ([][]int, int) {
	if n == nil {
		return nil, 0
	}

	leftBuckets, leftCount := bucketizeNode(n.Left, maxLeaf)
	rightBuckets, rightCount := bucketizeNode(n.Right, maxLeaf)
	total := leftCount + rightCount + 1

	if total <= maxLeaf {
		bucket := make([]int, 0, total)
		for _, b := range leftBuckets {
			bucket = append(bucket, b...)
		}
		bucket = append(bucket, n.Point.(point3).payload)
		for _, b := range rightBuckets {
			bucket = append(bucket, b...)
		}
		return [][]int{bucket}, total
	}

	buckets := append(leftBuckets, rightBuckets...)
	buckets = append(buckets, []int{n.Point.(point3).payload})
	return buckets, total
}
