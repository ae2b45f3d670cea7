package lightdist

import (
	"github.com/dfoxwell/lightdist/pkg/core"
	"github.com/mpraski/clusters"
)

// kmeansIterations bounds how long Lloyd's algorithm runs before accepting
// whatever partition it has found; photon clouds are large but k is small
// (cfg.CdfCount, default 264), so this converges well before the cap.
const kmeansIterations = 128

// MlCdfKdTreeLightDistribution is spec's component C10, k-means variant:
// clusters come from k_means_lloyd over photon positions instead of
// kd-tree leaves; lookup uses inverse-squared-distance weighting only.
type MlCdfKdTreeLightDistribution struct {
	clusters     []clusterRecord
	centroidTree *kdTreeIndex
	numLights    int
	knCdf        int
	defaultDistr *SparseDistribution1D
}

// MlCdfKdTreeConfig collects the params table entries §6 lists for the
// mlcdftree strategy.
type MlCdfKdTreeConfig struct {
	PhotonCount    int
	Sampling       PhotonSampling
	CdfCount       int
	KnCdf          int
	MinContribFrac float64
}

// NewMlCdfKdTreeLightDistribution traces photons, runs k-means with
// k=cfg.CdfCount over their positions, and builds one Sparse1D per mean
// (spec 4.9).
func NewMlCdfKdTreeLightDistribution(scene Scene, cfg MlCdfKdTreeConfig) (*MlCdfKdTreeLightDistribution, error) {
	numLights := len(scene.SceneLights())
	ml := &MlCdfKdTreeLightDistribution{
		numLights:    numLights,
		knCdf:        cfg.KnCdf,
		defaultDistr: NewSparseDistribution1D(nil, 1, numLights),
	}
	if numLights == 0 {
		return ml, nil
	}

	traced := TracePhotons(scene, cfg.PhotonCount, cfg.Sampling)
	var photons []Photon
	for _, ph := range traced {
		if ph.LightNum != noLight && ph.Beta > 0 {
			photons = append(photons, ph)
		}
	}
	if len(photons) == 0 {
		return ml, nil
	}

	k := cfg.CdfCount
	if k > len(photons) {
		k = len(photons)
	}

	observations := make(clusters.Observations, len(photons))
	for i, ph := range photons {
		observations[i] = clusters.Observation{ph.Position.X, ph.Position.Y, ph.Position.Z}
	}

	hc, err := clusters.KMeans(kmeansIterations, k, clusters.EuclideanDistance)
	if err != nil {
		return nil, err
	}
	if err := hc.Learn(observations); err != nil {
		return nil, err
	}
	guesses := hc.Guesses()

	buckets := make([][]int, k)
	for i, g := range guesses {
		if g < 0 || g >= k {
			continue
		}
		buckets[g] = append(buckets[g], i)
	}

	ml.clusters = make([]clusterRecord, 0, k)
	for _, bucket := range buckets {
		if len(bucket) == 0 {
			continue
		}
		ml.clusters = append(ml.clusters, buildCluster(photons, bucket, numLights, cfg.MinContribFrac))
	}
	if len(ml.clusters) > 0 {
		ml.centroidTree = newCentroidIndex(ml.clusters)
	}
	return ml, nil
}

// Lookup implements LightDistribution: inverse-squared-distance weighted
// k-NN over the k-means centroids.
func (ml *MlCdfKdTreeLightDistribution) Lookup(p core.Vec3, n core.Vec3) Distribution1D {
	if ml.numLights == 0 {
		return NewDiscrete1D(nil)
	}
	if ml.numLights == 1 {
		return NewDiscrete1D([]float64{1})
	}
	if ml.centroidTree == nil {
		return ml.defaultDistr
	}

	idxs, sqDist := ml.centroidTree.kNearest(p, ml.knCdf)
	if len(idxs) == 0 {
		return ml.defaultDistr
	}

	children := make([]Distribution1D, len(idxs))
	weights := make([]float64, len(idxs))
	for i, ci := range idxs {
		children[i] = ml.clusters[ci].distr
		weights[i] = 1.0 / maxOf([]float64{sqDist[i], 1e-6})
	}
	return NewInterpolatedDistribution1D(weights, children)
}
