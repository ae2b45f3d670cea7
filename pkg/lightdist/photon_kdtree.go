package lightdist

import (
	"github.com/dfoxwell/lightdist/pkg/core"
	"gonum.org/v1/gonum/spatial/kdtree"
)

// PhotonKdTreeLightDistribution is spec's component C9: a static kd-tree
// over raw traced photons, queried by k-NN or radius at each lookup and
// weighted by one of the kernels in kernels.go.
type PhotonKdTreeLightDistribution struct {
	tree      *kdtree.Tree
	photons   []Photon
	numLights int

	knn              bool
	nearestNeighbors int
	radius           float64
	kernel           Kernel
	intSmooth        float64
	minContribFrac   float64

	defaultDistr *SparseDistribution1D
}

// PhotonKdTreeConfig collects the params table entries §6 lists for the
// photon-kdtree strategy.
type PhotonKdTreeConfig struct {
	PhotonCount      int
	Sampling         PhotonSampling
	KNN              bool
	NearestNeighbors int
	Radius           float64
	Kernel           Kernel
	IntSmooth        float64
	MinContribFrac   float64
}

// NewPhotonKdTreeLightDistribution traces cfg.PhotonCount photons, discards
// the ones that missed geometry, and indexes the rest in a static kd-tree.
func NewPhotonKdTreeLightDistribution(scene Scene, cfg PhotonKdTreeConfig) *PhotonKdTreeLightDistribution {
	numLights := len(scene.SceneLights())
	pk := &PhotonKdTreeLightDistribution{
		numLights:        numLights,
		knn:              cfg.KNN,
		nearestNeighbors: cfg.NearestNeighbors,
		radius:           cfg.Radius,
		kernel:           cfg.Kernel,
		intSmooth:        cfg.IntSmooth,
		minContribFrac:   cfg.MinContribFrac,
		defaultDistr:     NewSparseDistribution1D(nil, 1, numLights),
	}
	if numLights == 0 {
		return pk
	}

	traced := TracePhotons(scene, cfg.PhotonCount, cfg.Sampling)
	pk.photons = make([]Photon, 0, len(traced))
	for _, ph := range traced {
		if ph.LightNum != noLight && ph.Beta > 0 {
			pk.photons = append(pk.photons, ph)
		}
	}

	if len(pk.photons) == 0 {
		return pk
	}
	pts := make(point3Set, len(pk.photons))
	for i, ph := range pk.photons {
		pts[i] = point3{pos: ph.Position, payload: i}
	}
	pk.tree = newPoint3Tree(pts)
	return pk
}

// Lookup implements LightDistribution. Each call allocates a fresh
// SparseDistribution1D for the query's result set, per spec 4.8's "this
// distribution is a per-query temporary".
func (pk *PhotonKdTreeLightDistribution) Lookup(p core.Vec3, n core.Vec3) Distribution1D {
	if pk.numLights == 0 {
		return NewDiscrete1D(nil)
	}
	if pk.numLights == 1 {
		return NewDiscrete1D([]float64{1})
	}
	if pk.tree == nil {
		return pk.defaultDistr
	}

	var pts []point3
	var sqDist []float64
	if pk.knn {
		pts, sqDist = kNearest(pk.tree, p, pk.nearestNeighbors)
	} else {
		pts, sqDist = withinRadius(pk.tree, p, pk.radius)
	}
	if len(pts) == 0 {
		return pk.defaultDistr
	}

	weights := kernelWeights(pk.kernel, sqDist, pk.intSmooth)
	contrib := make(map[int]float64, len(pts))
	for i, pt := range pts {
		ph := pk.photons[pt.payload]
		contrib[ph.LightNum] += weights[i] * ph.Beta
	}

	return NewSparseDistribution1D(contrib, pk.minContribFrac, pk.numLights)
}
