package lightdist

import (
	"math"

	"github.com/dfoxwell/lightdist/pkg/core"
	"github.com/dfoxwell/lightdist/pkg/lights"
	"golang.org/x/sync/errgroup"
)

// photonChunkSize is the fork-join work unit for tracing: each goroutine
// claims a contiguous range of photon indices rather than one index at a
// time, amortizing scheduling overhead across the batch.
const photonChunkSize = 4096

// noLight marks a Photon slot whose ray missed geometry entirely.
const noLight = -1

// Photon is one traced light particle's first surface hit, component C7's
// output. LightNum is noLight when the photon's ray never intersected the
// scene; such photons are dropped by every consumer.
type Photon struct {
	Position core.Vec3
	Beta     float64
	LightNum int
	FromDir  core.Vec3
}

// PhotonSampling selects the distribution used to pick a photon's source
// light during emission, independent of how lookups later weight lights.
type PhotonSampling int

const (
	PhotonSamplingUniform PhotonSampling = iota
	PhotonSamplingPower
)

// TracePhotons emits count photons from scene's lights in parallel and
// returns one Photon record per emitted index (component C7). sampling
// selects uniform or power-proportional light selection for emission;
// this is independent of the LightDistribution variant the photons feed.
func TracePhotons(scene Scene, count int, sampling PhotonSampling) []Photon {
	lightList := scene.SceneLights()
	photons := make([]Photon, count)
	if len(lightList) == 0 || count == 0 {
		return photons
	}

	photonDistr := photonEmissionDistribution(lightList, sampling)

	g := new(errgroup.Group)
	for start := 0; start < count; start += photonChunkSize {
		end := start + photonChunkSize
		if end > count {
			end = count
		}
		start, end := start, end
		g.Go(func() error {
			for i := start; i < end; i++ {
				photons[i] = traceOnePhoton(scene, lightList, photonDistr, uint64(i))
			}
			return nil
		})
	}
	_ = g.Wait() // trace goroutines never return an error

	return photons
}

// photonEmissionDistribution builds the Discrete1D used to pick a photon's
// source light, per spec 4.6 step 2.
func photonEmissionDistribution(lightList []lights.Light, sampling PhotonSampling) *Discrete1D {
	f := make([]float64, len(lightList))
	for i, l := range lightList {
		switch sampling {
		case PhotonSamplingPower:
			if p, ok := l.(LightPower); ok {
				f[i] = p.Power()
			} else {
				f[i] = 1
			}
		default:
			f[i] = 1
		}
	}
	return NewDiscrete1D(f)
}

// traceOnePhoton implements spec 4.6 steps 2-5 for a single photon index.
func traceOnePhoton(scene Scene, lightList []lights.Light, photonDistr *Discrete1D, photonIndex uint64) Photon {
	sampler := newHaltonSampler(photonIndex)

	lightNum, lightPDF := photonDistr.SampleDiscrete(sampler.Get1D())
	if lightPDF <= 0 {
		return Photon{LightNum: noLight}
	}
	light := lightList[lightNum]

	emission := light.SampleEmission(sampler.Get2D(), sampler.Get2D())
	if emission.AreaPDF <= 0 || emission.DirectionPDF <= 0 {
		return Photon{LightNum: noLight}
	}
	le := emission.Emission
	if le.Luminance() <= 0 {
		return Photon{LightNum: noLight}
	}

	cosTheta := math.Abs(emission.Normal.Dot(emission.Direction))
	beta := le.Luminance() * cosTheta / (lightPDF * emission.AreaPDF * emission.DirectionPDF)
	if beta <= 0 {
		return Photon{LightNum: noLight}
	}

	ray := core.NewRay(emission.Point, emission.Direction)
	hit, ok := scene.Intersect(ray, 1e-4, math.Inf(1))
	if !ok {
		return Photon{LightNum: noLight}
	}

	return Photon{
		Position: hit.Point,
		Beta:     beta,
		LightNum: lightNum,
		FromDir:  ray.Direction.Negate(),
	}
}
