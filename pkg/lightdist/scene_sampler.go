package lightdist

import (
	"github.com/dfoxwell/lightdist/pkg/core"
	"github.com/dfoxwell/lightdist/pkg/lights"
)

// DistributionLightSampler adapts a LightDistribution to
// lights.LightSampler, the interface the rest of the renderer already
// knows how to consume (integrators hold a LightSampler, not a
// LightDistribution directly). Emission sampling always uses a uniform
// distribution over lights since LightDistribution.Lookup needs a shading
// point emission sampling has none of.
type DistributionLightSampler struct {
	distr        LightDistribution
	lightList    []lights.Light
	emissionDist *Discrete1D
}

// NewDistributionLightSampler wraps distr for use as a lights.LightSampler.
func NewDistributionLightSampler(distr LightDistribution, lightList []lights.Light) *DistributionLightSampler {
	f := make([]float64, len(lightList))
	for i := range f {
		f[i] = 1
	}
	return &DistributionLightSampler{
		distr:        distr,
		lightList:    lightList,
		emissionDist: NewDiscrete1D(f),
	}
}

// SampleLight implements lights.LightSampler.
func (s *DistributionLightSampler) SampleLight(point core.Vec3, normal core.Vec3, u float64) (lights.Light, float64, int) {
	if len(s.lightList) == 0 {
		return nil, 0, -1
	}
	d := s.distr.Lookup(point, normal)
	i, pdf := d.SampleDiscrete(u)
	return s.lightList[i], pdf, i
}

// SampleLightEmission implements lights.LightSampler.
func (s *DistributionLightSampler) SampleLightEmission(u float64) (lights.Light, float64, int) {
	if len(s.lightList) == 0 {
		return nil, 0, -1
	}
	i, pdf := s.emissionDist.SampleDiscrete(u)
	return s.lightList[i], pdf, i
}

// GetLightProbability implements lights.LightSampler.
func (s *DistributionLightSampler) GetLightProbability(lightIndex int, point core.Vec3, normal core.Vec3) float64 {
	if lightIndex < 0 || lightIndex >= len(s.lightList) {
		return 0
	}
	d := s.distr.Lookup(point, normal)
	return d.DiscretePdf(lightIndex)
}

// GetLightCount implements lights.LightSampler.
func (s *DistributionLightSampler) GetLightCount() int {
	return len(s.lightList)
}

var _ lights.LightSampler = (*DistributionLightSampler)(nil)
