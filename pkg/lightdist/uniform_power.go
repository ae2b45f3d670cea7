package lightdist

import (
	"github.com/dfoxwell/lightdist/pkg/core"
)

// UniformLightDistribution returns the same uniform Discrete1D from every
// Lookup, regardless of point or normal. Spec S1.
type UniformLightDistribution struct {
	distr *Discrete1D
}

// NewUniformLightDistribution builds the single shared distribution.
func NewUniformLightDistribution(scene Scene) *UniformLightDistribution {
	n := len(scene.SceneLights())
	f := make([]float64, n)
	for i := range f {
		f[i] = 1
	}
	return &UniformLightDistribution{distr: NewDiscrete1D(f)}
}

// Lookup implements LightDistribution.
func (u *UniformLightDistribution) Lookup(p core.Vec3, n core.Vec3) Distribution1D {
	return u.distr
}

// PowerLightDistribution weights every light by its total emitted power,
// independent of the shading point. Spec S2.
type PowerLightDistribution struct {
	distr *Discrete1D
}

// LightPower is the narrow contract this variant needs beyond lights.Light:
// a scalar estimate of total radiant power, which pbrt-style area lights
// typically expose as emission * area. Lights that don't implement it fall
// back to uniform weight (treated as power 1).
type LightPower interface {
	Power() float64
}

// NewPowerLightDistribution builds the single shared distribution,
// weighting each light by LightPower.Power() where available.
func NewPowerLightDistribution(scene Scene) *PowerLightDistribution {
	ls := scene.SceneLights()
	f := make([]float64, len(ls))
	for i, l := range ls {
		if p, ok := l.(LightPower); ok {
			f[i] = p.Power()
		} else {
			f[i] = 1
		}
	}
	return &PowerLightDistribution{distr: NewDiscrete1D(f)}
}

// Lookup implements LightDistribution.
func (pd *PowerLightDistribution) Lookup(p core.Vec3, n core.Vec3) Distribution1D {
	return pd.distr
}
