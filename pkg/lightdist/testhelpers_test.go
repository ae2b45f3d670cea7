package lightdist

import (
	"github.com/dfoxwell/lightdist/pkg/core"
	"github.com/dfoxwell/lightdist/pkg/lights"
	"github.com/dfoxwell/lightdist/pkg/material"
)

// fakeLight is a minimal lights.Light double for tests that don't need real
// light transport: constant emission/PDF for direct-lighting sampling, and
// constant emission/PDFs for emission sampling (used by the photon tracer).
type fakeLight struct {
	power       float64
	luminance   float64
	sampleFails bool
}

func newFakeLight(power, luminance float64) *fakeLight {
	return &fakeLight{power: power, luminance: luminance}
}

func (f *fakeLight) Type() lights.LightType { return lights.LightTypePoint }

func (f *fakeLight) Sample(point, normal core.Vec3, sample core.Vec2) lights.LightSample {
	if f.sampleFails {
		return lights.LightSample{PDF: 0}
	}
	return lights.LightSample{
		Emission: core.NewVec3(f.luminance, f.luminance, f.luminance),
		PDF:      1,
		Distance: 1,
	}
}

func (f *fakeLight) PDF(point, normal, direction core.Vec3) float64 { return 1 }

func (f *fakeLight) SampleEmission(samplePoint, sampleDirection core.Vec2) lights.EmissionSample {
	if f.sampleFails {
		return lights.EmissionSample{}
	}
	return lights.EmissionSample{
		Point:        core.Vec3{},
		Normal:       core.NewVec3(0, 0, 1),
		Direction:    core.NewVec3(0, 0, 1),
		Emission:     core.NewVec3(f.luminance, f.luminance, f.luminance),
		AreaPDF:      1,
		DirectionPDF: 1,
	}
}

func (f *fakeLight) EmissionPDF(point, direction core.Vec3) float64 { return 1 }

func (f *fakeLight) Emit(ray core.Ray) core.Vec3 { return core.Vec3{} }

func (f *fakeLight) Power() float64 { return f.power }

// fakeScene is a minimal lightdist.Scene double. Intersect always reports a
// hit at a fixed offset along the ray so photon-tracing tests exercise the
// full emit-then-intersect path deterministically.
type fakeScene struct {
	bound     core.AABB
	lights    []lights.Light
	hitOffset float64
	noHit     bool
}

func newFakeScene(bound core.AABB, ls []lights.Light) *fakeScene {
	return &fakeScene{bound: bound, lights: ls, hitOffset: 1}
}

func (s *fakeScene) WorldBound() core.AABB       { return s.bound }
func (s *fakeScene) SceneLights() []lights.Light { return s.lights }

func (s *fakeScene) Intersect(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	if s.noHit {
		return material.HitRecord{}, false
	}
	return material.HitRecord{
		Point:  ray.Origin.Add(ray.Direction.Multiply(s.hitOffset)),
		Normal: ray.Direction.Negate(),
	}, true
}

var _ Scene = (*fakeScene)(nil)
var _ lights.Light = (*fakeLight)(nil)
