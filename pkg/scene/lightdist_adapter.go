package scene

import (
	"github.com/dfoxwell/lightdist/pkg/core"
	"github.com/dfoxwell/lightdist/pkg/lights"
	"github.com/dfoxwell/lightdist/pkg/material"
)

// WorldBound returns the scene's bounding volume as an AABB, satisfying
// pkg/lightdist's Scene contract. Preprocess must have run first so BVH is
// non-nil.
func (s *Scene) WorldBound() core.AABB {
	return s.BVH.BoundingBox()
}

// SceneLights returns the scene's light list, satisfying pkg/lightdist's
// Scene contract.
func (s *Scene) SceneLights() []lights.Light {
	return s.Lights
}

// Intersect traces ray against the scene's BVH, satisfying pkg/lightdist's
// Scene contract (used by the photon tracer, component C7).
func (s *Scene) Intersect(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	var hit material.HitRecord
	ok := s.BVH.Hit(ray, tMin, tMax, &hit)
	return hit, ok
}
