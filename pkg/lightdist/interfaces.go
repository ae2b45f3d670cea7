// Package lightdist implements the spatial light-sampling distribution
// core: given a shading point, it returns a probability distribution over
// the scene's lights that concentrates probability mass where a light is
// likely to matter. It never traces shadow rays and never talks to the
// integrator directly; everything it needs from the rest of the renderer
// comes through the narrow interfaces declared in this file.
package lightdist

import (
	"github.com/dfoxwell/lightdist/pkg/core"
	"github.com/dfoxwell/lightdist/pkg/lights"
	"github.com/dfoxwell/lightdist/pkg/material"
)

// Scene is the subset of scene.Scene this package depends on. Ray
// intersection, the light list, and the world bound all live outside this
// package's scope (spec's external collaborators); this interface is the
// seam.
type Scene interface {
	// WorldBound returns the scene's axis-aligned bounding box.
	WorldBound() core.AABB

	// SceneLights returns the scene's lights in a stable order. Distribution
	// index i always refers to SceneLights()[i].
	SceneLights() []lights.Light

	// Intersect finds the closest surface hit along ray within [tMin, tMax].
	Intersect(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool)
}

// Distribution1D is the common contract for Discrete1D, SparseDistribution1D
// and InterpolatedDistribution1D (spec's three-member tagged variant).
// SampleContinuous is only meaningful for Discrete1D; the other two panic
// with *ErrUnsupportedOperation.
type Distribution1D interface {
	// SampleDiscrete draws an index in [0, Count()) from u and returns it
	// together with its probability mass.
	SampleDiscrete(u float64) (index int, pdf float64)

	// DiscretePdf returns the probability mass on index i.
	DiscretePdf(i int) float64

	// Count returns the number of indices this distribution covers.
	Count() int
}

// ContinuousSampler is implemented only by Discrete1D.
type ContinuousSampler interface {
	SampleContinuous(u float64) (x, pdf float64, offset int)
}

// LightDistribution is built once per scene (except for the lazily-filled
// spatial cache) and answers lookups for the rest of the renderer's life.
type LightDistribution interface {
	// Lookup returns the distribution over scene lights to use at point p
	// with shading normal n. n is currently unused by every variant (spec
	// reserves it for a future cosine-weighted strategy) but is threaded
	// through so that extension doesn't require an interface change.
	//
	// The returned Distribution1D is either a reference owned by this
	// LightDistribution's cache (valid for the scene's lifetime) or a
	// freshly-built per-call value; callers must not assume either, but may
	// assume it remains valid for the duration of a single sample-and-PDF
	// pair of calls.
	Lookup(p core.Vec3, n core.Vec3) Distribution1D
}

// BuildReport carries preprocessing results back to the caller instead of
// stashing them in a package-level variable (spec design note: "global
// options stash ... should be lifted to an explicit side-output").
type BuildReport struct {
	Strategy          string
	FallbackWarning   string // non-empty if an unknown strategy fell back to spatial
	PhotonsTraced     int
	PhotonsDropped    int
	VoxelsOccupied    int
	VoxelsTotal       int
	ClustersKept      int
	ClustersDiscarded int
}
