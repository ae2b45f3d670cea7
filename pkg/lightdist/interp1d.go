package lightdist

// InterpolatedDistribution1D is a meta-distribution over m child
// distributions, mixed by weight: sampling picks a child by weight, then
// samples within it. This is spec's component C3 and the "Interp" member
// of the Distribution1D variant.
//
// Open question resolved (spec.md 9): Count() returns the children's
// common count, not merely the first child's — NewInterpolatedDistribution1D
// panics if the children disagree, since spec 3's Interp1D invariant
// requires every child to expose the same index semantics and the same N.
type InterpolatedDistribution1D struct {
	children []Distribution1D
	weights  *Discrete1D // over m mixing weights
	count    int
}

// NewInterpolatedDistribution1D builds an Interp1D from parallel weight and
// child slices. len(weights) must equal len(children) and must be > 0.
func NewInterpolatedDistribution1D(weights []float64, children []Distribution1D) *InterpolatedDistribution1D {
	if len(weights) != len(children) {
		panic("lightdist: InterpolatedDistribution1D: weights and children length mismatch")
	}
	if len(children) == 0 {
		panic("lightdist: InterpolatedDistribution1D: no children")
	}

	count := children[0].Count()
	for _, c := range children[1:] {
		if c.Count() != count {
			panic("lightdist: InterpolatedDistribution1D: children disagree on Count()")
		}
	}

	w := make([]float64, len(weights))
	copy(w, weights)

	return &InterpolatedDistribution1D{
		children: children,
		weights:  NewDiscrete1D(w),
		count:    count,
	}
}

// Count returns N, the common index space size across all children.
func (id *InterpolatedDistribution1D) Count() int {
	return id.count
}

// mixWeight returns the normalized mixing weight w_j = cdf[j+1]-cdf[j].
func (id *InterpolatedDistribution1D) mixWeight(j int) float64 {
	return id.weights.cdf[j+1] - id.weights.cdf[j]
}

// SampleDiscrete samples a mixing index by weight, then samples within the
// chosen child, and returns the combined PDF (not the child-local PDF), per
// spec 4.3.
func (id *InterpolatedDistribution1D) SampleDiscrete(uRand float64) (index int, pdf float64) {
	off, _, uSub := id.weights.SampleDiscreteRemapped(uRand)

	// Clamp below 1 to 1 - 1e-12, matching spec 4.3 step 2 ("clamp below
	// 1").
	const oneMinusEpsilon = 1 - 1e-12
	if uSub >= 1 {
		uSub = oneMinusEpsilon
	}

	index, _ = id.children[off].SampleDiscrete(uSub)
	return index, id.DiscretePdf(index)
}

// DiscretePdf returns the weighted sum of each child's PDF at index i, per
// spec 4.3: pdf(i) = sum_j children[j].pdf(i) * w_j.
func (id *InterpolatedDistribution1D) DiscretePdf(i int) float64 {
	pdf := 0.0
	for j, child := range id.children {
		pdf += child.DiscretePdf(i) * id.mixWeight(j)
	}
	return pdf
}

// SampleContinuous is unsupported for interpolated distributions (spec 4.2,
// 4.3 apply the same restriction as SparseDistribution1D).
func (id *InterpolatedDistribution1D) SampleContinuous(u float64) (x, pdf float64, offset int) {
	panic(&ErrUnsupportedOperation{Op: "InterpolatedDistribution1D.SampleContinuous"})
}
