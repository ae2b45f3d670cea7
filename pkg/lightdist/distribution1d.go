package lightdist

import "sort"

// Discrete1D is a piecewise-constant 1D function with an associated CDF,
// supporting both discrete (pick an index) and continuous (pick a point in
// [0,1)) inverse-CDF sampling. This is spec's component C1 and the "Dense"
// member of the Distribution1D tagged variant.
type Discrete1D struct {
	function []float64
	cdf      []float64 // len(function)+1
	funcInt  float64
}

// NewDiscrete1D builds a Discrete1D over f. f must be non-negative; the
// caller is responsible for that invariant (this package never receives
// negative contributions from its own builders).
func NewDiscrete1D(f []float64) *Discrete1D {
	n := len(f)
	cdf := make([]float64, n+1)
	for i := 1; i <= n; i++ {
		cdf[i] = cdf[i-1] + f[i-1]/float64(n)
	}

	funcInt := cdf[n]
	if n == 0 {
		// No segments at all: there is nothing to sample, but Count() and
		// DiscretePdf must still behave (both return zero-valued answers).
	} else if funcInt == 0 {
		for i := 0; i <= n; i++ {
			cdf[i] = float64(i) / float64(n)
		}
	} else {
		for i := 0; i <= n; i++ {
			cdf[i] /= funcInt
		}
	}

	function := make([]float64, n)
	copy(function, f)

	return &Discrete1D{function: function, cdf: cdf, funcInt: funcInt}
}

// Count returns n, the number of piecewise-constant segments.
func (d *Discrete1D) Count() int {
	return len(d.function)
}

// FuncInt returns the integral of the unnormalized function.
func (d *Discrete1D) FuncInt() float64 {
	return d.funcInt
}

// findInterval returns the largest offset such that cdf[offset] <= u, the
// same binary search used by both sampling routines.
func (d *Discrete1D) findInterval(u float64) int {
	// sort.Search finds the first index for which the predicate is true;
	// we want the last index with cdf[off] <= u, i.e. first index with
	// cdf[off+1] > u, clamped into range.
	off := sort.Search(len(d.cdf)-1, func(i int) bool {
		return d.cdf[i+1] > u
	})
	if off >= len(d.function) {
		off = len(d.function) - 1
	}
	return off
}

// SampleContinuous implements ContinuousSampler: picks x in [0,1) with
// density proportional to the piecewise-constant function.
func (d *Discrete1D) SampleContinuous(u float64) (x, pdf float64, offset int) {
	n := len(d.function)
	if n == 0 {
		return 0, 0, 0
	}
	off := d.findInterval(u)

	du := u - d.cdf[off]
	if denom := d.cdf[off+1] - d.cdf[off]; denom > 0 {
		du /= denom
	}

	x = (float64(off) + du) / float64(n)

	pdf = 0
	if d.funcInt > 0 {
		pdf = d.function[off] / d.funcInt
	}

	return x, pdf, off
}

// SampleDiscrete draws index i in [0, Count()) with the piecewise-constant
// function's mass and returns it with its PDF. SampleDiscreteRemapped also
// returns the remapped random number.
func (d *Discrete1D) SampleDiscrete(u float64) (index int, pdf float64) {
	if len(d.function) == 0 {
		return 0, 0
	}
	off := d.findInterval(u)
	return off, d.DiscretePdf(off)
}

// SampleDiscreteRemapped behaves like SampleDiscrete but also returns the
// remapped random variable within the chosen segment, per spec 4.1.
func (d *Discrete1D) SampleDiscreteRemapped(u float64) (index int, pdf float64, uRemapped float64) {
	if len(d.function) == 0 {
		return 0, 0, u
	}
	off := d.findInterval(u)
	uRemapped = u - d.cdf[off]
	if denom := d.cdf[off+1] - d.cdf[off]; denom > 0 {
		uRemapped /= denom
	}
	return off, d.DiscretePdf(off), uRemapped
}

// DiscretePdf returns f[i] / (funcInt * n), the probability mass on index i.
func (d *Discrete1D) DiscretePdf(i int) float64 {
	if d.funcInt == 0 || len(d.function) == 0 {
		return 0
	}
	return d.function[i] / (d.funcInt * float64(len(d.function)))
}
