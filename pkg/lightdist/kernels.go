package lightdist

import "math"

// Kernel names a photon/cluster-distance weighting function from spec 4.8's
// table. kernelWeights treats the zero value ("") like KernelNone.
type Kernel string

const (
	KernelNone    Kernel = "none"
	KernelShepard Kernel = "shepard"
	KernelModShep Kernel = "modshep"
	KernelKReg    Kernel = "kreg"
	KernelAdKReg  Kernel = "adkreg"
)

// kernelWeights computes w_i for every squared distance in sqDist, using
// the named kernel and smoothing parameter s (spec's intSmooth). modshep
// and adkreg derive R, the largest squared distance in sqDist, internally.
func kernelWeights(kernel Kernel, sqDist []float64, s float64) []float64 {
	w := make([]float64, len(sqDist))
	switch kernel {
	case KernelShepard:
		for i, d2 := range sqDist {
			w[i] = 1 / math.Max(1e-3, math.Pow(d2, s))
		}
	case KernelModShep:
		r := maxOf(sqDist)
		rs := math.Pow(r, s)
		for i, d2 := range sqDist {
			ds := math.Pow(d2, s)
			if rs <= 0 || ds <= 0 {
				w[i] = 0
				continue
			}
			t := (rs - ds) / (rs * ds)
			w[i] = t * t
		}
	case KernelKReg:
		for i, d2 := range sqDist {
			dist := math.Sqrt(d2)
			w[i] = math.Exp(-(dist / s) * (dist / s))
		}
	case KernelAdKReg:
		r := maxOf(sqDist)
		p := math.Sqrt(r) / math.Sqrt(-math.Log(s))
		for i, d2 := range sqDist {
			dist := math.Sqrt(d2)
			w[i] = math.Exp(-(dist/p)*(dist/p)) - s
		}
	default: // KernelNone
		for i := range sqDist {
			w[i] = 1
		}
	}
	return w
}

func maxOf(xs []float64) float64 {
	m := 0.0
	for i, x := range xs {
		if i == 0 || x > m {
			m = x
		}
	}
	return m
}
