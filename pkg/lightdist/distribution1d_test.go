package lightdist

import (
	"math"
	"testing"
)

func TestDiscrete1DCDFNormalization(t *testing.T) {
	d := NewDiscrete1D([]float64{1, 2, 3, 4})
	if d.cdf[0] != 0 {
		t.Fatalf("cdf[0] = %v, want 0", d.cdf[0])
	}
	if math.Abs(d.cdf[len(d.cdf)-1]-1) > 1e-12 {
		t.Fatalf("cdf[n] = %v, want 1", d.cdf[len(d.cdf)-1])
	}
	for i := 1; i < len(d.cdf); i++ {
		if d.cdf[i] < d.cdf[i-1] {
			t.Fatalf("cdf not non-decreasing at %d: %v < %v", i, d.cdf[i], d.cdf[i-1])
		}
	}
}

func TestDiscrete1DZeroFuncIntFallsBackToUniform(t *testing.T) {
	d := NewDiscrete1D([]float64{0, 0, 0, 0})
	for i := range d.cdf {
		want := float64(i) / float64(len(d.function))
		if math.Abs(d.cdf[i]-want) > 1e-12 {
			t.Fatalf("cdf[%d] = %v, want %v", i, d.cdf[i], want)
		}
	}
}

func TestDiscrete1DEmptyDoesNotPanic(t *testing.T) {
	d := NewDiscrete1D(nil)
	if d.Count() != 0 {
		t.Fatalf("Count() = %d, want 0", d.Count())
	}
	if idx, pdf := d.SampleDiscrete(0.5); idx != 0 || pdf != 0 {
		t.Fatalf("SampleDiscrete on empty = (%d, %v), want (0, 0)", idx, pdf)
	}
	if pdf := d.DiscretePdf(0); pdf != 0 {
		t.Fatalf("DiscretePdf on empty = %v, want 0", pdf)
	}
}

func TestDiscrete1DPdfSumsToOne(t *testing.T) {
	d := NewDiscrete1D([]float64{1, 5, 0, 2, 9})
	sum := 0.0
	for i := 0; i < d.Count(); i++ {
		sum += d.DiscretePdf(i)
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Fatalf("sum of discrete_pdf = %v, want 1", sum)
	}
}

func TestDiscrete1DSamplingPdfConsistency(t *testing.T) {
	d := NewDiscrete1D([]float64{1, 3, 6})
	const n = 200000
	counts := make([]int, d.Count())
	for i := 0; i < n; i++ {
		u := (float64(i) + 0.5) / float64(n) // deterministic stratified u, avoids a PRNG dependency
		idx, _ := d.SampleDiscrete(u)
		counts[idx]++
	}
	want := []float64{0.1, 0.3, 0.6}
	for i, c := range counts {
		freq := float64(c) / float64(n)
		if math.Abs(freq-want[i]) > 0.01 {
			t.Fatalf("index %d frequency = %v, want ~%v", i, freq, want[i])
		}
	}
}

func TestDiscrete1DSampleContinuousRange(t *testing.T) {
	d := NewDiscrete1D([]float64{2, 2, 2})
	for _, u := range []float64{0, 0.25, 0.5, 0.75, 0.999} {
		x, pdf, off := d.SampleContinuous(u)
		if x < 0 || x >= 1 {
			t.Fatalf("SampleContinuous(%v) x = %v, want in [0,1)", u, x)
		}
		if off < 0 || off >= d.Count() {
			t.Fatalf("SampleContinuous(%v) off = %v, out of range", u, off)
		}
		if pdf <= 0 {
			t.Fatalf("SampleContinuous(%v) pdf = %v, want > 0", u, pdf)
		}
	}
}
