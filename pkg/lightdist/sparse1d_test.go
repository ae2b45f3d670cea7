package lightdist

import (
	"math"
	"testing"
)

func TestS4SparseDistribution(t *testing.T) {
	sd := NewSparseDistribution1D(map[int]float64{2: 4.0, 5: 1.0}, 0.2, 10)

	cases := map[int]float64{2: 0.66, 5: 0.18}
	for i, want := range cases {
		if got := sd.DiscretePdf(i); math.Abs(got-want) > 1e-9 {
			t.Fatalf("pdf(%d) = %v, want %v", i, got, want)
		}
	}

	sum := 0.0
	for i := 0; i < sd.Count(); i++ {
		pdf := sd.DiscretePdf(i)
		sum += pdf
		if i != 2 && i != 5 {
			if math.Abs(pdf-0.02) > 1e-9 {
				t.Fatalf("pdf(%d) = %v, want 0.02", i, pdf)
			}
		}
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Fatalf("sum of pdfs = %v, want 1", sum)
	}
}

func TestSparseDistributionFloor(t *testing.T) {
	sd := NewSparseDistribution1D(map[int]float64{1: 10}, 0.3, 5)
	floor := sd.uniProb / float64(sd.nAll)
	for i := 0; i < sd.Count(); i++ {
		if sd.DiscretePdf(i) < floor-1e-12 {
			t.Fatalf("pdf(%d) = %v below floor %v", i, sd.DiscretePdf(i), floor)
		}
	}
}

func TestSparseDistributionEmptyForcesUniform(t *testing.T) {
	sd := NewSparseDistribution1D(map[int]float64{}, 0.2, 4)
	if sd.uniProb != 1 {
		t.Fatalf("uniProb = %v, want 1 when K=0", sd.uniProb)
	}
	for i := 0; i < 4; i++ {
		if math.Abs(sd.DiscretePdf(i)-0.25) > 1e-9 {
			t.Fatalf("pdf(%d) = %v, want 0.25", i, sd.DiscretePdf(i))
		}
	}
}

func TestSparseDistributionSampleDiscreteConsistency(t *testing.T) {
	sd := NewSparseDistribution1D(map[int]float64{0: 1, 3: 3}, 0.1, 5)
	const n = 200000
	counts := make([]int, 5)
	for i := 0; i < n; i++ {
		u := (float64(i) + 0.5) / float64(n)
		idx, _ := sd.SampleDiscrete(u)
		counts[idx]++
	}
	for i := 0; i < 5; i++ {
		freq := float64(counts[i]) / float64(n)
		want := sd.DiscretePdf(i)
		if math.Abs(freq-want) > 0.01 {
			t.Fatalf("index %d frequency = %v, want ~%v", i, freq, want)
		}
	}
}

func TestSparseDistributionSampleDiscreteEmptyDoesNotPanicAtZero(t *testing.T) {
	sd := NewSparseDistribution1D(map[int]float64{}, 0.2, 4)
	for _, u := range []float64{0, 0.25, 0.5, 0.75, 0.999999} {
		idx, pdf := sd.SampleDiscrete(u)
		if idx < 0 || idx >= 4 {
			t.Fatalf("SampleDiscrete(%v) index = %d, want in [0,4)", u, idx)
		}
		if pdf <= 0 {
			t.Fatalf("SampleDiscrete(%v) pdf = %v, want > 0", u, pdf)
		}
	}
}

func TestSparseDistributionSampleContinuousUnsupported(t *testing.T) {
	sd := NewSparseDistribution1D(map[int]float64{0: 1}, 0.1, 3)
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic for SampleContinuous on SparseDistribution1D")
		} else if _, ok := r.(*ErrUnsupportedOperation); !ok {
			t.Fatalf("expected ErrUnsupportedOperation, got %T: %v", r, r)
		}
	}()
	sd.SampleContinuous(0.5)
}
