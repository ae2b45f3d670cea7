package lightdist

import (
	"fmt"
	"sort"
)

// ErrUnsupportedOperation is returned (or panicked with, per spec 4.2/4.3)
// when continuous sampling is attempted on a distribution that only
// supports discrete sampling.
type ErrUnsupportedOperation struct {
	Op string
}

func (e *ErrUnsupportedOperation) Error() string {
	return fmt.Sprintf("lightdist: unsupported operation: %s", e.Op)
}

// SparseDistribution1D represents a distribution over nAll indices where
// only a handful are nonzero, plus a uniform probability floor. This is
// spec's component C2 and the "Sparse" member of the Distribution1D
// variant. It never allocates an nAll-sized array.
type SparseDistribution1D struct {
	sampleMap []int // position in [0,K) -> index in [0,nAll)
	backMap   map[int]int
	inner     *Discrete1D // over the K nonzero contributions
	nAll      int
	uniProb   float64 // u, forced to 1 if K == 0
	uniSingle float64 // u / nAll
}

// NewSparseDistribution1D builds a SparseDistribution1D from a sparse map
// of index -> contribution, a uniform floor u in [0,1], and the total
// number of indices nAll the distribution ranges over.
func NewSparseDistribution1D(contrib map[int]float64, u float64, nAll int) *SparseDistribution1D {
	keys := make([]int, 0, len(contrib))
	for idx, c := range contrib {
		if c > 0 {
			keys = append(keys, idx)
		}
	}
	sort.Ints(keys) // deterministic ordering, independent of map iteration

	values := make([]float64, len(keys))
	backMap := make(map[int]int, len(keys))
	for pos, idx := range keys {
		values[pos] = contrib[idx]
		backMap[idx] = pos
	}

	if len(keys) == 0 {
		u = 1
	}

	sd := &SparseDistribution1D{
		sampleMap: keys,
		backMap:   backMap,
		inner:     NewDiscrete1D(values),
		nAll:      nAll,
		uniProb:   u,
	}
	if nAll > 0 {
		sd.uniSingle = u / float64(nAll)
	}
	return sd
}

// Count returns nAll, the size of the index space this distribution covers
// (not the number of nonzero entries).
func (sd *SparseDistribution1D) Count() int {
	return sd.nAll
}

// SampleDiscrete implements spec 4.2's two-branch sampling rule. The
// boundary uRand == 1-uniProb belongs to the uniform branch so that a K==0
// distribution (uniProb forced to 1) never falls through to the empty
// sparse branch at uRand == 0.
func (sd *SparseDistribution1D) SampleDiscrete(uRand float64) (index int, pdf float64) {
	if uRand >= 1-sd.uniProb {
		newU := (uRand - (1 - sd.uniProb)) / sd.uniProb
		i := int(newU * float64(sd.nAll))
		if i == sd.nAll {
			i = sd.nAll - 1
		}
		return i, sd.DiscretePdf(i)
	}

	newU := uRand / (1 - sd.uniProb)
	j, _ := sd.inner.SampleDiscrete(newU)
	i := sd.sampleMap[j]
	return i, sd.DiscretePdf(i)
}

// DiscretePdf returns the probability mass on index i: the uniform floor
// plus, for nonzero indices, the sparse contribution's share of (1-u).
func (sd *SparseDistribution1D) DiscretePdf(i int) float64 {
	if pos, ok := sd.backMap[i]; ok {
		return sd.uniSingle + (1-sd.uniProb)*sd.inner.DiscretePdf(pos)
	}
	return sd.uniSingle
}

// SampleContinuous is unsupported for sparse distributions (spec 4.2, 4.3
// "Continuous sampling is unsupported").
func (sd *SparseDistribution1D) SampleContinuous(u float64) (x, pdf float64, offset int) {
	panic(&ErrUnsupportedOperation{Op: "SparseDistribution1D.SampleContinuous"})
}
