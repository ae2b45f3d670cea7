package lightdist

import (
	"testing"

	"github.com/dfoxwell/lightdist/pkg/core"
	"github.com/dfoxwell/lightdist/pkg/lights"
)

func TestClusterKdTreeZeroLights(t *testing.T) {
	sc := newFakeScene(core.NewAABB(core.Vec3{}, core.NewVec3(1, 1, 1)), nil)
	ck := NewClusterKdTreeLightDistribution(sc, ClusterKdTreeConfig{
		PhotonCount: 100, CdfCount: 4, PhotonThreshold: 1, KnCdf: 2, Kernel: KernelShepard, IntSmooth: 1,
	})
	d := ck.Lookup(core.NewVec3(0.5, 0.5, 0.5), core.Vec3{})
	if d.Count() != 0 {
		t.Fatalf("Count() = %d, want 0", d.Count())
	}
}

func TestClusterKdTreeBuildsAndLooksUp(t *testing.T) {
	sc := newFakeScene(
		core.NewAABB(core.Vec3{}, core.NewVec3(1, 1, 1)),
		[]lights.Light{newFakeLight(1, 5), newFakeLight(1, 5)},
	)
	ck := NewClusterKdTreeLightDistribution(sc, ClusterKdTreeConfig{
		PhotonCount:     4000,
		CdfCount:        8,
		PhotonThreshold: 1,
		KnCdf:           3,
		Kernel:          KernelShepard,
		IntSmooth:       1,
		MinContribFrac:  0.01,
	})
	if len(ck.clusters) == 0 {
		t.Fatal("expected at least one surviving cluster")
	}
	d := ck.Lookup(core.NewVec3(0.5, 0.5, 0.5), core.Vec3{})
	if d.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", d.Count())
	}
}

func TestClusterKdTreeDiscardsSmallBuckets(t *testing.T) {
	sc := newFakeScene(
		core.NewAABB(core.Vec3{}, core.NewVec3(1, 1, 1)),
		[]lights.Light{newFakeLight(1, 5), newFakeLight(1, 5)},
	)
	ck := NewClusterKdTreeLightDistribution(sc, ClusterKdTreeConfig{
		PhotonCount:     4000,
		CdfCount:        8,
		PhotonThreshold: 1 << 30, // impossible to satisfy: every bucket is discarded
		KnCdf:           3,
		Kernel:          KernelShepard,
		IntSmooth:       1,
		MinContribFrac:  0.01,
	})
	if len(ck.clusters) != 0 {
		t.Fatalf("len(clusters) = %d, want 0 when every bucket is below the threshold", len(ck.clusters))
	}
	if ck.discarded == 0 {
		t.Fatal("expected discarded > 0")
	}
	d := ck.Lookup(core.NewVec3(0.5, 0.5, 0.5), core.Vec3{})
	if d.Count() != 2 {
		t.Fatalf("Count() = %d, want 2 (default distribution)", d.Count())
	}
}

func TestKdBucketizeRespectsMaxLeaf(t *testing.T) {
	pos := func(i int) core.Vec3 { return core.NewVec3(float64(i), 0, 0) }
	idxs := make([]int, 17)
	for i := range idxs {
		idxs[i] = i
	}
	buckets := kdBucketize(idxs, pos, 4)

	total := 0
	for _, b := range buckets {
		if len(b) > 4 {
			t.Fatalf("bucket of size %d exceeds maxLeaf 4", len(b))
		}
		total += len(b)
	}
	if total != 17 {
		t.Fatalf("total bucketed = %d, want 17", total)
	}
}

func TestBuildClusterAggregatesCentroidAndWeight(t *testing.T) {
	photons := []Photon{
		{Position: core.NewVec3(0, 0, 0), Beta: 1, LightNum: 0},
		{Position: core.NewVec3(2, 0, 0), Beta: 1, LightNum: 1},
	}
	c := buildCluster(photons, []int{0, 1}, 2, 0)
	if c.weight != 2 {
		t.Fatalf("weight = %d, want 2", c.weight)
	}
	if c.centroid.X != 1 {
		t.Fatalf("centroid.X = %v, want 1", c.centroid.X)
	}
}
