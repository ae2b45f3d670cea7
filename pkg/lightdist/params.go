package lightdist

import (
	"strconv"

	"github.com/dfoxwell/lightdist/pkg/log"
)

var logger = log.New("lightdist")

// ParamSet is a narrow, string-keyed parameter bag for CreateLightSampleDistribution.
// It mirrors the accessor shape of pkg/loaders.PBRTStatement's GetXParam
// methods (Get_Param(name) (T, bool)) since callers in this module already
// build parameter sets that way; lightdist just needs its own copy rather
// than a dependency on the scene file format.
type ParamSet struct {
	values map[string]string
}

// NewParamSet builds a ParamSet from a plain string map.
func NewParamSet(values map[string]string) ParamSet {
	return ParamSet{values: values}
}

// GetStringParam returns the raw string value for name, if present.
func (p ParamSet) GetStringParam(name string) (string, bool) {
	v, ok := p.values[name]
	return v, ok
}

// GetFloatParam parses name's value as a float64, if present and valid.
func (p ParamSet) GetFloatParam(name string) (float64, bool) {
	v, ok := p.values[name]
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// GetIntParam parses name's value as an int, if present and valid.
func (p ParamSet) GetIntParam(name string) (int, bool) {
	v, ok := p.values[name]
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return i, true
}

// GetBoolParam parses name's value as a bool, if present and valid.
func (p ParamSet) GetBoolParam(name string) (bool, bool) {
	v, ok := p.values[name]
	if !ok {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}

func (p ParamSet) floatOr(name string, def float64) float64 {
	if v, ok := p.GetFloatParam(name); ok {
		return v
	}
	return def
}

func (p ParamSet) intOr(name string, def int) int {
	if v, ok := p.GetIntParam(name); ok {
		return v
	}
	return def
}

func (p ParamSet) boolOr(name string, def bool) bool {
	if v, ok := p.GetBoolParam(name); ok {
		return v
	}
	return def
}

func parsePhotonSampling(s string) PhotonSampling {
	if s == "power" {
		return PhotonSamplingPower
	}
	return PhotonSamplingUniform
}

func parseKernel(s string) Kernel {
	switch Kernel(s) {
	case KernelShepard, KernelModShep, KernelKReg, KernelAdKReg, KernelNone:
		return Kernel(s)
	default:
		return KernelShepard
	}
}

// CreateLightSampleDistribution is the factory spec §6 names:
// create_light_sample_distribution(params, scene) -> LightDistribution.
// It returns the built distribution plus a BuildReport side-output instead
// of stashing configuration into process-wide state for diagnostics (spec
// 9's "Global state" design note).
func CreateLightSampleDistribution(params ParamSet, scene Scene) (LightDistribution, *BuildReport, error) {
	strategy, _ := params.GetStringParam("lightsamplestrategy")
	if strategy == "" {
		strategy = "spatial"
	}

	report := &BuildReport{Strategy: strategy}

	// A scene with exactly one light has nothing to distinguish spatially,
	// photon-trace, or power-weight: every strategy degenerates to uniform.
	// Short-circuit at the factory so construction never pays for a voxel
	// grid, a kd-tree, or a photon pass that would only ever answer "light 0".
	if strategy == "uniform" || len(scene.SceneLights()) == 1 {
		return NewUniformLightDistribution(scene), report, nil
	}

	switch strategy {
	case "uniform":
		return NewUniformLightDistribution(scene), report, nil

	case "power":
		return NewPowerLightDistribution(scene), report, nil

	case "spatial":
		maxVoxels := params.intOr("maxVoxels", 64)
		sld, err := NewSpatialLightDistribution(scene, maxVoxels)
		if err != nil {
			return nil, report, err
		}
		occupied, total := sld.cache.Stats()
		report.VoxelsOccupied, report.VoxelsTotal = occupied, total
		return sld, report, nil

	case "photonvoxel":
		maxVoxels := params.intOr("maxVoxels", 64)
		photonCount := params.intOr("photonCount", 100000)
		minContribFrac := params.floatOr("minContributionScale", 0.001)
		interpolate := params.boolOr("interpolateCdf", true)
		samplingStr, _ := params.GetStringParam("photonsampling")
		sampling := parsePhotonSampling(samplingStr)

		report.PhotonsTraced = photonCount
		pv, err := NewPhotonVoxelLightDistribution(scene, maxVoxels, photonCount, sampling, minContribFrac, interpolate)
		if err != nil {
			return nil, report, err
		}
		report.PhotonsDropped = pv.Dropped()
		occupied, total := 0, len(pv.table)
		for i := range pv.table {
			if pv.table[i].packedKey.Load() != invalidVoxelKey {
				occupied++
			}
		}
		report.VoxelsOccupied, report.VoxelsTotal = occupied, total
		return pv, report, nil

	case "photontree":
		samplingStr, _ := params.GetStringParam("photonsampling")
		cfg := PhotonKdTreeConfig{
			PhotonCount:      params.intOr("photonCount", 100000),
			Sampling:         parsePhotonSampling(samplingStr),
			KNN:              params.boolOr("knn", true),
			NearestNeighbors: params.intOr("nearestNeighbours", 50),
			Radius:           params.floatOr("photonRadius", 0.1),
			Kernel:           parseKernelParam(params),
			IntSmooth:        params.floatOr("intSmooth", 1.0),
			MinContribFrac:   params.floatOr("minContributionScale", 0.001),
		}
		report.PhotonsTraced = cfg.PhotonCount
		return NewPhotonKdTreeLightDistribution(scene, cfg), report, nil

	case "cdftree":
		samplingStr, _ := params.GetStringParam("photonsampling")
		cfg := ClusterKdTreeConfig{
			PhotonCount:     params.intOr("photonCount", 100000),
			Sampling:        parsePhotonSampling(samplingStr),
			CdfCount:        params.intOr("cdfCount", 8),
			PhotonThreshold: params.intOr("photonThreshold", 15),
			KnCdf:           params.intOr("knCdf", 16),
			Kernel:          parseKernelParam(params),
			IntSmooth:       params.floatOr("intSmooth", 1.0),
			MinContribFrac:  params.floatOr("minContributionScale", 0.001),
		}
		report.PhotonsTraced = cfg.PhotonCount
		ck := NewClusterKdTreeLightDistribution(scene, cfg)
		report.ClustersKept = len(ck.clusters)
		report.ClustersDiscarded = ck.discarded
		return ck, report, nil

	case "mlcdftree":
		samplingStr, _ := params.GetStringParam("photonsampling")
		cfg := MlCdfKdTreeConfig{
			PhotonCount:    params.intOr("photonCount", 100000),
			Sampling:       parsePhotonSampling(samplingStr),
			CdfCount:       params.intOr("cdfCount", 264),
			KnCdf:          params.intOr("knCdf", 16),
			MinContribFrac: params.floatOr("minContributionScale", 0.001),
		}
		report.PhotonsTraced = cfg.PhotonCount
		ml, err := NewMlCdfKdTreeLightDistribution(scene, cfg)
		if err != nil {
			return nil, report, err
		}
		report.ClustersKept = len(ml.clusters)
		return ml, report, nil

	default:
		report.FallbackWarning = "unknown lightsamplestrategy " + strconv.Quote(strategy) + ", falling back to spatial"
		logger.Warning(report.FallbackWarning)
		maxVoxels := params.intOr("maxVoxels", 64)
		sld, err := NewSpatialLightDistribution(scene, maxVoxels)
		if err != nil {
			return nil, report, err
		}
		return sld, report, nil
	}
}

func parseKernelParam(params ParamSet) Kernel {
	s, ok := params.GetStringParam("interpolation")
	if !ok {
		return KernelShepard
	}
	return parseKernel(s)
}
