package main

import (
	"fmt"
	"os"

	"github.com/dfoxwell/lightdist/pkg/core"
	"github.com/dfoxwell/lightdist/pkg/lightdist"
	"github.com/dfoxwell/lightdist/pkg/log"
	"github.com/dfoxwell/lightdist/pkg/scene"
	"github.com/urfave/cli"
)

var logger = log.New("lightbench")

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "lightbench"
	app.Usage = "build and inspect a spatial light-sampling distribution"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable info logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable debug logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "build",
			Usage: "build a LightDistribution over a built-in scene and report its shape",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene",
					Value: "cornell",
					Usage: "built-in scene: cornell or default",
				},
				cli.StringFlag{
					Name:  "strategy",
					Value: "spatial",
					Usage: "lightsamplestrategy: uniform, power, spatial, photonvoxel, photontree, cdftree, mlcdftree",
				},
				cli.IntFlag{
					Name:  "max-voxels",
					Value: 64,
					Usage: "maxVoxels for spatial/photonvoxel strategies",
				},
				cli.IntFlag{
					Name:  "photon-count",
					Value: 100000,
					Usage: "photonCount for photon-based strategies",
				},
				cli.StringFlag{
					Name:  "interpolation",
					Value: "shepard",
					Usage: "kernel for photon-kdtree/cluster variants",
				},
				cli.Float64Flag{
					Name:  "sample-x",
					Value: 0.5,
					Usage: "lookup point X, as a fraction of the scene's world bound",
				},
				cli.Float64Flag{
					Name:  "sample-y",
					Value: 0.5,
					Usage: "lookup point Y, as a fraction of the scene's world bound",
				},
				cli.Float64Flag{
					Name:  "sample-z",
					Value: 0.5,
					Usage: "lookup point Z, as a fraction of the scene's world bound",
				},
			},
			Action: buildAndReport,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}
	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}

func buildAndReport(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, err := loadScene(ctx.String("scene"))
	if err != nil {
		return err
	}

	params := lightdist.NewParamSet(map[string]string{
		"lightsamplestrategy": ctx.String("strategy"),
		"maxVoxels":           fmt.Sprint(ctx.Int("max-voxels")),
		"photonCount":         fmt.Sprint(ctx.Int("photon-count")),
		"interpolation":       ctx.String("interpolation"),
	})

	distr, report, err := lightdist.CreateLightSampleDistribution(params, sc)
	if err != nil {
		return fmt.Errorf("building light distribution: %w", err)
	}

	bound := sc.WorldBound()
	size := bound.Size()
	p := core.NewVec3(
		bound.Min.X+ctx.Float64("sample-x")*size.X,
		bound.Min.Y+ctx.Float64("sample-y")*size.Y,
		bound.Min.Z+ctx.Float64("sample-z")*size.Z,
	)

	logger.Infof("built strategy=%s voxelsOccupied=%d/%d photonsTraced=%d photonsDropped=%d clustersKept=%d clustersDiscarded=%d",
		report.Strategy, report.VoxelsOccupied, report.VoxelsTotal, report.PhotonsTraced, report.PhotonsDropped, report.ClustersKept, report.ClustersDiscarded)
	if report.FallbackWarning != "" {
		logger.Warning(report.FallbackWarning)
	}

	d := distr.Lookup(p, core.Vec3{})
	fmt.Printf("strategy=%s lookup point=%v lights=%d\n", report.Strategy, p, d.Count())
	for i := 0; i < d.Count(); i++ {
		fmt.Printf("  light %d: pdf=%.6f\n", i, d.DiscretePdf(i))
	}
	return nil
}

func loadScene(name string) (*scene.Scene, error) {
	var sc *scene.Scene
	switch name {
	case "cornell":
		sc = scene.NewCornellScene()
	case "default":
		sc = scene.NewDefaultScene()
	default:
		return nil, fmt.Errorf("unknown scene %q (want cornell or default)", name)
	}
	if err := sc.Preprocess(); err != nil {
		return nil, fmt.Errorf("preprocessing scene: %w", err)
	}
	return sc, nil
}
