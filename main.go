package main

import (
	"os"

	"github.com/achilleasa/penumbra/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "penumbra"
	app.Usage = "evaluate shadow and visibility probes against optimized scene snapshots"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "compile",
			Usage: "compile the built-in demo scene into a binary compressed snapshot",
			Description: `
Build a BVH tree over the demo scene geometry, bake surface flags, link portal
pairs and package scene elements into flat arrays optimized for traversal.

The optimized scene data is then written to a zstd-compressed snapshot which
can be supplied as an argument to the probe and bench commands.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "out, o",
					Value: "scene.zst",
					Usage: "snapshot filename for the compiled scene",
				},
			},
			Action: cmd.CompileScene,
		},
		{
			Name:      "stats",
			Usage:     "print asset statistics for a compiled scene snapshot",
			ArgsUsage: "scene.zst",
			Action:    cmd.SceneStats,
		},
		{
			Name:        "probe",
			Usage:       "evaluate a single visibility probe",
			Description: `Trace one probe between two points and print the accumulated attenuation.`,
			ArgsUsage:   "scene.zst",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "from",
					Value: "0,1,5",
					Usage: "probe origin as \"x,y,z\"",
				},
				cli.StringFlag{
					Name:  "to",
					Value: "0,1,-8",
					Usage: "probe target as \"x,y,z\"",
				},
				cli.BoolFlag{
					Name:  "translucent",
					Usage: "evaluate translucent surfaces instead of treating them as transparent",
				},
				cli.Float64Flag{
					Name:  "threshold",
					Value: 0,
					Usage: "opaqueness resolve threshold (0 selects the default)",
				},
				cli.IntFlag{
					Name:  "portal",
					Value: -1,
					Usage: "index of the portal the probe is expected to cross (-1 for none)",
				},
			},
			Action: cmd.Probe,
		},
		{
			Name:        "bench",
			Usage:       "benchmark batched probe evaluation",
			Description: `Evaluate batches of randomized probes using a pool of cpu tracers.`,
			ArgsUsage:   "[scene.zst]",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "probes",
					Value: 65536,
					Usage: "number of probes per batch",
				},
				cli.IntFlag{
					Name:  "batches",
					Value: 8,
					Usage: "number of batches to evaluate",
				},
				cli.IntFlag{
					Name:  "tracers",
					Value: 0,
					Usage: "number of cpu tracers (0 selects one per hardware thread)",
				},
			},
			Action: cmd.Bench,
		},
	}

	app.Run(os.Args)
}
