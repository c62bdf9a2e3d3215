package cmd

import (
	"errors"

	"github.com/achilleasa/penumbra/asset/compiler"
	sceneio "github.com/achilleasa/penumbra/asset/scene/io"
	"github.com/urfave/cli"
)

// Compile the built-in demo scene and write it out as a compressed
// snapshot that the probe/bench commands can load.
func CompileScene(ctx *cli.Context) error {
	setupLogging(ctx)

	out := ctx.String("out")
	if out == "" {
		return errors.New("missing snapshot output path")
	}

	sc, err := compiler.Compile(compiler.DemoScene())
	if err != nil {
		return err
	}

	return sceneio.WriteScene(sc, out)
}
