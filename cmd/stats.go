package cmd

import (
	"errors"
	"fmt"

	sceneio "github.com/achilleasa/penumbra/asset/scene/io"
	"github.com/urfave/cli"
)

// Display asset statistics for a compiled scene snapshot.
func SceneStats(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing snapshot file argument")
	}

	sc, err := sceneio.ReadScene(ctx.Args().First())
	if err != nil {
		return err
	}

	fmt.Println(sc.Stats())
	return nil
}
