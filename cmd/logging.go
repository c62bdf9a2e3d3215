package cmd

import (
	"github.com/achilleasa/penumbra/log"
	"github.com/urfave/cli"
)

var logger = log.New("penumbra")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
