package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/achilleasa/penumbra/asset/scene"
	sceneio "github.com/achilleasa/penumbra/asset/scene/io"
	"github.com/achilleasa/penumbra/tracer"
	"github.com/achilleasa/penumbra/types"
	"github.com/urfave/cli"
)

// Evaluate a single visibility probe against a compiled scene snapshot
// and print the result.
func Probe(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing snapshot file argument")
	}

	sc, err := sceneio.ReadScene(ctx.Args().First())
	if err != nil {
		return err
	}

	origin, err := parseVec3(ctx.String("from"))
	if err != nil {
		return fmt.Errorf("invalid probe origin: %v", err)
	}
	target, err := parseVec3(ctx.String("to"))
	if err != nil {
		return fmt.Errorf("invalid probe target: %v", err)
	}

	mode := tracer.AccurateHitDistance
	if ctx.Bool("translucent") {
		mode |= tracer.EnableTranslucent
	}

	query := &tracer.VisibilityQuery{
		Query:               tracer.NewSceneQuery(sc, nil),
		Scene:               sc,
		Mode:                mode,
		Mask:                scene.MaskAll,
		OpaquenessThreshold: float32(ctx.Float64("threshold")),
		ExpectedPortal:      int32(ctx.Int("portal")),
	}

	toTarget := target.Sub(origin)
	ray := tracer.NewRay(origin, toTarget.Normalize(), toTarget.Len())
	res := tracer.TraceVisibilityRay(ray, query)

	fmt.Printf("attenuation:   %.4f %.4f %.4f\n", res.Attenuation[0], res.Attenuation[1], res.Attenuation[2])
	fmt.Printf("hit distance:  %.4f\n", res.HitDistance)
	fmt.Printf("opaque hit:    %t\n", res.HasOpaqueHit)
	fmt.Printf("ray direction: %.4f %.4f %.4f\n", res.RayDirection[0], res.RayDirection[1], res.RayDirection[2])
	return nil
}

// Parse a comma-separated vector argument of the form "x,y,z".
func parseVec3(arg string) (types.Vec3, error) {
	fields := strings.Split(arg, ",")
	if len(fields) != 3 {
		return types.Vec3{}, fmt.Errorf("expected 3 comma-separated components; got %d", len(fields))
	}

	var v types.Vec3
	for idx, field := range fields {
		val, err := strconv.ParseFloat(strings.TrimSpace(field), 32)
		if err != nil {
			return types.Vec3{}, err
		}
		v[idx] = float32(val)
	}
	return v, nil
}
