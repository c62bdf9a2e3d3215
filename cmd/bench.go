package cmd

import (
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/achilleasa/penumbra/asset/compiler"
	"github.com/achilleasa/penumbra/asset/scene"
	sceneio "github.com/achilleasa/penumbra/asset/scene/io"
	"github.com/achilleasa/penumbra/tracer"
	"github.com/achilleasa/penumbra/types"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Evaluate batches of randomized visibility probes using a pool of cpu
// tracers and print per-tracer throughput statistics.
func Bench(ctx *cli.Context) error {
	setupLogging(ctx)

	var sc *scene.Scene
	var err error
	if ctx.NArg() == 1 {
		sc, err = sceneio.ReadScene(ctx.Args().First())
	} else {
		logger.Notice("no snapshot given; compiling built-in demo scene")
		sc, err = compiler.Compile(compiler.DemoScene())
	}
	if err != nil {
		return err
	}

	probeCount := uint32(ctx.Int("probes"))
	batchCount := ctx.Int("batches")
	tracerCount := ctx.Int("tracers")
	if tracerCount <= 0 {
		tracerCount = runtime.NumCPU()
	}

	probes := make([]tracer.Ray, probeCount)
	results := make([]tracer.VisibilityResult, probeCount)
	rng := rand.New(rand.NewSource(42))
	for idx := range probes {
		probes[idx] = randomProbe(rng)
	}

	query := &tracer.VisibilityQuery{
		Query: tracer.NewSceneQuery(sc, nil),
		Scene: sc,
		Mode:  tracer.EnableTranslucent,
		Mask:  scene.MaskAll,
	}

	pool := make([]tracer.BatchTracer, tracerCount)
	for idx := 0; idx < tracerCount; idx++ {
		pool[idx] = tracer.NewCpuTracer(fmt.Sprintf("worker-%d", idx))
		if err = pool[idx].Setup(probes, results, query); err != nil {
			return err
		}
		defer pool[idx].Close()
	}

	doneChan := make(chan uint32, tracerCount)
	errChan := make(chan error, tracerCount)
	scheduler := tracer.NewPerfectScheduler()

	var lastBatchTime int64
	benchStart := time.Now()
	for batch := 0; batch < batchCount; batch++ {
		assignment := scheduler.Schedule(pool, probeCount, lastBatchTime)

		batchStart := time.Now()
		var blockStart uint32
		for idx, tr := range pool {
			tr.Enqueue(tracer.BlockRequest{
				BlockStart: blockStart,
				BlockSize:  assignment[idx],
				DoneChan:   doneChan,
				ErrChan:    errChan,
			})
			blockStart += assignment[idx]
		}

		var pendingProbes = probeCount
		for pendingProbes > 0 {
			select {
			case completed := <-doneChan:
				pendingProbes -= completed
			case err = <-errChan:
				return err
			}
		}
		lastBatchTime = time.Since(batchStart).Nanoseconds()
	}
	totalTime := time.Since(benchStart)

	var occluded int
	for _, res := range results {
		if res.HasOpaqueHit {
			occluded++
		}
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Tracer", "Last block", "Probes/sec"})
	for _, tr := range pool {
		stats := tr.Stats()
		rate := float64(stats.BlockSize) / (float64(stats.BlockTime) * 1e-9)
		table.Append([]string{
			tr.Id(),
			fmt.Sprintf("%d", stats.BlockSize),
			fmt.Sprintf("%.0f", rate),
		})
	}
	table.Render()

	totalProbes := uint64(probeCount) * uint64(batchCount)
	fmt.Printf("\nevaluated %d probes in %v (%.0f probes/sec); %.1f%% of final batch occluded\n",
		totalProbes, totalTime,
		float64(totalProbes)/totalTime.Seconds(),
		100.0*float64(occluded)/float64(probeCount))
	return nil
}

// Generate a probe between two random points inside the demo scene
// bounds. Origins hover above the floor so most rays cross the interior
// geometry.
func randomProbe(rng *rand.Rand) tracer.Ray {
	origin := types.Vec3{
		rng.Float32()*16.0 - 8.0,
		rng.Float32()*6.0 + 0.5,
		rng.Float32()*16.0 - 8.0,
	}
	target := types.Vec3{
		rng.Float32()*16.0 - 8.0,
		rng.Float32()*6.0 + 0.5,
		rng.Float32()*16.0 - 8.0,
	}

	toTarget := target.Sub(origin)
	dist := toTarget.Len()
	if dist < 1e-3 {
		toTarget = types.Vec3{0, 0, -1}
		dist = 1.0
	}
	return tracer.NewRay(origin, toTarget.Normalize(), dist)
}
